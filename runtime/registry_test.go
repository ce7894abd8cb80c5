package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-hall/mocks"
)

func Test_Register_Lookup_Unregister(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	sink := mocks.NewMockEventSink(ctrl)

	registry.RegisterUser(1, sink)
	req.True(registry.IsUserConnected(1))

	found, ok := registry.LookupUser(1)
	req.True(ok)
	req.Same(sink, found)

	registry.UnregisterUser(1)
	req.False(registry.IsUserConnected(1))
	_, ok = registry.LookupUser(1)
	req.False(ok)
}

func Test_Reregister_Replaces_Sink(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	old := mocks.NewMockEventSink(ctrl)
	fresh := mocks.NewMockEventSink(ctrl)

	registry.RegisterUser(1, old)
	registry.RegisterUser(1, fresh)

	found, ok := registry.LookupUser(1)
	req.True(ok)
	req.Same(fresh, found)
	req.Len(registry.ConnectedUsers(), 1)
}

func Test_UnregisterIf_Spares_Reconnected_Sink(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	stale := mocks.NewMockEventSink(ctrl)
	fresh := mocks.NewMockEventSink(ctrl)

	// Given a client that reconnected before its old connection cleaned up
	registry.RegisterUser(1, stale)
	registry.RegisterUser(1, fresh)
	registry.RegisterAdmin(2, stale)
	registry.RegisterAdmin(2, fresh)

	// When the stale connection's cleanup runs
	registry.UnregisterUserIf(1, stale)
	registry.UnregisterAdminIf(2, stale)

	// Then the fresh sink is still registered
	req.True(registry.IsUserConnected(1))
	found, ok := registry.LookupUser(1)
	req.True(ok)
	req.Same(fresh, found)
	found, ok = registry.LookupAdmin(2)
	req.True(ok)
	req.Same(fresh, found)

	// And the fresh connection's own cleanup removes it
	registry.UnregisterUserIf(1, fresh)
	registry.UnregisterAdminIf(2, fresh)
	req.False(registry.IsUserConnected(1))
	_, ok = registry.LookupAdmin(2)
	req.False(ok)
}

func Test_User_And_Admin_Sessions_Are_Separate(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	registry := NewRegistry()
	sink := mocks.NewMockEventSink(ctrl)

	registry.RegisterAdmin(1, sink)

	req.False(registry.IsUserConnected(1))
	_, ok := registry.LookupUser(1)
	req.False(ok)
	_, ok = registry.LookupAdmin(1)
	req.True(ok)
	req.Len(registry.ConnectedAdmins(), 1)
	req.Empty(registry.ConnectedUsers())
}
