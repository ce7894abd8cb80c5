package repositories

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-hall/domain"
	"chat-hall/errors"
)

func newChatRepo(t *testing.T) *ChatRepository {
	t.Helper()
	repo, err := NewChatRepository(openTestDB(t), slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func Test_Save_Assigns_Chat_ID(t *testing.T) {
	req := require.New(t)
	repo := newChatRepo(t)

	first, err := repo.Save(domain.NewChat("morning standup"))
	req.NoError(err)
	second, err := repo.Save(domain.NewChat("retro"))
	req.NoError(err)

	req.NotZero(first.ID)
	req.NotZero(second.ID)
	req.NotEqual(first.ID, second.ID)

	fetched, err := repo.FindByID(first.ID)
	req.NoError(err)
	req.Equal("morning standup", fetched.Name)
}

func Test_FindActive(t *testing.T) {
	req := require.New(t)
	repo := newChatRepo(t)

	// Given no chat at all
	active, err := repo.FindActive()
	req.NoError(err)
	req.Nil(active)

	// Given one started chat among several
	idle, err := repo.Save(domain.NewChat("idle"))
	req.NoError(err)
	started := domain.NewChat("live")
	started.Start(time.Now().UTC())
	started, err = repo.Save(started)
	req.NoError(err)

	// When looking up the active chat
	active, err = repo.FindActive()
	req.NoError(err)

	// Then only the started one is returned
	req.NotNil(active)
	req.Equal(started.ID, active.ID)
	req.NotEqual(idle.ID, active.ID)
}

func Test_Delete_Chat(t *testing.T) {
	req := require.New(t)
	repo := newChatRepo(t)

	chat, err := repo.Save(domain.NewChat("doomed"))
	req.NoError(err)

	req.NoError(repo.Delete(chat.ID))

	_, err = repo.FindByID(chat.ID)
	req.ErrorIs(err, errors.ErrNotFound)

	req.ErrorIs(repo.Delete(chat.ID), errors.ErrNotFound)
}
