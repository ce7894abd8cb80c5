package ws

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-hall/domain/event"
)

func Test_Consume_Enqueues_Without_Touching_The_Connection(t *testing.T) {
	req := require.New(t)
	sink := NewSink(slog.Default(), nil)

	evt := event.UserJoined{UserID: 1, NickName: "Alice", At: time.Now().UTC()}
	req.NoError(sink.Consume(context.Background(), evt))
	req.Len(sink.send, 1)
}

func Test_Consume_Fails_When_The_Buffer_Is_Full(t *testing.T) {
	req := require.New(t)
	sink := NewSink(slog.Default(), nil)

	evt := event.UserLeft{UserID: 1, NickName: "Alice", At: time.Now().UTC()}
	for i := 0; i < sendBuffer; i++ {
		req.NoError(sink.Consume(context.Background(), evt))
	}

	// The sink timeout set by the broadcaster bounds the wait; a full
	// buffer then fails the delivery, which triggers eviction.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	req.Error(sink.Consume(ctx, evt))
}

func Test_Consume_Fails_After_Close(t *testing.T) {
	req := require.New(t)
	sink := NewSink(slog.Default(), nil)
	sink.Close()

	err := sink.Consume(context.Background(),
		event.UserLeft{UserID: 1, NickName: "Alice", At: time.Now().UTC()})
	req.Error(err)

	// Close is idempotent.
	sink.Close()
}
