package ws

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chat-hall/domain/event"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
)

// envelope is the JSON frame pushed to clients for every domain event.
type envelope struct {
	Kind    event.Kind        `json:"kind"`
	Payload map[string]string `json:"payload"`
}

// Sink adapts one WebSocket connection to contract.EventSink. Consume
// only enqueues; a single write pump goroutine owns the connection, so a
// slow client backs up its own buffer and nothing else. A full buffer
// fails the delivery, which makes the broadcaster evict the sink.
type Sink struct {
	log  *slog.Logger
	conn *websocket.Conn
	send chan envelope

	closeOnce sync.Once
	closed    chan struct{}
}

func NewSink(log *slog.Logger, conn *websocket.Conn) *Sink {
	return &Sink{
		log:    log,
		conn:   conn,
		send:   make(chan envelope, sendBuffer),
		closed: make(chan struct{}),
	}
}

func (s *Sink) Consume(ctx context.Context, e event.DomainEvent) error {
	select {
	case <-s.closed:
		return fmt.Errorf("connection closed")
	default:
	}

	env := envelope{Kind: e.Kind(), Payload: e.Payload()}
	select {
	case s.send <- env:
		return nil
	case <-s.closed:
		return fmt.Errorf("connection closed")
	case <-ctx.Done():
		return fmt.Errorf("send buffer full: %w", ctx.Err())
	}
}

// WritePump drains the send channel into the connection and keeps it
// alive with pings. It returns when the connection breaks or Close is
// called, and must be the only goroutine writing to the connection.
func (s *Sink) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case env := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(env); err != nil {
				s.log.Debug("write failed, dropping connection", slog.Any("error", err))
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.closed:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

// Close stops the write pump. Safe to call more than once.
func (s *Sink) Close() {
	s.closeOnce.Do(func() { close(s.closed) })
}
