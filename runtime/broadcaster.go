package runtime

import (
	"context"
	"log/slog"
	"time"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
)

// Broadcaster delivers one event independently to every member of a
// resolved audience. Delivery is best effort: no retry, no ordering
// guarantee across recipients, no acknowledgment. A recipient whose sink
// returns an error is evicted from the registry and treated as silently
// disconnected; the failure never reaches the caller.
type Broadcaster struct {
	log         *slog.Logger
	registry    contract.IConnectionRegistry
	sinkTimeout time.Duration
}

func NewBroadcaster(log *slog.Logger, registry contract.IConnectionRegistry,
	sinkTimeout time.Duration) *Broadcaster {
	return &Broadcaster{log: log, registry: registry, sinkTimeout: sinkTimeout}
}

// ToAdmins fans the event out to every registered admin sink.
func (b *Broadcaster) ToAdmins(ctx context.Context, e event.DomainEvent) {
	for _, id := range b.registry.ConnectedAdmins() {
		sink, ok := b.registry.LookupAdmin(id)
		if !ok {
			continue
		}
		if err := b.deliver(ctx, sink, e); err != nil {
			b.registry.UnregisterAdmin(id)
			b.log.Debug("admin sink evicted after failed delivery",
				"admin_id", id, "event", e.Kind(), "error", err)
		}
	}
}

// ToUsers fans the event out to the given user ids; ids without a
// registered sink are skipped.
func (b *Broadcaster) ToUsers(ctx context.Context, ids []domain.UserID, e event.DomainEvent) {
	for _, id := range ids {
		b.ToUser(ctx, id, e)
	}
}

func (b *Broadcaster) ToUser(ctx context.Context, id domain.UserID, e event.DomainEvent) {
	sink, ok := b.registry.LookupUser(id)
	if !ok {
		return
	}
	if err := b.deliver(ctx, sink, e); err != nil {
		b.registry.UnregisterUser(id)
		b.log.Debug("user sink evicted after failed delivery",
			"user_id", id, "event", e.Kind(), "error", err)
	}
}

// deliver bounds one attempt by the sink timeout so a stuck endpoint
// cannot stall the rest of the audience.
func (b *Broadcaster) deliver(ctx context.Context, sink contract.EventSink, e event.DomainEvent) error {
	attemptCtx, cancel := context.WithTimeout(ctx, b.sinkTimeout)
	defer cancel()
	return sink.Consume(attemptCtx, e)
}
