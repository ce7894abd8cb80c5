//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"

	"chat-hall/domain"
	"chat-hall/domain/event"
)

// EventSink is one connected client's callback endpoint. Consume must be
// safe for concurrent use and must return quickly; a non-nil error means
// the endpoint is unreachable and will be evicted from the registry.
type EventSink interface {
	Consume(ctx context.Context, e event.DomainEvent) error
}

// IConnectionRegistry is the live mapping of connected participants to
// their callback sinks, kept separately for user and admin sessions.
// Registering an id that already has a sink replaces it (reconnect without
// explicit unregister).
type IConnectionRegistry interface {
	RegisterUser(id domain.UserID, sink EventSink)
	RegisterAdmin(id domain.UserID, sink EventSink)
	UnregisterUser(id domain.UserID)
	UnregisterAdmin(id domain.UserID)
	UnregisterUserIf(id domain.UserID, sink EventSink)
	UnregisterAdminIf(id domain.UserID, sink EventSink)
	LookupUser(id domain.UserID) (EventSink, bool)
	LookupAdmin(id domain.UserID) (EventSink, bool)
	ConnectedUsers() []domain.UserID
	ConnectedAdmins() []domain.UserID
	IsUserConnected(id domain.UserID) bool
}

// IBroadcaster fans one event out to a resolved audience, best effort.
// No retry, no ordering guarantee, no acknowledgment; a recipient that
// fails delivery is treated as silently disconnected.
type IBroadcaster interface {
	ToAdmins(ctx context.Context, e event.DomainEvent)
	ToUsers(ctx context.Context, ids []domain.UserID, e event.DomainEvent)
	ToUser(ctx context.Context, id domain.UserID, e event.DomainEvent)
}

type WorkerName string

// Worker doesn't protect itself.
// Can be silly, focused.
type Worker interface {
	Run(ctx context.Context) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// initialization or lifecycle events, avoiding the need for manual naming
// in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
