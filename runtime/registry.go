// Package runtime owns the live side of the system: the registry of
// connected callback sinks and the best-effort broadcaster that fans
// events out to them. Nothing here is persisted.
package runtime

import (
	"sync"

	"chat-hall/contract"
	"chat-hall/domain"
)

// Registry maps connected participant ids to their callback sinks, user
// and admin sessions kept apart. It holds a non-owning reference to each
// sink; removal happens either explicitly (logout) or implicitly when a
// delivery attempt fails. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	users  map[domain.UserID]contract.EventSink
	admins map[domain.UserID]contract.EventSink
}

func NewRegistry() *Registry {
	return &Registry{
		users:  make(map[domain.UserID]contract.EventSink),
		admins: make(map[domain.UserID]contract.EventSink),
	}
}

// RegisterUser records a user's callback sink. Registering an id that
// already has one replaces it, so a client can reconnect without an
// explicit unregister.
func (r *Registry) RegisterUser(id domain.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id] = sink
}

func (r *Registry) RegisterAdmin(id domain.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[id] = sink
}

func (r *Registry) UnregisterUser(id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func (r *Registry) UnregisterAdmin(id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, id)
}

// UnregisterUserIf removes the user's sink only if it is still the given
// one. A connection cleaning up after itself must not evict the fresh sink
// a reconnect has registered in its place.
func (r *Registry) UnregisterUserIf(id domain.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users[id] == sink {
		delete(r.users, id)
	}
}

func (r *Registry) UnregisterAdminIf(id domain.UserID, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.admins[id] == sink {
		delete(r.admins, id)
	}
}

func (r *Registry) LookupUser(id domain.UserID) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.users[id]
	return sink, ok
}

func (r *Registry) LookupAdmin(id domain.UserID) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sink, ok := r.admins[id]
	return sink, ok
}

func (r *Registry) IsUserConnected(id domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id]
	return ok
}

// ConnectedUsers returns a snapshot of currently registered user ids, in
// no particular order.
func (r *Registry) ConnectedUsers() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]domain.UserID, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) ConnectedAdmins() []domain.UserID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]domain.UserID, 0, len(r.admins))
	for id := range r.admins {
		ids = append(ids, id)
	}
	return ids
}
