package domain

import "time"

// Subscription is the standing (user, chat) relationship that gates whether
// a user may join and receive messages once the chat becomes active.
// There is at most one row per (user, chat) pair; re-subscribing toggles
// the existing row instead of creating a duplicate.
type Subscription struct {
	UserID         UserID
	ChatID         ChatID
	IsActive       bool
	SubscribedAt   time.Time
	UnsubscribedAt *time.Time
}

func NewSubscription(userID UserID, chatID ChatID) Subscription {
	return Subscription{
		UserID:       userID,
		ChatID:       chatID,
		IsActive:     true,
		SubscribedAt: time.Now().UTC(),
	}
}

// Reactivate flips an inactive row back to active, refreshing SubscribedAt.
func (s *Subscription) Reactivate(now time.Time) {
	s.IsActive = true
	s.SubscribedAt = now
	s.UnsubscribedAt = nil
}

func (s *Subscription) Deactivate(now time.Time) {
	s.IsActive = false
	s.UnsubscribedAt = &now
}
