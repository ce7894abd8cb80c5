package domain

import "time"

type ChatID uint64

type ChatState string

const (
	ChatCreated ChatState = "created"
	ChatActive  ChatState = "active"
	ChatEnded   ChatState = "ended"
)

// Chat is a named room. At most one chat may be active across the whole
// system at any instant; that invariant is enforced by the session manager,
// not here.
type Chat struct {
	ID         ChatID
	Name       string
	CreatedAt  time.Time
	StartedAt  *time.Time
	EndedAt    *time.Time
	Transcript string
	IsActive   bool
}

func NewChat(name string) Chat {
	return Chat{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// State derives the lifecycle position from the persisted flags.
// A chat may cycle Created -> Active -> Ended -> Active across sessions.
func (c Chat) State() ChatState {
	switch {
	case c.IsActive:
		return ChatActive
	case c.EndedAt != nil:
		return ChatEnded
	default:
		return ChatCreated
	}
}

// Start marks the chat active. Re-starting an ended chat clears the
// previous end time.
func (c *Chat) Start(now time.Time) {
	c.IsActive = true
	c.StartedAt = &now
	c.EndedAt = nil
}

func (c *Chat) End(now time.Time) {
	c.IsActive = false
	c.EndedAt = &now
}
