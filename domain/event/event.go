// Package event defines the notifications fanned out to connected clients.
// Events are immutable and carry a flat key/value payload so that any
// transport can serialize them without knowing the concrete type.
package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"chat-hall/domain"
)

// TimeLayout is the timestamp format used in every payload.
const TimeLayout = "2006-01-02 15:04:05"

type Kind string

const (
	KindChatStarted         Kind = "ChatStarted"
	KindChatEnded           Kind = "ChatEnded"
	KindUserJoined          Kind = "UserJoined"
	KindUserLeft            Kind = "UserLeft"
	KindMessageReceived     Kind = "MessageReceived"
	KindSubscriptionChanged Kind = "SubscriptionChanged"
	KindUserRegistered      Kind = "UserRegistered"
	KindUserRemoved         Kind = "UserRemoved"
	KindChatActivityUpdate  Kind = "ChatActivityUpdate"
)

type DomainEvent interface {
	Kind() Kind
	Payload() map[string]string
}

type ChatStarted struct {
	ChatID    domain.ChatID
	ChatName  string
	StartedAt time.Time
}

func (e ChatStarted) Kind() Kind { return KindChatStarted }

func (e ChatStarted) Payload() map[string]string {
	return map[string]string{
		"chatId":    formatID(uint64(e.ChatID)),
		"chatName":  e.ChatName,
		"startTime": e.StartedAt.Format(TimeLayout),
	}
}

type ChatEnded struct {
	ChatID   domain.ChatID
	ChatName string
	EndedAt  time.Time
}

func (e ChatEnded) Kind() Kind { return KindChatEnded }

func (e ChatEnded) Payload() map[string]string {
	return map[string]string{
		"chatId":   formatID(uint64(e.ChatID)),
		"chatName": e.ChatName,
		"endTime":  e.EndedAt.Format(TimeLayout),
	}
}

type UserJoined struct {
	UserID    domain.UserID
	NickName  string
	HasAvatar bool
	At        time.Time
}

func (e UserJoined) Kind() Kind { return KindUserJoined }

func (e UserJoined) Payload() map[string]string {
	return map[string]string{
		"userId":            formatID(uint64(e.UserID)),
		"nickName":          e.NickName,
		"hasProfilePicture": strconv.FormatBool(e.HasAvatar),
		"timestamp":         e.At.Format(TimeLayout),
	}
}

type UserLeft struct {
	UserID   domain.UserID
	NickName string
	At       time.Time
}

func (e UserLeft) Kind() Kind { return KindUserLeft }

func (e UserLeft) Payload() map[string]string {
	return map[string]string{
		"userId":    formatID(uint64(e.UserID)),
		"nickName":  e.NickName,
		"timestamp": e.At.Format(TimeLayout),
	}
}

type MessageReceived struct {
	MessageID uuid.UUID
	UserID    domain.UserID
	NickName  string
	Message   string
	HasAvatar bool
	At        time.Time
}

func (e MessageReceived) Kind() Kind { return KindMessageReceived }

func (e MessageReceived) Payload() map[string]string {
	return map[string]string{
		"messageId":         e.MessageID.String(),
		"userId":            formatID(uint64(e.UserID)),
		"nickName":          e.NickName,
		"message":           e.Message,
		"hasProfilePicture": strconv.FormatBool(e.HasAvatar),
		"timestamp":         e.At.Format(TimeLayout),
	}
}

type SubscriptionChanged struct {
	ChatID     domain.ChatID
	Subscribed bool
	At         time.Time
}

func (e SubscriptionChanged) Kind() Kind { return KindSubscriptionChanged }

func (e SubscriptionChanged) Payload() map[string]string {
	return map[string]string{
		"chatId":     formatID(uint64(e.ChatID)),
		"subscribed": strconv.FormatBool(e.Subscribed),
		"timestamp":  e.At.Format(TimeLayout),
	}
}

type UserRegistered struct {
	UserID   domain.UserID
	Username string
	NickName string
	At       time.Time
}

func (e UserRegistered) Kind() Kind { return KindUserRegistered }

func (e UserRegistered) Payload() map[string]string {
	return map[string]string{
		"userId":    formatID(uint64(e.UserID)),
		"username":  e.Username,
		"nickName":  e.NickName,
		"timestamp": e.At.Format(TimeLayout),
	}
}

type UserRemoved struct {
	UserID domain.UserID
	At     time.Time
}

func (e UserRemoved) Kind() Kind { return KindUserRemoved }

func (e UserRemoved) Payload() map[string]string {
	return map[string]string{
		"userId":    formatID(uint64(e.UserID)),
		"removed":   "true",
		"timestamp": e.At.Format(TimeLayout),
	}
}

// ChatActivityUpdate is the periodic snapshot pushed to admin dashboards.
type ChatActivityUpdate struct {
	ChatID         domain.ChatID
	ChatName       string
	IsActive       bool
	ConnectedCount int
	CPUPercent     float64
	RSSBytes       uint64
	At             time.Time
}

func (e ChatActivityUpdate) Kind() Kind { return KindChatActivityUpdate }

func (e ChatActivityUpdate) Payload() map[string]string {
	return map[string]string{
		"chatId":         formatID(uint64(e.ChatID)),
		"chatName":       e.ChatName,
		"isActive":       strconv.FormatBool(e.IsActive),
		"connectedCount": strconv.Itoa(e.ConnectedCount),
		"cpuPercent":     strconv.FormatFloat(e.CPUPercent, 'f', 2, 64),
		"rssBytes":       strconv.FormatUint(e.RSSBytes, 10),
		"timestamp":      e.At.Format(TimeLayout),
	}
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}
