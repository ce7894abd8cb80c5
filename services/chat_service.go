//go:generate go run go.uber.org/mock/mockgen -source=chat_service.go -destination=../mocks/mock_chat_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/errors"
	"chat-hall/repositories"
	"chat-hall/sink"
)

type IChatService interface {
	CreateChat(ctx context.Context, name string) (domain.Chat, error)
	StartChat(ctx context.Context, chatID domain.ChatID) (domain.Chat, error)
	EndChat(ctx context.Context, chatID domain.ChatID) (domain.Chat, error)
	JoinChat(ctx context.Context, userID domain.UserID) (domain.Chat, error)
	LeaveChat(ctx context.Context, userID domain.UserID) error
	SendMessage(ctx context.Context, userID domain.UserID, text string) error
	ActiveChat() (*domain.Chat, error)
	AllChats() ([]domain.Chat, error)
}

// ChatService is the session manager: it owns the Created -> Active ->
// Ended state machine and the invariant that at most one chat is active
// across the whole system. The check-and-set on the active slot is the
// only cross-chat critical section and is guarded by mu; everything after
// the committed save (transcript lines aside, notifications) runs outside
// the lock.
type ChatService struct {
	mu          sync.Mutex
	log         *slog.Logger
	users       repositories.IUserRepository
	chats       repositories.IChatRepository
	subs        repositories.ISubscriptionRepository
	registry    contract.IConnectionRegistry
	broadcaster contract.IBroadcaster
	transcript  sink.ITranscript
}

func NewChatService(log *slog.Logger, users repositories.IUserRepository,
	chats repositories.IChatRepository, subs repositories.ISubscriptionRepository,
	registry contract.IConnectionRegistry, broadcaster contract.IBroadcaster,
	transcript sink.ITranscript) *ChatService {
	return &ChatService{
		log:         log,
		users:       users,
		chats:       chats,
		subs:        subs,
		registry:    registry,
		broadcaster: broadcaster,
		transcript:  transcript,
	}
}

// CreateChat is always legal and produces a chat in the Created state.
func (s *ChatService) CreateChat(ctx context.Context, name string) (domain.Chat, error) {
	chat, err := s.chats.Save(domain.NewChat(name))
	if err != nil {
		return domain.Chat{}, err
	}

	s.broadcaster.ToAdmins(ctx, event.ChatActivityUpdate{
		ChatID:   chat.ID,
		ChatName: chat.Name,
		IsActive: false,
		At:       time.Now().UTC(),
	})
	return chat, nil
}

// StartChat activates a chat. Starting the chat that is already active is
// idempotent and returns the current state, so duplicate admin clicks are
// harmless; starting while a different chat is active is a Conflict and
// leaves both chats untouched.
func (s *ChatService) StartChat(ctx context.Context, chatID domain.ChatID) (domain.Chat, error) {
	s.mu.Lock()
	chat, err := s.startLocked(chatID)
	s.mu.Unlock()
	if err != nil {
		return domain.Chat{}, err
	}

	evt := event.ChatStarted{ChatID: chat.ID, ChatName: chat.Name, StartedAt: *chat.StartedAt}
	s.broadcaster.ToAdmins(ctx, evt)
	s.broadcaster.ToUsers(ctx, s.audience(chat.ID, 0), evt)
	return chat, nil
}

func (s *ChatService) startLocked(chatID domain.ChatID) (domain.Chat, error) {
	active, err := s.chats.FindActive()
	if err != nil {
		return domain.Chat{}, err
	}
	if active != nil {
		if active.ID == chatID {
			return *active, nil
		}
		return domain.Chat{}, fmt.Errorf("%w: chat %d is already active", errors.ErrConflict, active.ID)
	}

	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("chat %d: %w", chatID, err)
	}
	chat.Start(time.Now().UTC())
	return s.chats.Save(chat)
}

// EndChat finalizes the transcript and moves an Active chat to Ended.
func (s *ChatService) EndChat(ctx context.Context, chatID domain.ChatID) (domain.Chat, error) {
	s.mu.Lock()
	chat, err := s.endLocked(chatID)
	s.mu.Unlock()
	if err != nil {
		return domain.Chat{}, err
	}

	evt := event.ChatEnded{ChatID: chat.ID, ChatName: chat.Name, EndedAt: *chat.EndedAt}
	s.broadcaster.ToAdmins(ctx, evt)
	s.broadcaster.ToUsers(ctx, s.audience(chat.ID, 0), evt)
	return chat, nil
}

func (s *ChatService) endLocked(chatID domain.ChatID) (domain.Chat, error) {
	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return domain.Chat{}, fmt.Errorf("chat %d: %w", chatID, err)
	}
	if !chat.IsActive {
		return domain.Chat{}, fmt.Errorf("%w: chat %d is not active", errors.ErrInvalidState, chatID)
	}

	now := time.Now().UTC()
	chat.End(now)
	if err := s.transcript.Ended(&chat, now); err != nil {
		s.log.Error("transcript finalization failed", "chat_id", chat.ID, "error", err)
	}
	return s.chats.Save(chat)
}

// JoinChat lets a user enter the currently active chat. It requires an
// active subscription to that chat and notifies the other connected
// subscribers.
func (s *ChatService) JoinChat(ctx context.Context, userID domain.UserID) (domain.Chat, error) {
	user, chat, err := s.participant(userID)
	if err != nil {
		return domain.Chat{}, err
	}

	if err := s.transcript.UserJoined(&chat, user.NickName); err != nil {
		s.log.Error("transcript join line failed", "chat_id", chat.ID, "error", err)
	}
	chat, err = s.chats.Save(chat)
	if err != nil {
		return domain.Chat{}, err
	}

	s.broadcaster.ToUsers(ctx, s.audience(chat.ID, userID), event.UserJoined{
		UserID:    user.ID,
		NickName:  user.NickName,
		HasAvatar: user.HasAvatar(),
		At:        time.Now().UTC(),
	})
	return chat, nil
}

// LeaveChat removes a user from the active chat and applies the auto-end
// rule: when the last connected, actively-subscribed participant leaves,
// the chat ends as if an admin had ended it.
func (s *ChatService) LeaveChat(ctx context.Context, userID domain.UserID) error {
	user, chat, err := s.participant(userID)
	if err != nil {
		return err
	}

	if err := s.transcript.UserLeft(&chat, user.NickName); err != nil {
		s.log.Error("transcript leave line failed", "chat_id", chat.ID, "error", err)
	}
	if chat, err = s.chats.Save(chat); err != nil {
		return err
	}

	s.broadcaster.ToUsers(ctx, s.audience(chat.ID, userID), event.UserLeft{
		UserID:   user.ID,
		NickName: user.NickName,
		At:       time.Now().UTC(),
	})

	if s.anyOtherConnected(chat.ID, userID) {
		return nil
	}

	s.mu.Lock()
	ended, err := s.endLocked(chat.ID)
	s.mu.Unlock()
	if errors.Is(err, errors.ErrInvalidState) {
		// Someone else ended the chat between the leave and this check.
		return nil
	}
	if err != nil {
		return err
	}

	evt := event.ChatEnded{ChatID: ended.ID, ChatName: ended.Name, EndedAt: *ended.EndedAt}
	s.broadcaster.ToUser(ctx, userID, evt)
	s.broadcaster.ToAdmins(ctx, evt)
	return nil
}

// SendMessage broadcasts a message from a joined user to every other
// connected, actively-subscribed participant. A message of "Bye" (any
// case, surrounding whitespace ignored) is recorded and then treated as
// the sender leaving.
func (s *ChatService) SendMessage(ctx context.Context, userID domain.UserID, text string) error {
	user, chat, err := s.participant(userID)
	if err != nil {
		return err
	}

	if err := s.transcript.Message(&chat, user.NickName, text); err != nil {
		s.log.Error("transcript message line failed", "chat_id", chat.ID, "error", err)
	}
	if _, err = s.chats.Save(chat); err != nil {
		return err
	}

	if strings.EqualFold(strings.TrimSpace(text), "bye") {
		return s.LeaveChat(ctx, userID)
	}

	s.broadcaster.ToUsers(ctx, s.audience(chat.ID, userID), event.MessageReceived{
		MessageID: uuid.New(),
		UserID:    user.ID,
		NickName:  user.NickName,
		Message:   text,
		HasAvatar: user.HasAvatar(),
		At:        time.Now().UTC(),
	})
	return nil
}

// ActiveChat never observes more than one active chat; the repository
// deterministically picks the lowest id should persisted state disagree.
func (s *ChatService) ActiveChat() (*domain.Chat, error) {
	return s.chats.FindActive()
}

func (s *ChatService) AllChats() ([]domain.Chat, error) {
	return s.chats.FindAll()
}

// participant validates that the user exists, a chat is active, and the
// user holds an active subscription to it.
func (s *ChatService) participant(userID domain.UserID) (domain.User, domain.Chat, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return domain.User{}, domain.Chat{}, fmt.Errorf("user %d: %w", userID, err)
	}

	active, err := s.chats.FindActive()
	if err != nil {
		return domain.User{}, domain.Chat{}, err
	}
	if active == nil {
		return domain.User{}, domain.Chat{}, fmt.Errorf("%w: no chat is active", errors.ErrInvalidState)
	}

	sub, err := s.subs.Find(userID, active.ID)
	if errors.Is(err, errors.ErrNotFound) || (err == nil && !sub.IsActive) {
		return domain.User{}, domain.Chat{}, fmt.Errorf(
			"%w: not subscribed to the active chat", errors.ErrInvalidState)
	}
	if err != nil {
		return domain.User{}, domain.Chat{}, err
	}
	return user, *active, nil
}

// audience resolves the user ids of the chat's active subscribers,
// optionally excluding the acting user. Unconnected ids are harmless: the
// broadcaster skips them.
func (s *ChatService) audience(chatID domain.ChatID, exclude domain.UserID) []domain.UserID {
	subs, err := s.subs.FindActiveByChat(chatID)
	if err != nil {
		s.log.Error("audience resolution failed", "chat_id", chatID, "error", err)
		return nil
	}
	return lo.FilterMap(subs, func(sub domain.Subscription, _ int) (domain.UserID, bool) {
		return sub.UserID, sub.UserID != exclude
	})
}

// anyOtherConnected reports whether any actively-subscribed user besides
// leaver is still registered in the connection registry.
func (s *ChatService) anyOtherConnected(chatID domain.ChatID, leaver domain.UserID) bool {
	subs, err := s.subs.FindActiveByChat(chatID)
	if err != nil {
		s.log.Error("auto-end check failed", "chat_id", chatID, "error", err)
		return true
	}
	for _, sub := range subs {
		if sub.UserID != leaver && s.registry.IsUserConnected(sub.UserID) {
			return true
		}
	}
	return false
}
