//go:generate go run go.uber.org/mock/mockgen -source=admin_service.go -destination=../mocks/mock_admin_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/errors"
	"chat-hall/repositories"
)

// ChatSummary is a chat row enriched with its active subscriber count,
// as shown on the admin dashboard.
type ChatSummary struct {
	Chat        domain.Chat
	Subscribers int
}

type IAdminService interface {
	ListUsers() ([]domain.User, error)
	RemoveUser(ctx context.Context, userID domain.UserID) error
	PromoteAdmin(userID domain.UserID) (domain.User, error)
	DemoteAdmin(userID domain.UserID) (domain.User, error)
	ForceSubscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) error
	ForceUnsubscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) error
	ListChats() ([]ChatSummary, error)
	DeleteChat(chatID domain.ChatID) error
}

// AdminService groups the moderation operations reserved for admin
// accounts. Authorization itself happens at the transport layer; this
// service only enforces the domain rules (no removing admins, never
// demoting the last one).
type AdminService struct {
	log           *slog.Logger
	users         repositories.IUserRepository
	chats         repositories.IChatRepository
	subs          repositories.ISubscriptionRepository
	subscriptions ISubscriptionService
	registry      contract.IConnectionRegistry
	broadcaster   contract.IBroadcaster
}

func NewAdminService(log *slog.Logger, users repositories.IUserRepository,
	chats repositories.IChatRepository, subs repositories.ISubscriptionRepository,
	subscriptions ISubscriptionService, registry contract.IConnectionRegistry,
	broadcaster contract.IBroadcaster) *AdminService {
	return &AdminService{
		log:           log,
		users:         users,
		chats:         chats,
		subs:          subs,
		subscriptions: subscriptions,
		registry:      registry,
		broadcaster:   broadcaster,
	}
}

func (s *AdminService) ListUsers() ([]domain.User, error) {
	return s.users.FindAll()
}

// RemoveUser deletes an account together with all its subscription rows
// and drops its live connection. Admin accounts cannot be removed; demote
// them first.
func (s *AdminService) RemoveUser(ctx context.Context, userID domain.UserID) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if user.IsAdmin {
		return fmt.Errorf("%w: cannot remove an admin account", errors.ErrUnauthorized)
	}

	if err := s.subs.DeleteByUser(userID); err != nil {
		return err
	}
	if err := s.users.Delete(userID); err != nil {
		return err
	}
	s.registry.UnregisterUser(userID)

	s.log.Info("user removed", slog.Uint64("user_id", uint64(userID)),
		slog.String("username", user.Username))
	s.broadcaster.ToAdmins(ctx, event.UserRemoved{UserID: userID, At: time.Now().UTC()})
	return nil
}

func (s *AdminService) PromoteAdmin(userID domain.UserID) (domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %d: %w", userID, err)
	}
	if user.IsAdmin {
		return user, nil
	}
	user.IsAdmin = true
	return s.users.Save(user)
}

// DemoteAdmin strips the admin flag. The last remaining admin cannot be
// demoted or the room would be left without a moderator.
func (s *AdminService) DemoteAdmin(userID domain.UserID) (domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %d: %w", userID, err)
	}
	if !user.IsAdmin {
		return user, nil
	}

	admins, err := s.users.FindAdmins()
	if err != nil {
		return domain.User{}, err
	}
	if len(admins) <= 1 {
		return domain.User{}, errors.ErrLastAdmin
	}

	user.IsAdmin = false
	return s.users.Save(user)
}

func (s *AdminService) ForceSubscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) error {
	_, err := s.subscriptions.Subscribe(ctx, userID, chatID)
	return err
}

func (s *AdminService) ForceUnsubscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) error {
	return s.subscriptions.Unsubscribe(ctx, userID, chatID)
}

func (s *AdminService) ListChats() ([]ChatSummary, error) {
	chats, err := s.chats.FindAll()
	if err != nil {
		return nil, err
	}
	summaries := make([]ChatSummary, 0, len(chats))
	for _, chat := range chats {
		subs, err := s.subs.FindActiveByChat(chat.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ChatSummary{Chat: chat, Subscribers: len(subs)})
	}
	return summaries, nil
}

// DeleteChat removes an ended chat and its subscription rows. The active
// chat must be ended first.
func (s *AdminService) DeleteChat(chatID domain.ChatID) error {
	chat, err := s.chats.FindByID(chatID)
	if err != nil {
		return fmt.Errorf("chat %d: %w", chatID, err)
	}
	if chat.IsActive {
		return fmt.Errorf("%w: chat %d is still active", errors.ErrInvalidState, chatID)
	}
	if err := s.subs.DeleteByChat(chatID); err != nil {
		return err
	}
	return s.chats.Delete(chatID)
}
