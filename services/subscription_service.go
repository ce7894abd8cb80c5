//go:generate go run go.uber.org/mock/mockgen -source=subscription_service.go -destination=../mocks/mock_subscription_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/errors"
	"chat-hall/repositories"
)

type ISubscriptionService interface {
	Subscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) (domain.Subscription, error)
	Unsubscribe(ctx context.Context, userID domain.UserID, chatID domain.ChatID) error
	IsSubscribed(userID domain.UserID, chatID domain.ChatID) (bool, error)
	ActiveSubscribersOf(chatID domain.ChatID) ([]domain.User, error)
	ActiveChatsOf(userID domain.UserID) ([]domain.Chat, error)
}

// SubscriptionService owns the (user, chat) subscription rows and keeps
// the at-most-one-active-row-per-pair invariant by always toggling the
// existing row instead of inserting a second one.
type SubscriptionService struct {
	log         *slog.Logger
	users       repositories.IUserRepository
	chats       repositories.IChatRepository
	subs        repositories.ISubscriptionRepository
	broadcaster contract.IBroadcaster
}

func NewSubscriptionService(log *slog.Logger, users repositories.IUserRepository,
	chats repositories.IChatRepository, subs repositories.ISubscriptionRepository,
	broadcaster contract.IBroadcaster) *SubscriptionService {
	return &SubscriptionService{
		log:         log,
		users:       users,
		chats:       chats,
		subs:        subs,
		broadcaster: broadcaster,
	}
}

// Subscribe is idempotent: an active row is returned unchanged, an
// inactive row is flipped back active with a refreshed SubscribedAt, and a
// missing row is created.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID domain.UserID,
	chatID domain.ChatID) (domain.Subscription, error) {
	if err := s.exists(userID, chatID); err != nil {
		return domain.Subscription{}, err
	}

	sub, err := s.subs.Find(userID, chatID)
	save := true
	switch {
	case errors.Is(err, errors.ErrNotFound):
		sub = domain.NewSubscription(userID, chatID)
	case err != nil:
		return domain.Subscription{}, err
	case sub.IsActive:
		// Row untouched; the caller still gets their confirmation event.
		save = false
	default:
		sub.Reactivate(time.Now().UTC())
	}

	if save {
		sub, err = s.subs.Save(sub)
		if err != nil {
			return domain.Subscription{}, err
		}
	}

	s.broadcaster.ToUser(ctx, userID, event.SubscriptionChanged{
		ChatID:     chatID,
		Subscribed: true,
		At:         time.Now().UTC(),
	})
	return sub, nil
}

// Unsubscribe is a no-op when no active row exists.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID domain.UserID,
	chatID domain.ChatID) error {
	if err := s.exists(userID, chatID); err != nil {
		return err
	}

	sub, err := s.subs.Find(userID, chatID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}

	sub.Deactivate(time.Now().UTC())
	if _, err = s.subs.Save(sub); err != nil {
		return err
	}

	s.broadcaster.ToUser(ctx, userID, event.SubscriptionChanged{
		ChatID:     chatID,
		Subscribed: false,
		At:         time.Now().UTC(),
	})
	return nil
}

func (s *SubscriptionService) IsSubscribed(userID domain.UserID, chatID domain.ChatID) (bool, error) {
	sub, err := s.subs.Find(userID, chatID)
	if errors.Is(err, errors.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return sub.IsActive, nil
}

// ActiveSubscribersOf resolves the chat's active subscription rows into
// user records; rows pointing at since-removed users are skipped.
func (s *SubscriptionService) ActiveSubscribersOf(chatID domain.ChatID) ([]domain.User, error) {
	subs, err := s.subs.FindActiveByChat(chatID)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	for _, sub := range subs {
		user, err := s.users.FindByID(sub.UserID)
		if errors.Is(err, errors.ErrNotFound) {
			s.log.Warn("active subscription points at a missing user",
				"user_id", sub.UserID, "chat_id", chatID)
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *SubscriptionService) ActiveChatsOf(userID domain.UserID) ([]domain.Chat, error) {
	subs, err := s.subs.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	var chats []domain.Chat
	for _, chatID := range lo.Map(subs, func(sub domain.Subscription, _ int) domain.ChatID {
		return sub.ChatID
	}) {
		chat, err := s.chats.FindByID(chatID)
		if errors.Is(err, errors.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, nil
}

func (s *SubscriptionService) exists(userID domain.UserID, chatID domain.ChatID) error {
	if _, err := s.users.FindByID(userID); err != nil {
		return fmt.Errorf("user %d: %w", userID, err)
	}
	if _, err := s.chats.FindByID(chatID); err != nil {
		return fmt.Errorf("chat %d: %w", chatID, err)
	}
	return nil
}
