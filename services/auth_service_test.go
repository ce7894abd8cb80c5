package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-hall/auth"
	"chat-hall/domain"
	"chat-hall/errors"
	"chat-hall/mocks"
)

func newAuthService(t *testing.T) (*AuthService, *mocks.MockIUserRepository, *mocks.MockIBroadcaster) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	mockBroadcaster := mocks.NewMockIBroadcaster(ctrl)
	tokens := auth.NewTokenManager("test-secret", 24*time.Hour)
	svc := NewAuthService(slog.Default(), mockRepo, tokens, mockBroadcaster)
	return svc, mockRepo, mockBroadcaster
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("should make the very first account an admin", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockBroadcaster := newAuthService(t)

		mockRepo.EXPECT().FindByEmail("root@example.com").
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindByUsername("root").
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindAll().Return(nil, nil).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).
			DoAndReturn(func(u domain.User) (domain.User, error) {
				u.ID = 1
				return u, nil
			}).Times(1)
		mockBroadcaster.EXPECT().ToAdmins(gomock.Any(), gomock.Any()).Times(1)

		user, token, err := svc.Register(ctx, RegisterInput{
			Email:    "root@example.com",
			Username: "root",
			Password: "ComplexPass123!",
			NickName: "Root",
		})

		req.NoError(err)
		req.True(user.IsAdmin)
		req.NotEmpty(token)
		// The stored password is a hash, never the plain text.
		req.NotEqual("ComplexPass123!", user.Password)
	})

	t.Run("should keep later accounts as plain users", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, mockBroadcaster := newAuthService(t)

		mockRepo.EXPECT().FindByEmail(gomock.Any()).
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindByUsername(gomock.Any()).
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindAll().
			Return([]domain.User{{ID: 1, IsAdmin: true}}, nil).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).
			DoAndReturn(func(u domain.User) (domain.User, error) {
				u.ID = 2
				return u, nil
			}).Times(1)
		mockBroadcaster.EXPECT().ToAdmins(gomock.Any(), gomock.Any()).Times(1)

		user, _, err := svc.Register(ctx, RegisterInput{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "ComplexPass123!",
			NickName: "Alice",
		})

		req.NoError(err)
		req.False(user.IsAdmin)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		// Repository should NEVER be called
		mockRepo.EXPECT().Save(gomock.Any()).Times(0)

		_, token, err := svc.Register(ctx, RegisterInput{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "simplebutlongenough",
			NickName: "Alice",
		})

		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should report malformed fields as validation failures", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().Save(gomock.Any()).Times(0)

		_, _, err := svc.Register(ctx, RegisterInput{
			Email:    "notanemail",
			Username: "alice",
			Password: "ComplexPass123!",
			NickName: "Alice",
		})

		req.ErrorIs(err, errors.ErrValidation)
		req.NotErrorIs(err, errors.ErrInvalidPassword)
	})

	t.Run("should fail when the username is taken", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().FindByEmail(gomock.Any()).
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindByUsername("alice").
			Return(domain.User{ID: 7, Username: "alice"}, nil).Times(1)

		_, _, err := svc.Register(ctx, RegisterInput{
			Email:    "other@example.com",
			Username: "alice",
			Password: "ComplexPass123!",
			NickName: "Alice",
		})

		req.ErrorIs(err, errors.ErrUsernameTaken)
	})

	t.Run("should reject an avatar that is not an image", func(t *testing.T) {
		req := require.New(t)
		svc, _, _ := newAuthService(t)

		_, _, err := svc.Register(ctx, RegisterInput{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "ComplexPass123!",
			NickName: "Alice",
			Avatar:   []byte("#!/bin/sh\nrm -rf"),
		})

		req.ErrorIs(err, errors.ErrInvalidAvatar)
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Run("should login with correct credentials", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		hashed, err := auth.HashPassword("Secret123456!")
		req.NoError(err)
		mockRepo.EXPECT().FindByUsername("alice").
			Return(domain.User{ID: 1, Username: "alice", Password: hashed}, nil).Times(1)

		user, token, err := svc.Login("alice", "Secret123456!")
		req.NoError(err)
		req.Equal(domain.UserID(1), user.ID)
		req.NotEmpty(token)
	})

	t.Run("should not reveal whether the user exists", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		hashed, err := auth.HashPassword("Secret123456!")
		req.NoError(err)
		mockRepo.EXPECT().FindByUsername("ghost").
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().FindByUsername("alice").
			Return(domain.User{ID: 1, Username: "alice", Password: hashed}, nil).Times(1)

		_, _, unknownErr := svc.Login("ghost", "whatever")
		_, _, wrongErr := svc.Login("alice", "WrongPass123!")

		req.ErrorIs(unknownErr, errors.ErrInvalidCredentials)
		req.ErrorIs(wrongErr, errors.ErrInvalidCredentials)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	req := require.New(t)
	svc, mockRepo, _ := newAuthService(t)

	hashed, err := auth.HashPassword("Secret123456!")
	req.NoError(err)
	mockRepo.EXPECT().FindByUsername("alice").
		Return(domain.User{ID: 1, Username: "alice", Password: hashed}, nil).Times(1)

	_, _, err = svc.AdminLogin("alice", "Secret123456!")
	req.ErrorIs(err, errors.ErrUnauthorized)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	t.Run("should keep the password when none is given", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		current := domain.User{ID: 1, Email: "a@example.com", Username: "alice",
			Password: "old-hash", NickName: "Alice"}
		mockRepo.EXPECT().FindByID(domain.UserID(1)).Return(current, nil).Times(1)
		mockRepo.EXPECT().FindByUsername("alice2").
			Return(domain.User{}, errors.ErrNotFound).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).
			DoAndReturn(func(u domain.User) (domain.User, error) { return u, nil }).Times(1)

		updated, err := svc.UpdateProfile(1, UpdateProfileInput{
			Username: "alice2",
			NickName: "Allie",
		})

		req.NoError(err)
		req.Equal("old-hash", updated.Password)
		req.Equal("alice2", updated.Username)
		req.Equal("Allie", updated.NickName)
	})

	t.Run("should validate the new username even without a password change", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().FindByID(domain.UserID(1)).
			Return(domain.User{ID: 1, Username: "alice"}, nil).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).Times(0)

		_, err := svc.UpdateProfile(1, UpdateProfileInput{Username: "ab", NickName: "Allie"})
		req.ErrorIs(err, errors.ErrValidation)
	})

	t.Run("should reject a weak replacement password", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().FindByID(domain.UserID(1)).
			Return(domain.User{ID: 1, Username: "alice"}, nil).Times(1)
		mockRepo.EXPECT().FindByUsername("alice").
			Return(domain.User{ID: 1, Username: "alice"}, nil).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).Times(0)

		_, err := svc.UpdateProfile(1, UpdateProfileInput{
			Username: "alice", NickName: "Allie", Password: "alllowercasepassword"})
		req.ErrorIs(err, errors.ErrInvalidPassword)
	})

	t.Run("should refuse a username held by someone else", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		mockRepo.EXPECT().FindByID(domain.UserID(1)).
			Return(domain.User{ID: 1, Username: "alice"}, nil).Times(1)
		mockRepo.EXPECT().FindByUsername("bob").
			Return(domain.User{ID: 2, Username: "bob"}, nil).Times(1)

		_, err := svc.UpdateProfile(1, UpdateProfileInput{Username: "bob", NickName: "A"})
		req.ErrorIs(err, errors.ErrUsernameTaken)
	})

	t.Run("should allow keeping one's own username", func(t *testing.T) {
		req := require.New(t)
		svc, mockRepo, _ := newAuthService(t)

		current := domain.User{ID: 1, Email: "a@example.com", Username: "alice",
			Password: "old-hash", NickName: "Alice"}
		mockRepo.EXPECT().FindByID(domain.UserID(1)).Return(current, nil).Times(1)
		mockRepo.EXPECT().FindByUsername("alice").Return(current, nil).Times(1)
		mockRepo.EXPECT().Save(gomock.Any()).
			DoAndReturn(func(u domain.User) (domain.User, error) { return u, nil }).Times(1)

		_, err := svc.UpdateProfile(1, UpdateProfileInput{Username: "alice", NickName: "Allie"})
		req.NoError(err)
	})
}
