//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"chat-hall/auth"
	"chat-hall/contract"
	"chat-hall/domain"
	"chat-hall/domain/event"
	"chat-hall/errors"
	"chat-hall/repositories"
)

type Token string

type RegisterInput struct {
	Email    string
	Username string
	Password string
	NickName string
	Avatar   []byte
}

type UpdateProfileInput struct {
	Username string
	Password string // empty keeps the current password
	NickName string
	Avatar   []byte // nil keeps the current avatar
}

type IAuthService interface {
	Register(ctx context.Context, in RegisterInput) (domain.User, Token, error)
	Login(username, password string) (domain.User, Token, error)
	AdminLogin(username, password string) (domain.User, Token, error)
	UpdateProfile(userID domain.UserID, in UpdateProfileInput) (domain.User, error)
	Profile(userID domain.UserID) (domain.User, error)
}

type AuthService struct {
	log         *slog.Logger
	users       repositories.IUserRepository
	tokens      *auth.TokenManager
	broadcaster contract.IBroadcaster
}

func NewAuthService(log *slog.Logger, users repositories.IUserRepository,
	tokens *auth.TokenManager, broadcaster contract.IBroadcaster) *AuthService {
	return &AuthService{log: log, users: users, tokens: tokens, broadcaster: broadcaster}
}

// Register creates a new account. The very first registered user becomes
// the admin; later accounts start as plain users. Admin sinks are told
// about every registration.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, Token, error) {
	valReq := auth.RegisterRequest{
		Email:    in.Email,
		Username: in.Username,
		Password: in.Password,
		NickName: in.NickName,
	}
	// Checked before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.User{}, "", err
	}
	if err := auth.ValidateAvatar(in.Avatar); err != nil {
		return domain.User{}, "", err
	}

	if err := s.requireFree(in.Email, in.Username, 0); err != nil {
		return domain.User{}, "", err
	}

	hashed, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("hashing failed: %w", err)
	}

	user := domain.NewUser(in.Email, in.Username, hashed, in.NickName)
	user.Avatar = in.Avatar

	existing, err := s.users.FindAll()
	if err != nil {
		return domain.User{}, "", err
	}
	user.IsAdmin = len(existing) == 0

	user, err = s.users.Save(user)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := s.tokens.Generate(user.ID, user.Roles())
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}

	s.broadcaster.ToAdmins(ctx, event.UserRegistered{
		UserID:   user.ID,
		Username: user.Username,
		NickName: user.NickName,
		At:       time.Now().UTC(),
	})
	return user, Token(token), nil
}

// Login verifies credentials and issues a session token. Lookup and
// comparison failures collapse into one generic error to prevent user
// enumeration.
func (s *AuthService) Login(username, password string) (domain.User, Token, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.Password)
	if err != nil || !match {
		return domain.User{}, "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Roles())
	if err != nil {
		return domain.User{}, "", errors.ErrTokenGeneration
	}
	return user, Token(token), nil
}

// AdminLogin is Login restricted to admin accounts.
func (s *AuthService) AdminLogin(username, password string) (domain.User, Token, error) {
	user, token, err := s.Login(username, password)
	if err != nil {
		return domain.User{}, "", err
	}
	if !user.IsAdmin {
		return domain.User{}, "", fmt.Errorf("%w: not an admin account", errors.ErrUnauthorized)
	}
	return user, token, nil
}

// UpdateProfile changes username, nickname and optionally password and
// avatar. An empty password keeps the current hash; a nil avatar keeps the
// current picture.
func (s *AuthService) UpdateProfile(userID domain.UserID, in UpdateProfileInput) (domain.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %d: %w", userID, err)
	}

	if err := auth.ValidateProfile(in.Username, in.NickName); err != nil {
		return domain.User{}, err
	}
	if err := s.requireFree("", in.Username, userID); err != nil {
		return domain.User{}, err
	}

	user.Username = in.Username
	user.NickName = in.NickName

	if in.Password != "" {
		if err := auth.ValidatePassword(in.Password); err != nil {
			return domain.User{}, err
		}
		hashed, err := auth.HashPassword(in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hashing failed: %w", err)
		}
		user.Password = hashed
	}

	if in.Avatar != nil {
		if err := auth.ValidateAvatar(in.Avatar); err != nil {
			return domain.User{}, err
		}
		user.Avatar = in.Avatar
	}

	return s.users.Save(user)
}

func (s *AuthService) Profile(userID domain.UserID) (domain.User, error) {
	return s.users.FindByID(userID)
}

// requireFree rejects an email or username already held by a different
// account. Empty values are skipped; self is excluded so a profile update
// can keep its own name.
func (s *AuthService) requireFree(email, username string, self domain.UserID) error {
	if email != "" {
		existing, err := s.users.FindByEmail(email)
		if err == nil && existing.ID != self {
			return errors.ErrEmailTaken
		}
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return err
		}
	}
	if username != "" {
		existing, err := s.users.FindByUsername(username)
		if err == nil && existing.ID != self {
			return errors.ErrUsernameTaken
		}
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return err
		}
	}
	return nil
}
