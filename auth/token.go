package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-hall/domain"
)

// CustomClaims is the data carried inside every session JWT.
type CustomClaims struct {
	UserID string   `json:"user_id"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

func (c CustomClaims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (c CustomClaims) User() (domain.UserID, error) {
	id, err := strconv.ParseUint(c.UserID, 10, 64)
	return domain.UserID(id), err
}

// TokenManager signs and validates session tokens with a single HS256 key.
type TokenManager struct {
	key []byte
	ttl time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{key: []byte(secret), ttl: ttl}
}

// Generate creates a signed JWT for a user with their role set.
func (m *TokenManager) Generate(userID domain.UserID, roles []string) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID: strconv.FormatUint(uint64(userID), 10),
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "chat-hall",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.key)
}

// Validate parses and checks the signature and expiration of a JWT string.
func (m *TokenManager) Validate(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return m.key, nil
		})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
