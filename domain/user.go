// Package domain contains the core entities of the chat system.
// No runtime, network, or UI logic should be added here.
package domain

import "time"

type UserID uint64

// User is a registered account. Password holds the encoded Argon2id hash,
// never the plain text.
type User struct {
	ID        UserID
	Email     string
	Username  string
	Password  string
	NickName  string
	Avatar    []byte
	IsAdmin   bool
	CreatedAt time.Time
}

func NewUser(email, username, password, nickName string) User {
	return User{
		Email:     email,
		Username:  username,
		Password:  password,
		NickName:  nickName,
		CreatedAt: time.Now().UTC(),
	}
}

func (u User) HasAvatar() bool {
	return len(u.Avatar) > 0
}

// Roles returns the role set encoded in JWT claims.
func (u User) Roles() []string {
	if u.IsAdmin {
		return []string{"user", "admin"}
	}
	return []string{"user"}
}
