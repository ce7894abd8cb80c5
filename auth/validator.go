package auth

import (
	"fmt"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"chat-hall/errors"
)

var validate = validator.New()

type RegisterRequest struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,min=3,max=32"`
	Password string `validate:"required,min=12,max=72"`
	NickName string `validate:"required,max=64"`
}

func ValidateRegister(req RegisterRequest) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return ValidatePassword(req.Password)
}

type profileRequest struct {
	Username string `validate:"required,min=3,max=32"`
	NickName string `validate:"required,max=64"`
}

// ValidateProfile checks the fields a profile update may change without
// touching the password.
func ValidateProfile(username, nickName string) error {
	if err := validate.Struct(profileRequest{Username: username, NickName: nickName}); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrValidation, err)
	}
	return nil
}

// ValidatePassword enforces length bounds and the complexity rule (upper,
// lower, digit, special).
func ValidatePassword(password string) error {
	if len(password) < 12 || len(password) > 72 {
		return errors.ErrInvalidPassword
	}
	if !isPasswordComplex(password) {
		return errors.ErrInvalidPassword
	}
	return nil
}

// allowed avatar content types, sniffed from the bytes rather than trusted
// from the client.
var allowedAvatarTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
}

// ValidateAvatar accepts an empty avatar; non-empty bytes must sniff as a
// supported image type.
func ValidateAvatar(avatar []byte) error {
	if len(avatar) == 0 {
		return nil
	}
	detected := mimetype.Detect(avatar)
	if _, ok := allowedAvatarTypes[detected.String()]; !ok {
		return errors.ErrInvalidAvatar
	}
	return nil
}

func isPasswordComplex(s string) bool {
	var (
		hasUpper   = false
		hasLower   = false
		hasNumber  = false
		hasSpecial = false
	)
	for _, char := range s {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasNumber && hasSpecial
}
