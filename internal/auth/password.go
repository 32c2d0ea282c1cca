package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 8
	// bcrypt игнорирует все после 72 байт
	MaxPasswordLength = 72
	MinBcryptCost     = 10
)

var ErrWeakPassword = errors.New("password must be at least 8 characters long")

// PasswordHasher хеширует пароли bcrypt с заданной стоимостью
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher - стоимость ниже MinBcryptCost поднимается до минимума
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash создает bcrypt хеш пароля
func (h *PasswordHasher) Hash(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// Compare проверяет пароль против хеша
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePassword проверяет длину пароля
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must be at most %d bytes long", MaxPasswordLength)
	}
	return nil
}
