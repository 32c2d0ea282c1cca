package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"math/big"
	"time"
)

const (
	verificationCodeDigits = 6
	resetTokenBytes        = 40
)

// TokenIssuer выпускает одноразовые секреты: код подтверждения email и токен сброса пароля.
// Источник случайности только crypto/rand.
type TokenIssuer struct {
	verificationTTL time.Duration
	resetTTL        time.Duration
	now             func() time.Time
	random          io.Reader
}

func NewTokenIssuer(verificationTTL, resetTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		verificationTTL: verificationTTL,
		resetTTL:        resetTTL,
		now:             time.Now,
		random:          rand.Reader,
	}
}

// WithClock подменяет часы (для тестов)
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// WithRandom подменяет источник случайности (для тестов отказа)
func (i *TokenIssuer) WithRandom(r io.Reader) *TokenIssuer {
	i.random = r
	return i
}

// IssueVerificationToken - 6-значный код, равномерно распределенный в [000000, 999999]
func (i *TokenIssuer) IssueVerificationToken() (string, time.Time, error) {
	max := big.NewInt(1_000_000)
	n, err := rand.Int(i.random, max)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate verification code: %w", err)
	}
	code := fmt.Sprintf("%0*d", verificationCodeDigits, n.Int64())
	return code, i.now().Add(i.verificationTTL), nil
}

// IssueResetToken - 40 случайных байт (320 бит) в hex
func (i *TokenIssuer) IssueResetToken() (string, time.Time, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(i.random, buf); err != nil {
		return "", time.Time{}, fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), i.now().Add(i.resetTTL), nil
}

// HashToken - SHA-256 дайджест; в БД хранится только он, сам токен уходит в письме
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
