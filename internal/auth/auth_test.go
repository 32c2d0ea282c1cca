package auth

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"hrportal_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- Пароли ---

func TestPasswordHasher_HashAndCompare(t *testing.T) {
	h := NewPasswordHasher(4) // поднимается до минимума
	assert.Equal(t, MinBcryptCost, h.cost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))

	assert.True(t, h.Compare(hash, "correct horse"))
	assert.False(t, h.Compare(hash, "wrong horse"))
}

func TestPasswordHasher_RejectsShortPassword(t *testing.T) {
	_, err := NewPasswordHasher(MinBcryptCost).Hash("short")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

// --- Токены ---

func TestTokenIssuer_VerificationCode(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(24*time.Hour, time.Hour).WithClock(fixedClock(now))

	digits := regexp.MustCompile(`^\d{6}$`)
	for i := 0; i < 50; i++ {
		code, expiresAt, err := issuer.IssueVerificationToken()
		require.NoError(t, err)
		assert.Regexp(t, digits, code)
		assert.Equal(t, now.Add(24*time.Hour), expiresAt)
	}
}

func TestTokenIssuer_ResetToken(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewTokenIssuer(24*time.Hour, time.Hour).WithClock(fixedClock(now))

	first, expiresAt, err := issuer.IssueResetToken()
	require.NoError(t, err)
	assert.Len(t, first, 80)
	assert.Equal(t, now.Add(time.Hour), expiresAt)

	second, _, err := issuer.IssueResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

func TestTokenIssuer_RandomFailure(t *testing.T) {
	issuer := NewTokenIssuer(time.Hour, time.Hour).WithRandom(failingReader{})

	_, _, err := issuer.IssueVerificationToken()
	assert.Error(t, err)

	_, _, err = issuer.IssueResetToken()
	assert.Error(t, err)
}

func TestHashToken(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

// --- Сессии ---

func TestSessionIssuer_RoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewSessionIssuer(testSecret, 7*24*time.Hour, "hrportal")
	require.NoError(t, err)
	s.WithClock(fixedClock(now))

	token, expiresAt, err := s.Issue("user-1", models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	claims, err := s.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestSessionIssuer_Rejects(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewSessionIssuer(testSecret, time.Hour, "hrportal")
	require.NoError(t, err)
	s.WithClock(fixedClock(now))

	valid, _, err := s.Issue("user-1", models.RoleEmployee)
	require.NoError(t, err)

	other, err := NewSessionIssuer("another-secret-another-secret-xx", time.Hour, "hrportal")
	require.NoError(t, err)
	other.WithClock(fixedClock(now))
	foreign, _, err := other.Issue("user-1", models.RoleEmployee)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "hrportal",
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UserID: "user-1",
		Role:   models.RoleSuperAdmin,
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		clock time.Time
	}{
		{"empty", "", now},
		{"garbage", "not-a-jwt", now},
		{"wrong secret", foreign, now},
		{"alg none", unsigned, now},
		{"tampered", valid[:len(valid)-2] + "xx", now},
		{"expired", valid, now.Add(2 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.WithClock(fixedClock(tt.clock))
			_, err := s.Validate(tt.token)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestNewSessionIssuer_RequiresSecret(t *testing.T) {
	_, err := NewSessionIssuer("", time.Hour, "")
	assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestRoles(t *testing.T) {
	assert.True(t, IsAdminRole(models.RoleAdmin))
	assert.True(t, IsAdminRole(models.RoleSuperAdmin))
	assert.False(t, IsAdminRole(models.RoleEmployee))

	self := &Claims{UserID: "u1", Role: models.RoleEmployee}
	assert.True(t, CanViewEmployee(self, "u1"))
	assert.False(t, CanViewEmployee(self, "u2"))
	assert.True(t, CanViewEmployee(&Claims{UserID: "a", Role: models.RoleAdmin}, "u2"))
	assert.False(t, CanViewEmployee(nil, "u1"))
}
