package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/model"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func TestJWT_AccessToken_Roundtrip(t *testing.T) {
	j := NewJWT("secret")

	access, err := j.Issue(model.TokenClaims{UserID: 42, Email: "ann@example.com"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, access.Token)

	got, err := j.Verify(access.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestJWT_ExpiryBoundary(t *testing.T) {
	start := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start}
	j := NewJWT("secret", WithClock(clock))
	ttl := 24 * time.Hour

	access, err := j.Issue(model.TokenClaims{UserID: 7, Email: "a@b.c"}, ttl)
	require.NoError(t, err)
	assert.Equal(t, start.Add(ttl), access.ExpiresAt)

	clock.now = start.Add(ttl - time.Second)
	_, err = j.Verify(access.Token)
	require.NoError(t, err)

	clock.now = start.Add(ttl)
	_, err = j.Verify(access.Token)
	require.ErrorIs(t, err, ErrExpired)

	clock.now = start.Add(ttl + time.Hour)
	_, err = j.Verify(access.Token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestJWT_ExpiryWithSubsecondClock(t *testing.T) {
	issued := time.Date(2026, 10, 17, 12, 0, 0, 750_000_000, time.UTC)
	clock := &fakeClock{now: issued}
	j := NewJWT("secret", WithClock(clock))
	ttl := time.Hour

	access, err := j.Issue(model.TokenClaims{UserID: 7, Email: "a@b.c"}, ttl)
	require.NoError(t, err)
	assert.Equal(t, issued.Truncate(time.Second).Add(ttl), access.ExpiresAt)

	clock.now = access.ExpiresAt.Add(-time.Nanosecond)
	_, err = j.Verify(access.Token)
	require.NoError(t, err)

	clock.now = access.ExpiresAt
	_, err = j.Verify(access.Token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestJWT_DefaultTTL(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	j := NewJWT("secret", WithClock(&fakeClock{now: start}))

	access, err := j.Issue(model.TokenClaims{UserID: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, start.Add(DefaultTTL), access.ExpiresAt)
}

func TestJWT_WrongSecret(t *testing.T) {
	access, err := NewJWT("secret").Issue(model.TokenClaims{UserID: 1}, time.Hour)
	require.NoError(t, err)

	_, err = NewJWT("other").Verify(access.Token)
	require.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWT_RejectsForeignTokens(t *testing.T) {
	secret := []byte("secret")
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
		t.Helper()
		s, err := jwt.NewWithClaims(method, claims).SignedString(key)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
		},
		{
			name: "none algorithm",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: exp},
					TokenType:        typeAccess,
				})
			},
		},
		{
			name: "wrong token type",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, secret, Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "1", ExpiresAt: exp},
					TokenType:        "refresh",
				})
			},
		},
		{
			name: "non numeric subject",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, secret, Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "abc", ExpiresAt: exp},
					TokenType:        typeAccess,
				})
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				return sign(t, jwt.SigningMethodHS256, secret, Claims{
					RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
					TokenType:        typeAccess,
				})
			},
		},
	}

	j := NewJWT(string(secret))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := j.Verify(tt.token(t))
			require.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}
