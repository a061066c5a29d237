package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/expense-auth/internal/model"
)

var (
	// ErrExpired is returned when the token's exp is not after the current time.
	ErrExpired = errors.New("access token expired")
	// ErrInvalidSignature is returned for any token that cannot be trusted.
	ErrInvalidSignature = errors.New("access token is invalid")
)

// DefaultTTL is the access token lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

const typeAccess = "access"

// Claims represents JWT claims of an access token.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	TokenType string `json:"typ"`
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	clock     model.Clock
}

// Option configures JWT.
type Option func(*JWT)

// WithClock overrides the time source used for issuing and validating.
func WithClock(clock model.Clock) Option {
	return func(j *JWT) {
		j.clock = clock
	}
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{secretKey: []byte(secretKey), clock: model.SystemClock}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Issue signs an access token for claims valid for ttl.
// The issue time is truncated to the second so exp is exactly iat plus ttl.
func (j *JWT) Issue(claims model.TokenClaims, ttl time.Duration) (model.AccessToken, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := j.clock.Now().Truncate(jwt.TimePrecision)
	expiresAt := now.Add(ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(claims.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:     claims.Email,
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return model.AccessToken{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return model.AccessToken{Token: tokenString, ExpiresAt: expiresAt}, nil
}

// Verify validates the token and extracts its claims.
func (j *JWT) Verify(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithTimeFunc(j.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.TokenClaims{}, ErrExpired
		}
		return model.TokenClaims{}, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
	if !token.Valid {
		return model.TokenClaims{}, ErrInvalidSignature
	}
	if claims.TokenType != typeAccess {
		return model.TokenClaims{}, fmt.Errorf("%w: token type mismatch: %s", ErrInvalidSignature, claims.TokenType)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return model.TokenClaims{}, fmt.Errorf("%w: bad subject %q", ErrInvalidSignature, claims.Subject)
	}

	return model.TokenClaims{UserID: userID, Email: claims.Email}, nil
}
