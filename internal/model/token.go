package model

import "time"

// TokenClaims is the identity carried by an access token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// AccessToken is a signed bearer token and its absolute expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	Issue(claims TokenClaims, ttl time.Duration) (AccessToken, error)
	Verify(token string) (TokenClaims, error)
}
