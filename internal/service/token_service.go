package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/dtroode/expense-auth/internal/token"
)

// TokenService issues access tokens for users and resolves them back to user ids.
type TokenService struct {
	manager model.TokenManager
	ttl     time.Duration
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, ttl time.Duration, logger *logger.Logger) *TokenService {
	if ttl <= 0 {
		ttl = token.DefaultTTL
	}
	return &TokenService{manager: manager, ttl: ttl, logger: logger}
}

func (s *TokenService) Issue(ctx context.Context, user model.User) (model.AccessToken, error) {
	access, err := s.manager.Issue(model.TokenClaims{UserID: user.ID, Email: user.Email}, s.ttl)
	if err != nil {
		s.logger.ErrorContext(ctx, "Token service: failed to issue access token",
			"user_id", user.ID,
			"error", err.Error())
		return model.AccessToken{}, fmt.Errorf("issue access: %w", err)
	}

	return access, nil
}

func (s *TokenService) GetUserID(ctx context.Context, accessToken string) (int64, error) {
	claims, err := s.manager.Verify(accessToken)
	if err != nil {
		s.logger.DebugContext(ctx, "Token service: access token rejected", "error", err.Error())
		return 0, err
	}

	return claims.UserID, nil
}
