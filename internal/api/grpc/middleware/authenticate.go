package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	errMissingToken = errors.New("missing authorization token")
	errInvalidToken = errors.New("invalid authorization token")
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (int64, error)
}

// Authenticate validates bearer tokens and injects user ID into context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// AuthFunc parses Authorization header, validates token and returns a context with user ID.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var tokenString string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if authHeaders := md.Get("authorization"); len(authHeaders) > 0 {
			tokenString = strings.TrimSpace(strings.TrimPrefix(authHeaders[0], "Bearer "))
		}
	}

	userID, authErr := m.authenticateUser(ctx, tokenString)
	if authErr != nil {
		return nil, status.Error(codes.Unauthenticated, authErr.Error())
	}

	return m.contextManager.SetUserIDToContext(ctx, userID), nil
}

func (m *Authenticate) authenticateUser(ctx context.Context, tokenString string) (int64, error) {
	if tokenString == "" {
		return 0, errMissingToken
	}

	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil {
		m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
		return 0, errInvalidToken
	}

	if userID <= 0 {
		return 0, errInvalidToken
	}

	return userID, nil
}
