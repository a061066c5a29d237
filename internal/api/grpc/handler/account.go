package handler

import (
	"context"

	"github.com/dtroode/expense-auth/internal/api/grpc/authapi"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Account handles gRPC endpoints that require an authenticated caller.
type Account struct {
	authapi.UnimplementedAccountServer
	credentialService CredentialService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// NewAccount creates a new Account handler.
func NewAccount(credentialService CredentialService, contextManager model.ContextManager, logger *logger.Logger) *Account {
	return &Account{
		credentialService: credentialService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// Profile returns the caller's account.
func (h *Account) Profile(ctx context.Context, _ *authapi.ProfileRequest) (*authapi.User, error) {
	userID, ok := h.contextManager.GetUserIDFromContext(ctx)
	if !ok {
		h.logger.Error("Account handler: failed to get user ID from context")
		return nil, status.Error(codes.Unauthenticated, "unauthenticated")
	}

	user, err := h.credentialService.Profile(ctx, userID)
	if err != nil {
		h.logger.Error("Account handler: failed to get profile",
			"user_id", userID,
			"error", err.Error())
		return nil, handleError(err)
	}

	out := toUser(user)
	return &out, nil
}
