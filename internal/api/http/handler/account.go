package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Account serves endpoints that need an authenticated caller, plus health.
type Account struct {
	credentialService CredentialService
	contextManager    model.ContextManager
	pinger            Pinger
	logger            *logger.Logger
}

// NewAccount creates a new Account handler. pinger may be nil.
func NewAccount(credentialService CredentialService, contextManager model.ContextManager, pinger Pinger, logger *logger.Logger) *Account {
	return &Account{
		credentialService: credentialService,
		contextManager:    contextManager,
		pinger:            pinger,
		logger:            logger,
	}
}

// Profile handles GET /auth/profile.
func (h *Account) Profile(c *gin.Context) {
	userID, ok := h.contextManager.GetUserIDFromContext(c.Request.Context())
	if !ok {
		h.logger.Error("Account handler: failed to get user ID from context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	}

	user, err := h.credentialService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("Account handler: failed to get profile",
			"user_id", userID,
			"error", err.Error())
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUser(user))
}

// Health handles GET /healthz.
func (h *Account) Health(c *gin.Context) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.Ping(ctx); err != nil {
			h.logger.Error("Account handler: storage unreachable", "error", err.Error())
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
