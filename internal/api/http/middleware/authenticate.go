package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

const (
	msgMissingToken = "missing authorization token"
	msgInvalidToken = "invalid authorization token"
)

// TokenService resolves user ID from bearer tokens.
type TokenService interface {
	GetUserID(ctx context.Context, token string) (int64, error)
}

// Authenticate validates bearer tokens and stores the user ID in the request context.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handle aborts with 401 unless the request carries a valid bearer token.
func (m *Authenticate) Handle(c *gin.Context) {
	scheme, tokenString, found := strings.Cut(c.GetHeader("Authorization"), " ")
	tokenString = strings.TrimSpace(tokenString)
	if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgMissingToken})
		return
	}

	ctx := c.Request.Context()
	userID, err := m.tokenService.GetUserID(ctx, tokenString)
	if err != nil || userID <= 0 {
		m.logger.Debug("Authenticate middleware: token rejected", "path", c.FullPath())
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgInvalidToken})
		return
	}

	c.Request = c.Request.WithContext(m.contextManager.SetUserIDToContext(ctx, userID))
	c.Next()
}
