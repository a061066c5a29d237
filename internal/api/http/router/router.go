package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/expense-auth/internal/api/http/handler"
	"github.com/dtroode/expense-auth/internal/api/http/middleware"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

// Router builds the REST API.
type Router struct {
	credentialService handler.CredentialService
	recoveryService   handler.RecoveryService
	tokenService      middleware.TokenService
	contextManager    model.ContextManager
	pinger            handler.Pinger
	logger            *logger.Logger
}

// New creates new HTTP Router instance. pinger may be nil.
func New(
	credentialService handler.CredentialService,
	recoveryService handler.RecoveryService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	pinger handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		credentialService: credentialService,
		recoveryService:   recoveryService,
		tokenService:      tokenService,
		contextManager:    contextManager,
		pinger:            pinger,
		logger:            logger,
	}
}

// Register wires routes and middleware into a gin engine.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	authHandler := handler.NewAuth(r.credentialService, r.recoveryService, r.logger)
	accountHandler := handler.NewAccount(r.credentialService, r.contextManager, r.pinger, r.logger)

	e := gin.New()
	e.Use(logging.Handle, gin.CustomRecovery(func(c *gin.Context, p any) {
		r.logger.ErrorContext(c.Request.Context(), "HTTP handler panicked", "panic", p)
		c.AbortWithStatusJSON(http.StatusInternalServerError, handler.ErrorResponse{Error: "internal server error"})
	}))
	e.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handler.ErrorResponse{Error: "route not found"})
	})

	e.GET("/healthz", accountHandler.Health)

	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/profile", authenticate.Handle, accountHandler.Profile)

	return e
}
