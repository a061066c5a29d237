package router

import (
	"context"
	"strings"

	"github.com/dtroode/expense-auth/internal/api/grpc/authapi"
	"github.com/dtroode/expense-auth/internal/api/grpc/handler"
	"github.com/dtroode/expense-auth/internal/api/grpc/middleware"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

// Router builds the gRPC server for the auth.v1 services.
type Router struct {
	credentialService handler.CredentialService
	recoveryService   handler.RecoveryService
	tokenService      middleware.TokenService
	contextManager    model.ContextManager
	logger            *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	credentialService handler.CredentialService,
	recoveryService handler.RecoveryService,
	tokenService middleware.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		credentialService: credentialService,
		recoveryService:   recoveryService,
		tokenService:      tokenService,
		contextManager:    contextManager,
		logger:            logger,
	}
}

// authSkip reports whether a call needs a bearer token.
// The public Auth service and health checks are open.
func authSkip(_ context.Context, c interceptors.CallMeta) bool {
	method := c.FullMethod()
	return !strings.HasPrefix(method, "/"+authapi.AuthServiceName+"/") &&
		!strings.HasPrefix(method, "/"+healthpb.Health_ServiceDesc.ServiceName+"/")
}

// Register registers all gRPC services and middleware.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)
	recoverFrom := recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		r.logger.ErrorContext(ctx, "gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoverFrom),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverFrom),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authSkip),
			),
		),
	)
	r.registerAuthRoutes(s)
	r.registerAccountRoutes(s)
	healthpb.RegisterHealthServer(s, health.NewServer())

	return s
}

func (r *Router) registerAuthRoutes(server *grpc.Server) {
	authHandler := handler.NewAuth(r.credentialService, r.recoveryService, r.logger)
	authapi.RegisterAuthServer(server, authHandler)
}

func (r *Router) registerAccountRoutes(server *grpc.Server) {
	accountHandler := handler.NewAccount(r.credentialService, r.contextManager, r.logger)
	authapi.RegisterAccountServer(server, accountHandler)
}
