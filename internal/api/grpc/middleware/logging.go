package middleware

import (
	"context"
	"time"

	"github.com/dtroode/expense-auth/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
// Request payloads are never logged since they carry passwords and recovery codes.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	statusCode := statusOf(err)
	attrs := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", statusCode.String(),
	}

	switch statusCode {
	case codes.OK:
		l.logger.Info("gRPC request completed", attrs...)
	case codes.Internal, codes.Unknown, codes.Unavailable:
		l.logger.Error("gRPC request failed", append(attrs, "error", err.Error())...)
	default:
		l.logger.Warn("gRPC request rejected", append(attrs, "error", err.Error())...)
	}

	return resp, err
}

func statusOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}
