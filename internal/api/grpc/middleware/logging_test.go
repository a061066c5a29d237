package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/dtroode/expense-auth/internal/testutil"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestLogging_HandleGRPC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		handler   grpc.UnaryHandler
		wantCode  codes.Code
		wantLevel string
	}{
		{
			name: "success path",
			handler: func(ctx context.Context, req any) (any, error) {
				return "ok", nil
			},
			wantCode:  codes.OK,
			wantLevel: "level=INFO",
		},
		{
			name: "client error is a warning",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, status.Error(codes.InvalidArgument, "bad input")
			},
			wantCode:  codes.InvalidArgument,
			wantLevel: "level=WARN",
		},
		{
			name: "non-grpc error becomes Internal",
			handler: func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("boom")
			},
			wantCode:  codes.Internal,
			wantLevel: "level=ERROR",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lg, buf := testutil.MakeBufferLogger()
			info := &grpc.UnaryServerInfo{FullMethod: "/svc/Method"}
			resp, err := NewLogging(lg).HandleGRPC(context.Background(), struct{}{}, info, tt.handler)

			assert.Equal(t, tt.wantCode, statusOf(err))
			if tt.wantCode == codes.OK {
				assert.Equal(t, "ok", resp)
			}
			out := buf.String()
			assert.Contains(t, out, tt.wantLevel)
			assert.Contains(t, out, "method=/svc/Method")
		})
	}
}
