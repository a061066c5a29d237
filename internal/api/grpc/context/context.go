package context

import (
	"context"
	"strconv"

	"google.golang.org/grpc/metadata"
)

// userIDKey is the metadata key used to store and retrieve user ID in gRPC context.
const (
	userIDKey string = "user_id"
)

// Manager represents a gRPC context manager for user ID operations.
// It provides methods to set and retrieve user IDs from gRPC metadata.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext stores the authenticated user ID in the incoming metadata.
// Any user_id sent by the client is overwritten.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	value := strconv.FormatInt(userID, 10)

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.New(map[string]string{userIDKey: value})
	} else {
		md = md.Copy()
		md.Set(userIDKey, value)
	}

	return metadata.NewIncomingContext(ctx, md)
}

// GetUserIDFromContext retrieves a positive user ID from gRPC context metadata.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return 0, false
	}

	userIDs := md.Get(userIDKey)
	if len(userIDs) == 0 {
		return 0, false
	}

	userID, err := strconv.ParseInt(userIDs[0], 10, 64)
	if err != nil || userID <= 0 {
		return 0, false
	}

	return userID, true
}
