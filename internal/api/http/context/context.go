package context

import "context"

type userIDKey struct{}

// Manager keeps the authenticated user ID in request contexts.
type Manager struct{}

// NewManager creates a new HTTP context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying userID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext returns the user ID set by SetUserIDToContext.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}
