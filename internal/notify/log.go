package notify

import (
	"context"

	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

var _ model.Notifier = (*Log)(nil)

// Log records deliveries without sending anything.
// Codes are written only when revealCodes is set, at debug level.
type Log struct {
	logger      *logger.Logger
	revealCodes bool
}

// NewLog creates a Log notifier. revealCodes is meant for local development only.
func NewLog(l *logger.Logger, revealCodes bool) *Log {
	return &Log{logger: l, revealCodes: revealCodes}
}

func (n *Log) SendRecoveryCode(ctx context.Context, msg model.RecoveryMessage) error {
	n.logger.InfoContext(ctx, "Notifier: recovery code issued, smtp disabled",
		"email", msg.Email, "expires_at", msg.ExpiresAt)
	if n.revealCodes {
		n.logger.DebugContext(ctx, "Notifier: recovery code",
			"email", msg.Email, "code", msg.Code)
	}
	return nil
}
