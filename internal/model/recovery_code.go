package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecoveryCodeTTL is the default lifetime of a recovery code.
const RecoveryCodeTTL = 15 * time.Minute

// RecoverySweepInterval is the default period between expired code sweeps.
const RecoverySweepInterval = 10 * time.Minute

// RecoveryCodeStore persists password recovery codes.
type RecoveryCodeStore interface {
	Create(ctx context.Context, code RecoveryCode) error
	GetByHash(ctx context.Context, codeHash []byte) (RecoveryCode, error)
	DeleteUnusedByUser(ctx context.Context, userID int64) (int64, error)
	// MarkUsed flips used to true only if the code is still unused and not expired at now.
	// It returns ErrCodeUnavailable when no row was updated.
	MarkUsed(ctx context.Context, id uuid.UUID, now time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// RecoveryCode is a single-use proof of password recovery intent.
// Only the SHA-256 digest of the code handed to the user is stored.
type RecoveryCode struct {
	ID        uuid.UUID
	UserID    int64
	CodeHash  []byte
	Used      bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Usable reports whether the code can still be redeemed at now.
func (c RecoveryCode) Usable(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// RecoveryMessage is what the notifier needs to deliver a recovery code.
type RecoveryMessage struct {
	Email     string
	FirstName string
	Code      string
	ExpiresAt time.Time
}

// Notifier delivers recovery codes out of band.
type Notifier interface {
	SendRecoveryCode(ctx context.Context, msg RecoveryMessage) error
}
