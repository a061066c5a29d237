package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dtroode/expense-auth/internal/apperr"
	"github.com/dtroode/expense-auth/internal/birthdate"
	"github.com/dtroode/expense-auth/internal/logger"
	"github.com/dtroode/expense-auth/internal/model"
)

const (
	// MsgRecoveryRequested is returned for every well-formed recovery request.
	MsgRecoveryRequested = "if an account exists, a recovery code has been sent"
	// MsgPasswordReset is returned after a successful reset.
	MsgPasswordReset = "password has been reset"

	codeBytes        = 16
	issueMaxAttempts = 3
)

// Recovery runs the forgot-password and reset-password flows.
type Recovery struct {
	stores   model.Stores
	tx       model.Transactor
	hasher   model.PasswordHasher
	notifier model.Notifier
	clock    model.Clock
	codeTTL  time.Duration
	validate *validator.Validate
	logger   *logger.Logger

	minRequestTime time.Duration
}

// RecoveryOption configures Recovery.
type RecoveryOption func(*Recovery)

// WithMinRequestTime makes RequestRecovery take at least d once the input is valid,
// whether or not an account matched.
func WithMinRequestTime(d time.Duration) RecoveryOption {
	return func(r *Recovery) {
		r.minRequestTime = d
	}
}

func NewRecovery(
	stores model.Stores,
	tx model.Transactor,
	hasher model.PasswordHasher,
	notifier model.Notifier,
	clock model.Clock,
	codeTTL time.Duration,
	logger *logger.Logger,
	opts ...RecoveryOption,
) *Recovery {
	if clock == nil {
		clock = model.SystemClock
	}
	if codeTTL <= 0 {
		codeTTL = model.RecoveryCodeTTL
	}
	r := &Recovery{
		stores:   stores,
		tx:       tx,
		hasher:   hasher,
		notifier: notifier,
		clock:    clock,
		codeTTL:  codeTTL,
		validate: newValidator(),
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RequestRecovery mints a recovery code when email and birth date match an account.
// Unknown emails and birth date mismatches get the same acknowledgement as a match.
func (r *Recovery) RequestRecovery(ctx context.Context, email, rawBirthDate string) (model.Ack, error) {
	email = normalizeEmail(email)
	if err := validateEmail(r.validate, email); err != nil {
		return model.Ack{}, err
	}

	submitted, err := birthdate.Parse(rawBirthDate)
	if err != nil {
		return model.Ack{}, apperr.Validation("birth date is invalid, use DD/MM/YYYY, DD-MM-YYYY or YYYY-MM-DD")
	}

	started := time.Now()
	defer r.padRequest(ctx, started)

	ack := model.Ack{Success: true, Message: MsgRecoveryRequested}

	user, err := r.stores.Users.GetIdentityByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		r.logger.Info("Recovery service: recovery requested for unknown email", "email", email)
		return ack, nil
	}
	if err != nil {
		r.logger.Error("Recovery service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	if !birthdate.FromTime(user.BirthDate).Equal(submitted) {
		r.logger.Info("Recovery service: birth date mismatch", "user_id", user.ID)
		return ack, nil
	}

	code, expiresAt, err := r.issueCode(ctx, user.ID)
	if err != nil {
		r.logger.Error("Recovery service: failed to issue recovery code",
			"user_id", user.ID,
			"error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	err = r.notifier.SendRecoveryCode(ctx, model.RecoveryMessage{
		Email:     user.Email,
		FirstName: user.FirstName,
		Code:      code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		r.logger.Error("Recovery service: failed to deliver recovery code",
			"user_id", user.ID,
			"error", err.Error())
		return model.Ack{}, apperr.ExternalService(err)
	}

	r.logger.Info("Recovery service: recovery code issued",
		"user_id", user.ID,
		"expires_at", expiresAt)

	return ack, nil
}

// padRequest blocks until minRequestTime has passed since started or ctx is done.
func (r *Recovery) padRequest(ctx context.Context, started time.Time) {
	remaining := r.minRequestTime - time.Since(started)
	if remaining <= 0 {
		return
	}

	timer := time.NewTimer(remaining)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// issueCode replaces any unused code of the user with a fresh one.
func (r *Recovery) issueCode(ctx context.Context, userID int64) (string, time.Time, error) {
	var lastErr error
	for attempt := 0; attempt < issueMaxAttempts; attempt++ {
		code, codeHash, err := newCode()
		if err != nil {
			return "", time.Time{}, err
		}

		now := r.clock.Now()
		rc := model.RecoveryCode{
			ID:        uuid.New(),
			UserID:    userID,
			CodeHash:  codeHash,
			CreatedAt: now,
			ExpiresAt: now.Add(r.codeTTL),
		}

		lastErr = r.tx.WithinTx(ctx, func(ctx context.Context, stores model.Stores) error {
			superseded, err := stores.Codes.DeleteUnusedByUser(ctx, userID)
			if err != nil {
				return err
			}
			if superseded > 0 {
				r.logger.Debug("Recovery service: superseded unused codes",
					"user_id", userID,
					"count", superseded)
			}
			return stores.Codes.Create(ctx, rc)
		})
		if lastErr == nil {
			return code, rc.ExpiresAt, nil
		}
		if !errors.Is(lastErr, model.ErrAlreadyExists) {
			return "", time.Time{}, lastErr
		}

		r.logger.Debug("Recovery service: concurrent issuance detected, retrying",
			"user_id", userID,
			"attempt", attempt+1)
	}

	return "", time.Time{}, fmt.Errorf("failed to issue code after %d attempts: %w", issueMaxAttempts, lastErr)
}

// ResetPassword redeems a recovery code and replaces the user's password hash.
// The code is consumed at most once even under concurrent attempts.
func (r *Recovery) ResetPassword(ctx context.Context, email, code, newPassword string) (model.Ack, error) {
	email = normalizeEmail(email)
	code = strings.TrimSpace(code)

	if err := checkPasswordPolicy(newPassword); err != nil {
		return model.Ack{}, err
	}
	if email == "" || code == "" {
		return model.Ack{}, r.rejectReset(ctx, email, "missing email or code")
	}

	rc, err := r.stores.Codes.GetByHash(ctx, hashCode(code))
	if errors.Is(err, model.ErrNotFound) {
		return model.Ack{}, r.rejectReset(ctx, email, "unknown code")
	}
	if err != nil {
		r.logger.Error("Recovery service: failed to get recovery code", "error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	user, err := r.stores.Users.GetIdentityByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Ack{}, r.rejectReset(ctx, email, "unknown email")
	}
	if err != nil {
		r.logger.Error("Recovery service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	if rc.UserID != user.ID {
		return model.Ack{}, r.rejectReset(ctx, email, "code belongs to another user")
	}
	if rc.Used {
		return model.Ack{}, r.rejectReset(ctx, email, "code already used")
	}
	if !rc.Usable(r.clock.Now()) {
		return model.Ack{}, r.rejectReset(ctx, email, "code expired")
	}

	passwordHash, err := r.hasher.Hash(ctx, newPassword)
	if err != nil {
		r.logger.Error("Recovery service: failed to hash password",
			"user_id", user.ID,
			"error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	err = r.tx.WithinTx(ctx, func(ctx context.Context, stores model.Stores) error {
		if err := stores.Users.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
			return err
		}
		return stores.Codes.MarkUsed(ctx, rc.ID, r.clock.Now())
	})
	switch {
	case errors.Is(err, model.ErrCodeUnavailable):
		return model.Ack{}, r.rejectReset(ctx, email, "code consumed concurrently or expired")
	case errors.Is(err, model.ErrNotFound):
		return model.Ack{}, r.rejectReset(ctx, email, "user removed")
	case err != nil:
		r.logger.Error("Recovery service: failed to reset password",
			"user_id", user.ID,
			"error", err.Error())
		return model.Ack{}, apperr.Internal(err)
	}

	r.logger.Info("Recovery service: password reset", "user_id", user.ID)

	return model.Ack{Success: true, Message: MsgPasswordReset}, nil
}

func (r *Recovery) rejectReset(ctx context.Context, email, reason string) error {
	r.logger.InfoContext(ctx, "Recovery service: reset rejected",
		"email", email,
		"reason", reason)
	return apperr.InvalidToken()
}

// Sweep deletes codes that expired before now.
func (r *Recovery) Sweep(ctx context.Context) (int64, error) {
	n, err := r.stores.Codes.DeleteExpired(ctx, r.clock.Now())
	if err != nil {
		r.logger.Error("Recovery service: failed to sweep expired codes", "error", err.Error())
		return 0, fmt.Errorf("failed to sweep expired codes: %w", err)
	}
	if n > 0 {
		r.logger.Debug("Recovery service: swept expired codes", "count", n)
	}
	return n, nil
}

// RunSweeper calls Sweep every interval until ctx is done.
// A non-positive interval falls back to model.RecoverySweepInterval.
func (r *Recovery) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		r.logger.Warn("Recovery service: invalid sweep interval, using default",
			"interval", interval,
			"default", model.RecoverySweepInterval)
		interval = model.RecoverySweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = r.Sweep(ctx)
		}
	}
}

func newCode() (string, []byte, error) {
	raw := make([]byte, codeBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", nil, fmt.Errorf("failed to generate recovery code: %w", err)
	}
	code := hex.EncodeToString(raw)
	return code, hashCode(code), nil
}

func hashCode(code string) []byte {
	h := sha256.Sum256([]byte(strings.ToLower(code)))
	return h[:]
}
