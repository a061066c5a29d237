package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/expense-auth/internal/model"
)

var _ model.RecoveryCodeStore = (*RecoveryCodeRepository)(nil)

type RecoveryCodeRepository struct {
	db DBTX
}

func NewRecoveryCodeRepository(db DBTX) *RecoveryCodeRepository {
	return &RecoveryCodeRepository{
		db: db,
	}
}

func (r *RecoveryCodeRepository) Create(ctx context.Context, code model.RecoveryCode) error {
	query := `INSERT INTO recovery_codes (id, user_id, code_hash, used, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.ExecContext(ctx, query,
		code.ID, code.UserID, code.CodeHash, code.Used, code.CreatedAt, code.ExpiresAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create recovery code: %w", err)
	}

	return nil
}

func (r *RecoveryCodeRepository) GetByHash(ctx context.Context, codeHash []byte) (model.RecoveryCode, error) {
	var code model.RecoveryCode
	query := `SELECT id, user_id, code_hash, used, created_at, expires_at
			  FROM recovery_codes WHERE code_hash = $1`

	err := r.db.QueryRowContext(ctx, query, codeHash).Scan(
		&code.ID, &code.UserID, &code.CodeHash, &code.Used, &code.CreatedAt, &code.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.RecoveryCode{}, model.ErrNotFound
		}
		return model.RecoveryCode{}, fmt.Errorf("failed to get recovery code: %w", err)
	}

	return code, nil
}

func (r *RecoveryCodeRepository) DeleteUnusedByUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM recovery_codes WHERE user_id = $1 AND NOT used`

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unused recovery codes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n, nil
}

func (r *RecoveryCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `UPDATE recovery_codes SET used = TRUE
			  WHERE id = $1 AND NOT used AND expires_at > $2`

	res, err := r.db.ExecContext(ctx, query, id, now)
	if err != nil {
		return fmt.Errorf("failed to mark recovery code used: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return model.ErrCodeUnavailable
	}

	return nil
}

func (r *RecoveryCodeRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM recovery_codes WHERE expires_at <= $1`

	res, err := r.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired recovery codes: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return n, nil
}
