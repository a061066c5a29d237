package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/expense-auth/internal/model"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

var userColumns = []string{"id", "email", "password_hash", "first_name", "last_name", "birth_date", "created_at", "updated_at"}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	birth := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`(?s)SELECT id, email, password_hash.*FROM users WHERE lower\(email\) = lower\(\$1\)`).
			WithArgs("ann@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns).
				AddRow(int64(1), "ann@example.com", "$argon2id$hash", "Ann", "Lee", birth, now, now))

		user, err := NewUserRepository(db).GetByEmail(ctx, "ann@example.com")
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
		assert.Equal(t, "$argon2id$hash", user.PasswordHash)
		assert.Equal(t, birth, user.BirthDate)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users WHERE lower\(email\)`).
			WithArgs("nobody@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := NewUserRepository(db).GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("db error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`FROM users WHERE lower\(email\)`).
			WillReturnError(errors.New("db down"))

		_, err := NewUserRepository(db).GetByEmail(ctx, "ann@example.com")
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
		assert.Contains(t, err.Error(), "failed to get user by email")
	})
}

func TestUserRepository_GetIdentityByEmail_OmitsHash(t *testing.T) {
	db, mock := newMockDB(t)
	birth := time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(`(?s)SELECT id, email, first_name, last_name, birth_date, created_at, updated_at\s+FROM users`).
		WithArgs("ann@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "birth_date", "created_at", "updated_at"}).
			AddRow(int64(3), "ann@example.com", "Ann", "Lee", birth, now, now))

	user, err := NewUserRepository(db).GetIdentityByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Empty(t, user.PasswordHash)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM users WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := NewUserRepository(db).GetByID(context.Background(), 9)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := model.User{
		Email:        "ann@example.com",
		PasswordHash: "$argon2id$hash",
		FirstName:    "Ann",
		LastName:     "Lee",
		BirthDate:    time.Date(1990, 5, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`(?s)INSERT INTO users .* RETURNING id`).
			WithArgs(user.Email, user.PasswordHash, user.FirstName, user.LastName, user.BirthDate, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

		saved, err := NewUserRepository(db).Create(ctx, user)
		require.NoError(t, err)
		assert.Equal(t, int64(11), saved.ID)
		assert.Equal(t, user.Email, saved.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		_, err := NewUserRepository(db).Create(ctx, user)
		require.ErrorIs(t, err, model.ErrAlreadyExists)
	})

	t.Run("other error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pgconn.PgError{Code: "23502"})

		_, err := NewUserRepository(db).Create(ctx, user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrAlreadyExists)
	})
}

func TestUserRepository_UpdatePasswordHash(t *testing.T) {
	ctx := context.Background()

	t.Run("updated", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE users SET password_hash = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("new-hash", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewUserRepository(db).UpdatePasswordHash(ctx, 5, "new-hash"))
	})

	t.Run("missing user", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectExec(`UPDATE users`).
			WithArgs("new-hash", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := NewUserRepository(db).UpdatePasswordHash(ctx, 5, "new-hash")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}
