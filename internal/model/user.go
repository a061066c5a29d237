package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetIdentityByEmail returns the user without the password hash.
	GetIdentityByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, user User) (User, error)
	UpdatePasswordHash(ctx context.Context, userID int64, passwordHash string) error
}

// User represents a stored account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	BirthDate    time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SignupParams carries the signup form.
type SignupParams struct {
	Email           string `validate:"required,email"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required"`
	FirstName       string `validate:"required,max=100"`
	LastName        string `validate:"required,max=100"`
	BirthDate       string `validate:"required"`
}
