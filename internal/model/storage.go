package model

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by stores when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned by stores on a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrCodeUnavailable is returned when a recovery code is used, expired or gone.
	ErrCodeUnavailable = errors.New("recovery code unavailable")
)

// Stores groups stores bound to one unit of work.
type Stores struct {
	Users UserStore
	Codes RecoveryCodeStore
}

// Transactor runs fn inside a transaction. The stores passed to fn share it;
// any error returned by fn rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
