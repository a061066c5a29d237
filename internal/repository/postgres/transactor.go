package postgres

import (
	"context"

	"github.com/dtroode/expense-auth/internal/model"
)

var _ model.Transactor = (*Transactor)(nil)

// Transactor binds repositories to a single database transaction.
type Transactor struct {
	db *Connection
}

func NewTransactor(db *Connection) *Transactor {
	return &Transactor{db: db}
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context, stores model.Stores) error) error {
	return WithTx(ctx, t.db.DB, nil, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, model.Stores{
			Users: NewUserRepository(tx),
			Codes: NewRecoveryCodeRepository(tx),
		})
	})
}

// Stores returns repositories that run outside any transaction.
func (t *Transactor) Stores() model.Stores {
	return model.Stores{
		Users: NewUserRepository(t.db.DB),
		Codes: NewRecoveryCodeRepository(t.db.DB),
	}
}
