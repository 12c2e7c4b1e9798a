package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onul/clinicdesk/internal/usecase"
)

// txBeginner is the slice of the pool the manager needs; tests substitute
// a mock here.
type txBeginner interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager hands out transactions backed by the shared pgx pool.
type TxManager struct {
	pool txBeginner
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return newTxManagerWithPool(pool)
}

func newTxManagerWithPool(pool txBeginner) *TxManager {
	return &TxManager{pool: pool}
}

// Begin opens a transaction. The caller owns it and must commit or
// roll back.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	pgxTx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &Tx{inner: pgxTx}, nil
}

// Tx adapts a pgx transaction to the usecase.Transaction port.
type Tx struct {
	inner pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.inner.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.inner.Rollback(ctx)
}

// PgxTx exposes the wrapped transaction to repositories in this package.
func (t *Tx) PgxTx() pgx.Tx {
	return t.inner
}
