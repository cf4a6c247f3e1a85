package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
)

type TxContextKey string

const txKey = TxContextKey("tx-context-key")

type Tx interface {
	IsOpen() bool
	IsOwner() bool
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	DriverName() string
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	QueryRowxContext(ctx context.Context, query string, args ...any) *sqlx.Row
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
	Rebind(query string) string
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type txState struct {
	closed bool
}

// Transaction is a struct that wraps the sqlx.Tx struct and provides additional functionality.
// Only the handle that began the transaction may commit or roll it back; handles
// joined through the context share its state but leave finalisation to the owner.
type Transaction struct {
	*sqlx.Tx
	logger ectologger.Logger
	state  *txState
	owner  bool
}

func NewTx(tx *sqlx.Tx, logger ectologger.Logger) Tx {
	return &Transaction{
		Tx:     tx,
		logger: logger,
		state:  &txState{},
		owner:  true,
	}
}

// GetTx returns the open transaction carried by ctx, or begins a new one and
// stores it on the returned context.
func GetTx(ctx context.Context, logger ectologger.Logger, db DB, opts *sql.TxOptions) (context.Context, Tx, error) {
	ctxTx, ok := ctx.Value(txKey).(*Transaction)
	if ok && ctxTx != nil && ctxTx.IsOpen() {
		return ctx, ctxTx.join(), nil
	}

	tx, err := db.BeginTxx(ctx, opts)
	if err != nil {
		logger.WithContext(ctx).WithError(err).Errorf("error while beginning transaction")
		return ctx, nil, fmt.Errorf("error while beginning transaction: %w", err)
	}

	newTx := &Transaction{
		Tx:     tx,
		logger: logger,
		state:  &txState{},
		owner:  true,
	}

	ctx = context.WithValue(ctx, txKey, newTx)
	return ctx, newTx, nil
}

func (t *Transaction) join() *Transaction {
	return &Transaction{
		Tx:     t.Tx,
		logger: t.logger,
		state:  t.state,
		owner:  false,
	}
}

func (t *Transaction) IsOpen() bool {
	return !t.state.closed
}

func (t *Transaction) IsOwner() bool {
	return t.owner
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.state.closed || !t.owner {
		return nil
	}

	err := t.Tx.Rollback()
	t.state.closed = true
	if err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while rolling back transaction")
		return fmt.Errorf("error while rolling back transaction: %w", err)
	}

	return nil
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.state.closed || !t.owner {
		return nil
	}

	err := t.Tx.Commit()
	t.state.closed = true
	if err != nil {
		t.logger.WithContext(ctx).WithError(err).Errorf("error while committing transaction")
		return fmt.Errorf("error while committing transaction: %w", err)
	}

	return nil
}
