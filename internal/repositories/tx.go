package repositories

import (
	"database/sql"
	"fmt"
)

// TxRunner runs a function inside one database transaction. Services
// depend on this instead of *sql.DB directly so multi-step writes stay
// atomic and tests can substitute a pass-through fake.
type TxRunner interface {
	RunInTx(fn func(executor SQLExecutor) error) error
}

type sqlTxRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxRunner over the given connection pool.
func NewTxRunner(db *sql.DB) TxRunner {
	return &sqlTxRunner{db: db}
}

func (r *sqlTxRunner) RunInTx(fn func(executor SQLExecutor) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", ErrDatabaseError, err)
	}
	return nil
}
