package utils

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/silenole/stickerbot/stickerbot/config"
)

// TransactionOptions configures transaction behavior
type TransactionOptions struct {
	IsolationLevel sql.IsolationLevel
	Timeout        time.Duration
}

// EconomicTransactionManager provides standardized transaction utilities for economic operations
type EconomicTransactionManager struct {
	db *bun.DB
}

func NewEconomicTransactionManager(db *bun.DB) *EconomicTransactionManager {
	return &EconomicTransactionManager{db: db}
}

// StandardTransactionOptions returns default transaction options
func StandardTransactionOptions() *TransactionOptions {
	return &TransactionOptions{
		IsolationLevel: sql.LevelReadCommitted,
		Timeout:        config.DefaultTxTimeout,
	}
}

// WithTransaction executes fn inside a database transaction. The transaction
// is rolled back when fn returns an error and committed otherwise.
func (etm *EconomicTransactionManager) WithTransaction(ctx context.Context, opts *TransactionOptions, fn func(context.Context, bun.Tx) error) error {
	if opts == nil {
		opts = StandardTransactionOptions()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	tx, err := etm.db.BeginTx(timeoutCtx, &sql.TxOptions{
		Isolation: opts.IsolationLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(timeoutCtx, tx); err != nil {
		return err
	}

	// A caller that already gave up must not see its work committed.
	if err := timeoutCtx.Err(); err != nil {
		return fmt.Errorf("transaction abandoned before commit: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
