package postgres

import (
	"context"
	"errors"
	"time"

	"cargo-dispatch/internal/logger"
	appErrors "cargo-dispatch/pkg/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type txKey struct{}

// conn returns the transaction bound to ctx when one is active, otherwise
// the base connection. Repositories call this so the same code runs inside
// and outside a composite operation.
func (d *DB) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return d.DB
}

const (
	txMaxAttempts = 3
	txRetryDelay  = 25 * time.Millisecond
)

// RunInTx runs fn inside a database transaction, binding the transaction
// into the context so repositories participate automatically. Serialization
// failures, deadlocks and lock timeouts are retried a bounded number of
// times before surfacing as ErrContention.
func (d *DB) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for attempt := 1; attempt <= txMaxAttempts; attempt++ {
		err = d.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(context.WithValue(ctx, txKey{}, tx))
		})
		if !isRetryable(err) {
			return err
		}

		logger.Warn("Transaction hit contention, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(txRetryDelay * time.Duration(attempt)):
		}
	}
	return appErrors.ErrContention
}

// isRetryable reports whether err is a transient concurrency failure:
// serialization_failure (40001), deadlock_detected (40P01) or
// lock_not_available (55P03).
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "55P03":
		return true
	}
	return false
}
