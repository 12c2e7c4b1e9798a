package postgres

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres aborts one of two competing transactions with these codes.
// The aborted transaction is safe to run again.
const (
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
)

// Retrier re-runs transactions aborted by lock contention, backing off
// exponentially between attempts.
type Retrier struct {
	maxAttempts int
	minDelay    time.Duration
	maxDelay    time.Duration
	deadline    time.Duration
	log         *slog.Logger
}

// NewRetrier returns a retrier tuned for short row-lock contention.
func NewRetrier() *Retrier {
	return &Retrier{
		maxAttempts: 3,
		minDelay:    50 * time.Millisecond,
		maxDelay:    time.Second,
		deadline:    10 * time.Second,
		log:         slog.Default(),
	}
}

// Retry runs op, re-running it while it fails with a transient
// contention error. Any other error stops the loop immediately.
func (r *Retrier) Retry(ctx context.Context, op func() error) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.minDelay
	policy.MaxInterval = r.maxDelay
	policy.MaxElapsedTime = r.deadline

	attempt := 0

	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}

		if !isContentionError(err) {
			return backoff.Permanent(err)
		}

		attempt++
		if attempt > r.maxAttempts {
			return backoff.Permanent(err)
		}

		r.log.Warn("transaction aborted by contention, retrying",
			"attempt", attempt,
			"error", err,
		)

		return err
	}, backoff.WithContext(policy, ctx))
}

func isContentionError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == codeDeadlockDetected || pgErr.Code == codeSerializationFailure
}
