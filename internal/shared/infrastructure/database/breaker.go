package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/felixgeelhaar/slotswap/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
)

// BreakerConfig tunes the circuit breaker placed in front of the store.
type BreakerConfig struct {
	Name             string
	FailureThreshold uint32
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
}

// DefaultBreakerConfig trips after five consecutive store failures and probes again after 30s.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "database",
		FailureThreshold: 5,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
	}
}

// BreakerUnitOfWork fails fast with ErrUnavailable while the store keeps failing to begin
// or commit transactions. Lock conflicts count as healthy: the store answered.
type BreakerUnitOfWork struct {
	inner   application.UnitOfWork
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

var _ application.UnitOfWork = (*BreakerUnitOfWork)(nil)

// NewBreakerUnitOfWork wraps inner.
func NewBreakerUnitOfWork(inner application.UnitOfWork, cfg BreakerConfig, logger *slog.Logger) *BreakerUnitOfWork {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			// Callers giving up, including timeouts while queued for a connection, are not store failures.
			return err == nil || IsConflict(err) ||
				errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerUnitOfWork{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

// Begin starts a transaction through the breaker.
func (u *BreakerUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	result, err := u.breaker.Execute(func() (any, error) {
		return u.inner.Begin(ctx)
	})
	if err != nil {
		return nil, u.unavailable("begin", err)
	}
	return result.(context.Context), nil
}

// Commit commits through the breaker. Conflicts are returned as-is for the caller to classify.
// When the breaker refuses the commit the transaction is rolled back, so its locks and
// connection are released.
func (u *BreakerUnitOfWork) Commit(ctx context.Context) error {
	_, err := u.breaker.Execute(func() (any, error) {
		return nil, u.inner.Commit(ctx)
	})
	if err == nil || IsConflict(err) {
		return err
	}
	if rejected(err) {
		if rbErr := u.inner.Rollback(ctx); rbErr != nil {
			u.logger.Warn("rollback after refused commit failed", "error", rbErr)
		}
	}
	return u.unavailable("commit", err)
}

// Rollback bypasses the breaker; abandoning a transaction must always be attempted.
func (u *BreakerUnitOfWork) Rollback(ctx context.Context) error {
	return u.inner.Rollback(ctx)
}

// State exposes the breaker state for health reporting.
func (u *BreakerUnitOfWork) State() string {
	return u.breaker.State().String()
}

func (u *BreakerUnitOfWork) unavailable(op string, err error) error {
	if !rejected(err) {
		u.logger.Debug("store transaction failed", "op", op, "error", err)
	}
	return fmt.Errorf("%s transaction: %w: %w", op, sharedDomain.ErrUnavailable, err)
}

// rejected reports whether the breaker refused the call without running it.
func rejected(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
