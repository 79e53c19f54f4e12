package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
)

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if ctx := args.Get(0); ctx != nil {
		return ctx.(context.Context), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "test",
		FailureThreshold: 2,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Hour,
	}
}

func TestBreakerUnitOfWork_Begin(t *testing.T) {
	t.Run("passes through a healthy store", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		txCtx := context.WithValue(ctx, "tx", "transaction")
		inner.On("Begin", ctx).Return(txCtx, nil)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		got, err := uow.Begin(ctx)

		require.NoError(t, err)
		assert.Equal(t, txCtx, got)
		assert.Equal(t, gobreaker.StateClosed.String(), uow.State())
	})

	t.Run("wraps failures as unavailable and opens", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		inner.On("Begin", ctx).Return(nil, errors.New("dial tcp: connection refused")).Times(2)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		for i := 0; i < 2; i++ {
			_, err := uow.Begin(ctx)
			assert.ErrorIs(t, err, sharedDomain.ErrUnavailable)
		}

		_, err := uow.Begin(ctx)
		assert.ErrorIs(t, err, sharedDomain.ErrUnavailable)
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, gobreaker.StateOpen.String(), uow.State())
		inner.AssertNumberOfCalls(t, "Begin", 2)
	})

	t.Run("caller timeouts do not trip", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		inner.On("Begin", ctx).Return(nil, context.DeadlineExceeded)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		for i := 0; i < 5; i++ {
			_, err := uow.Begin(ctx)
			assert.ErrorIs(t, err, context.DeadlineExceeded)
			assert.NotErrorIs(t, err, gobreaker.ErrOpenState)
		}
		assert.Equal(t, gobreaker.StateClosed.String(), uow.State())
		inner.AssertNumberOfCalls(t, "Begin", 5)
	})
}

func TestBreakerUnitOfWork_Commit(t *testing.T) {
	t.Run("conflicts pass through without tripping", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		conflict := &pgconn.PgError{Code: "40001"}
		inner.On("Commit", ctx).Return(conflict)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		for i := 0; i < 3; i++ {
			err := uow.Commit(ctx)
			assert.ErrorIs(t, err, conflict)
			assert.NotErrorIs(t, err, sharedDomain.ErrUnavailable)
		}
		assert.Equal(t, gobreaker.StateClosed.String(), uow.State())
	})

	t.Run("other failures are unavailable", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		inner.On("Commit", ctx).Return(errors.New("broken pipe"))

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		assert.ErrorIs(t, uow.Commit(ctx), sharedDomain.ErrUnavailable)
	})

	t.Run("an open breaker still ends the transaction", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		inner.On("Begin", ctx).Return(nil, errors.New("dial tcp: connection refused")).Times(2)
		inner.On("Rollback", ctx).Return(nil)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		for i := 0; i < 2; i++ {
			_, _ = uow.Begin(ctx)
		}
		require.Equal(t, gobreaker.StateOpen.String(), uow.State())

		err := uow.Commit(ctx)
		assert.ErrorIs(t, err, sharedDomain.ErrUnavailable)
		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		inner.AssertNotCalled(t, "Commit", mock.Anything)
		inner.AssertCalled(t, "Rollback", ctx)
	})

	t.Run("rollback bypasses the breaker", func(t *testing.T) {
		inner := new(mockUnitOfWork)
		ctx := context.Background()
		inner.On("Rollback", ctx).Return(nil)

		uow := NewBreakerUnitOfWork(inner, testBreakerConfig(), nil)
		assert.NoError(t, uow.Rollback(ctx))
		inner.AssertExpectations(t)
	})
}
