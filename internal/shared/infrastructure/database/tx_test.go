package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	committed  int
	rolledBack int
	commitErr  error
}

func (f *fakeTx) Exec(ctx context.Context, query string, args ...any) (Result, error) { return nil, nil }
func (f *fakeTx) QueryRow(ctx context.Context, query string, args ...any) Row          { return nil }
func (f *fakeTx) Query(ctx context.Context, query string, args ...any) (Rows, error)  { return nil, nil }

func (f *fakeTx) Commit(ctx context.Context) error {
	f.committed++
	return f.commitErr
}

func (f *fakeTx) Rollback(ctx context.Context) error {
	f.rolledBack++
	return nil
}

type fakeConn struct {
	fakeTx
	tx       *fakeTx
	begun    int
	beginErr error
}

func (c *fakeConn) BeginTx(ctx context.Context) (Transaction, error) {
	if c.beginErr != nil {
		return nil, c.beginErr
	}
	c.begun++
	return c.tx, nil
}

func (c *fakeConn) Ping(ctx context.Context) error { return nil }
func (c *fakeConn) Close() error                   { return nil }
func (c *fakeConn) Driver() Driver                 { return DriverSQLite }

func TestTxUnitOfWork(t *testing.T) {
	t.Run("owns and commits a fresh transaction", func(t *testing.T) {
		conn := &fakeConn{tx: &fakeTx{}}
		uow := NewUnitOfWork(conn)

		txCtx, err := uow.Begin(context.Background())
		require.NoError(t, err)
		assert.True(t, InTransaction(txCtx))
		assert.Same(t, conn.tx, ExecutorFromContext(txCtx, conn))

		require.NoError(t, uow.Commit(txCtx))
		assert.Equal(t, 1, conn.tx.committed)
	})

	t.Run("nested begin joins without owning", func(t *testing.T) {
		conn := &fakeConn{tx: &fakeTx{}}
		uow := NewUnitOfWork(conn)

		outer, err := uow.Begin(context.Background())
		require.NoError(t, err)
		inner, err := uow.Begin(outer)
		require.NoError(t, err)

		require.NoError(t, uow.Commit(inner))
		require.NoError(t, uow.Rollback(inner))
		assert.Equal(t, 0, conn.tx.committed)
		assert.Equal(t, 0, conn.tx.rolledBack)
		assert.Equal(t, 1, conn.begun)

		require.NoError(t, uow.Rollback(outer))
		assert.Equal(t, 1, conn.tx.rolledBack)
	})

	t.Run("begin error is returned", func(t *testing.T) {
		beginErr := errors.New("pool closed")
		uow := NewUnitOfWork(&fakeConn{beginErr: beginErr})

		_, err := uow.Begin(context.Background())
		assert.ErrorIs(t, err, beginErr)
	})

	t.Run("commit without transaction fails", func(t *testing.T) {
		uow := NewUnitOfWork(&fakeConn{tx: &fakeTx{}})
		assert.ErrorIs(t, uow.Commit(context.Background()), ErrNoTransaction)
		assert.ErrorIs(t, uow.Rollback(context.Background()), ErrNoTransaction)
	})

	t.Run("executor falls back to connection", func(t *testing.T) {
		conn := &fakeConn{tx: &fakeTx{}}
		assert.Same(t, conn, ExecutorFromContext(context.Background(), conn))
		assert.False(t, InTransaction(context.Background()))
	})
}
