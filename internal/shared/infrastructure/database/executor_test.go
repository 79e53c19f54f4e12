package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubResult struct {
	n   int64
	err error
}

func (r stubResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestRequireAffected(t *testing.T) {
	missing := errors.New("missing")

	assert.NoError(t, RequireAffected(stubResult{n: 1}, missing))
	assert.ErrorIs(t, RequireAffected(stubResult{n: 0}, missing), missing)

	boom := errors.New("driver")
	assert.ErrorIs(t, RequireAffected(stubResult{err: boom}, missing), boom)
}
