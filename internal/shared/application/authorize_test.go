package application

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ownedThing struct {
	id    uuid.UUID
	owner uuid.UUID
}

func (o *ownedThing) Owner() uuid.UUID { return o.owner }

func TestAuthorize(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	thing := &ownedThing{id: uuid.New(), owner: owner}
	errMissing := errors.New("missing")
	errDenied := errors.New("denied")

	load := func(ctx context.Context, id uuid.UUID) (*ownedThing, error) {
		if id != thing.id {
			return nil, errMissing
		}
		return thing, nil
	}

	t.Run("returns entity for its party", func(t *testing.T) {
		got, err := Authorize(ctx, load, thing.id, (*ownedThing).Owner, owner, errDenied)
		require.NoError(t, err)
		assert.Same(t, thing, got)
	})

	t.Run("returns denied for another caller", func(t *testing.T) {
		got, err := Authorize(ctx, load, thing.id, (*ownedThing).Owner, uuid.New(), errDenied)
		assert.ErrorIs(t, err, errDenied)
		assert.Nil(t, got)
	})

	t.Run("passes load errors through", func(t *testing.T) {
		_, err := Authorize(ctx, load, uuid.New(), (*ownedThing).Owner, owner, errDenied)
		assert.ErrorIs(t, err, errMissing)
	})
}
