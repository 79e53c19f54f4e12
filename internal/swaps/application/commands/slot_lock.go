package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"

	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
)

// lockedSlots are the slots an operation holds row locks on.
type lockedSlots map[uuid.UUID]*slotDomain.Slot

// lockSlots loads each slot with a row lock. Locks are always taken in ascending ID order
// so two operations over the same pair cannot deadlock.
func lockSlots(ctx context.Context, repo slotDomain.Repository, ids ...uuid.UUID) (lockedSlots, error) {
	ordered := slices.Clone(ids)
	slices.SortFunc(ordered, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	ordered = slices.Compact(ordered)

	locked := make(lockedSlots, len(ordered))
	for _, id := range ordered {
		slot, err := repo.GetForUpdate(ctx, id)
		if errors.Is(err, slotDomain.ErrSlotNotFound) {
			return nil, fmt.Errorf("slot %s: %w", id, domain.ErrNotFound)
		}
		if err != nil {
			return nil, err
		}
		locked[id] = slot
	}
	return locked, nil
}

// load lets the shared authorization check read from the locked set.
func (l lockedSlots) load(_ context.Context, id uuid.UUID) (*slotDomain.Slot, error) {
	slot, ok := l[id]
	if !ok {
		return nil, fmt.Errorf("slot %s: %w", id, domain.ErrNotFound)
	}
	return slot, nil
}
