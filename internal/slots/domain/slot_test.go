package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	nineAM = time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	tenAM  = nineAM.Add(time.Hour)
)

func ptr[T any](v T) *T { return &v }

func slotWithStatus(t *testing.T, status Status) *Slot {
	t.Helper()
	return RehydrateSlot(uuid.New(), uuid.New(), "Standup", nineAM, tenAM, status, nineAM, nineAM)
}

func TestNewSlot(t *testing.T) {
	owner := uuid.New()

	t.Run("starts busy with trimmed title", func(t *testing.T) {
		slot, err := NewSlot(owner, "  Team sync ", nineAM, tenAM)
		require.NoError(t, err)
		assert.Equal(t, owner, slot.OwnerID())
		assert.Equal(t, "Team sync", slot.Title())
		assert.Equal(t, StatusBusy, slot.Status())
		assert.False(t, slot.IsLocked())
	})

	t.Run("requires a title", func(t *testing.T) {
		_, err := NewSlot(owner, " ", nineAM, tenAM)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("requires start before end", func(t *testing.T) {
		_, err := NewSlot(owner, "Sync", tenAM, nineAM)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
		_, err = NewSlot(owner, "Sync", nineAM, nineAM)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("swappable")
	require.NoError(t, err)
	assert.Equal(t, StatusSwappable, s)

	_, err = ParseStatus("FREE")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestSlot_Apply(t *testing.T) {
	t.Run("nil fields are untouched", func(t *testing.T) {
		slot := slotWithStatus(t, StatusBusy)
		require.NoError(t, slot.Apply(Patch{Title: ptr("Retro")}))
		assert.Equal(t, "Retro", slot.Title())
		assert.Equal(t, nineAM, slot.Start())
		assert.Equal(t, StatusBusy, slot.Status())
	})

	t.Run("blank title is rejected rather than ignored", func(t *testing.T) {
		slot := slotWithStatus(t, StatusBusy)
		assert.ErrorIs(t, slot.Apply(Patch{Title: ptr("")}), ErrEmptyTitle)
		assert.Equal(t, "Standup", slot.Title())
	})

	t.Run("validates the merged time range", func(t *testing.T) {
		slot := slotWithStatus(t, StatusBusy)
		assert.ErrorIs(t, slot.Apply(Patch{Start: ptr(tenAM.Add(time.Minute))}), ErrInvalidTimeRange)

		require.NoError(t, slot.Apply(Patch{Start: ptr(tenAM.Add(time.Hour)), End: ptr(tenAM.Add(2 * time.Hour))}))
		assert.Equal(t, tenAM.Add(time.Hour), slot.Start())
	})

	t.Run("toggles busy and swappable", func(t *testing.T) {
		slot := slotWithStatus(t, StatusBusy)
		require.NoError(t, slot.Apply(Patch{Status: ptr(StatusSwappable)}))
		assert.Equal(t, StatusSwappable, slot.Status())
		require.NoError(t, slot.Apply(Patch{Status: ptr(StatusBusy)}))
		assert.Equal(t, StatusBusy, slot.Status())
	})

	t.Run("cannot set swap pending directly", func(t *testing.T) {
		slot := slotWithStatus(t, StatusSwappable)
		assert.ErrorIs(t, slot.Apply(Patch{Status: ptr(StatusSwapPending)}), ErrStatusNotAllowed)
		assert.ErrorIs(t, slot.Apply(Patch{Status: ptr(Status("LOST"))}), ErrInvalidStatus)
	})

	t.Run("locked slots reject every edit", func(t *testing.T) {
		slot := slotWithStatus(t, StatusSwapPending)
		assert.ErrorIs(t, slot.Apply(Patch{Title: ptr("Mine now")}), ErrSlotLocked)
		assert.ErrorIs(t, slot.Apply(Patch{Status: ptr(StatusBusy)}), ErrSlotLocked)
		assert.Equal(t, StatusSwapPending, slot.Status())
	})
}

func TestSlot_NegotiationTransitions(t *testing.T) {
	t.Run("hold requires swappable", func(t *testing.T) {
		slot := slotWithStatus(t, StatusSwappable)
		require.NoError(t, slot.Hold())
		assert.True(t, slot.IsLocked())
		assert.ErrorIs(t, slot.Hold(), ErrTransition)
		assert.ErrorIs(t, slotWithStatus(t, StatusBusy).Hold(), ErrTransition)
	})

	t.Run("release keeps the owner", func(t *testing.T) {
		slot := slotWithStatus(t, StatusSwapPending)
		owner := slot.OwnerID()
		require.NoError(t, slot.Release())
		assert.Equal(t, StatusSwappable, slot.Status())
		assert.Equal(t, owner, slot.OwnerID())
		assert.ErrorIs(t, slot.Release(), ErrTransition)
	})

	t.Run("hand over changes owner and ends busy", func(t *testing.T) {
		slot := slotWithStatus(t, StatusSwapPending)
		newOwner := uuid.New()
		require.NoError(t, slot.HandOver(newOwner))
		assert.Equal(t, newOwner, slot.OwnerID())
		assert.Equal(t, StatusBusy, slot.Status())
		assert.ErrorIs(t, slot.HandOver(uuid.New()), ErrTransition)
	})
}
