package queries

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockSlotRepo implements only what the queries read.
type mockSlotRepo struct {
	mock.Mock
	domain.Repository
}

func (m *mockSlotRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Slot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Slot), args.Error(1)
}

type recordingEncoder struct {
	got []*domain.Slot
}

func (e *recordingEncoder) Encode(w io.Writer, slots []*domain.Slot) error {
	e.got = slots
	_, err := io.WriteString(w, "BEGIN:VCALENDAR")
	return err
}

func ownerSlots(owner uuid.UUID) []*domain.Slot {
	start := time.Date(2026, 11, 2, 9, 0, 0, 0, time.UTC)
	return []*domain.Slot{
		domain.RehydrateSlot(uuid.New(), owner, "Standup", start, start.Add(time.Hour), domain.StatusBusy, start, start),
		domain.RehydrateSlot(uuid.New(), owner, "Review", start.Add(2*time.Hour), start.Add(3*time.Hour), domain.StatusSwappable, start, start),
	}
}

func TestListMySlotsHandler_Handle(t *testing.T) {
	owner := uuid.New()

	t.Run("all slots", func(t *testing.T) {
		repo := new(mockSlotRepo)
		repo.On("FindByOwner", mock.Anything, owner).Return(ownerSlots(owner), nil)

		dtos, err := NewListMySlotsHandler(repo).Handle(context.Background(), ListMySlotsQuery{OwnerID: owner})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "Standup", dtos[0].Title)
		assert.Equal(t, "BUSY", dtos[0].Status)
		assert.Equal(t, owner, dtos[1].OwnerID)
	})

	t.Run("status filter", func(t *testing.T) {
		repo := new(mockSlotRepo)
		repo.On("FindByOwner", mock.Anything, owner).Return(ownerSlots(owner), nil)
		swappable := domain.StatusSwappable

		dtos, err := NewListMySlotsHandler(repo).Handle(context.Background(),
			ListMySlotsQuery{OwnerID: owner, Status: &swappable})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Review", dtos[0].Title)
	})

	t.Run("no slots is an empty list", func(t *testing.T) {
		repo := new(mockSlotRepo)
		repo.On("FindByOwner", mock.Anything, owner).Return([]*domain.Slot{}, nil)

		dtos, err := NewListMySlotsHandler(repo).Handle(context.Background(), ListMySlotsQuery{OwnerID: owner})

		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})
}

func TestExportCalendarHandler_Handle(t *testing.T) {
	owner := uuid.New()

	t.Run("encodes owner slots", func(t *testing.T) {
		repo := new(mockSlotRepo)
		slots := ownerSlots(owner)
		repo.On("FindByOwner", mock.Anything, owner).Return(slots, nil)
		encoder := &recordingEncoder{}

		var buf bytes.Buffer
		err := NewExportCalendarHandler(repo, encoder).Handle(context.Background(), ExportCalendarQuery{OwnerID: owner}, &buf)

		require.NoError(t, err)
		assert.Equal(t, slots, encoder.got)
		assert.Equal(t, "BEGIN:VCALENDAR", buf.String())
	})

	t.Run("store error skips encoding", func(t *testing.T) {
		repo := new(mockSlotRepo)
		repo.On("FindByOwner", mock.Anything, owner).Return(nil, errors.New("down"))
		encoder := &recordingEncoder{}

		var buf bytes.Buffer
		err := NewExportCalendarHandler(repo, encoder).Handle(context.Background(), ExportCalendarQuery{OwnerID: owner}, &buf)

		assert.Error(t, err)
		assert.Nil(t, encoder.got)
		assert.Zero(t, buf.Len())
	})
}
