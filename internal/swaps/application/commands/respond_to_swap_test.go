package commands

import (
	"context"
	"testing"

	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type respondFixture struct {
	requests *mockSwapRepo
	slots    *mockSlotRepo
	uow      *mockUnitOfWork
	handler  *RespondToSwapHandler

	requester, responder         uuid.UUID
	requesterSlot, responderSlot *slotDomain.Slot
	request                      *domain.SwapRequest
}

func newRespondFixture(t *testing.T) *respondFixture {
	t.Helper()
	f := &respondFixture{
		requests:  new(mockSwapRepo),
		slots:     new(mockSlotRepo),
		uow:       new(mockUnitOfWork),
		requester: uuid.New(),
		responder: uuid.New(),
	}
	f.handler = NewRespondToSwapHandler(f.requests, f.slots, f.uow, nil)
	f.requesterSlot = slotOf(f.requester, slotDomain.StatusSwapPending)
	f.responderSlot = slotOf(f.responder, slotDomain.StatusSwapPending)

	request, err := domain.NewSwapRequest(f.requester, f.responder, f.requesterSlot.ID(), f.responderSlot.ID())
	require.NoError(t, err)
	f.request = request
	return f
}

func (f *respondFixture) expectLoaded() {
	f.uow.On("Begin", mock.Anything).Return(nil)
	f.requests.On("GetForUpdate", mock.Anything, f.request.ID()).Return(f.request, nil)
}

func (f *respondFixture) expectSlotsLocked() {
	f.slots.On("GetForUpdate", mock.Anything, f.requesterSlot.ID()).Return(f.requesterSlot, nil)
	f.slots.On("GetForUpdate", mock.Anything, f.responderSlot.ID()).Return(f.responderSlot, nil)
}

func TestRespondToSwapHandler_Accept(t *testing.T) {
	f := newRespondFixture(t)
	f.expectLoaded()
	f.requests.On("SetStatus", mock.Anything, f.request.ID(), domain.StatusAccepted).Return(nil)
	f.expectSlotsLocked()
	f.slots.On("SetOwnerAndStatus", mock.Anything, f.requesterSlot.ID(), f.responder, slotDomain.StatusBusy).Return(nil)
	f.slots.On("SetOwnerAndStatus", mock.Anything, f.responderSlot.ID(), f.requester, slotDomain.StatusBusy).Return(nil)
	f.requests.On("RejectAllPendingReferencing", mock.Anything,
		[]uuid.UUID{f.requesterSlot.ID(), f.responderSlot.ID()}).Return(nil, nil)
	f.uow.On("Commit", mock.Anything).Return(nil)

	result, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
		CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionAccept,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepted, result.Request.Status())
	assert.Equal(t, f.responder, result.RequesterSlot.OwnerID())
	assert.Equal(t, f.requester, result.ResponderSlot.OwnerID())
	assert.Equal(t, slotDomain.StatusBusy, result.RequesterSlot.Status())
	assert.Equal(t, slotDomain.StatusBusy, result.ResponderSlot.Status())
	assert.Zero(t, result.Cascaded)
	assert.Empty(t, result.Released)
	f.requests.AssertExpectations(t)
	f.slots.AssertExpectations(t)
	f.slots.AssertNotCalled(t, "CompareAndSetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.uow.AssertExpectations(t)
}

func TestRespondToSwapHandler_AcceptReleasesStaleSlots(t *testing.T) {
	f := newRespondFixture(t)
	f.expectLoaded()
	f.requests.On("SetStatus", mock.Anything, f.request.ID(), domain.StatusAccepted).Return(nil)
	f.expectSlotsLocked()
	f.slots.On("SetOwnerAndStatus", mock.Anything, f.requesterSlot.ID(), f.responder, slotDomain.StatusBusy).Return(nil)
	f.slots.On("SetOwnerAndStatus", mock.Anything, f.responderSlot.ID(), f.requester, slotDomain.StatusBusy).Return(nil)

	outsider, outsiderSlot := uuid.New(), uuid.New()
	stale, err := domain.NewSwapRequest(outsider, f.requester, outsiderSlot, f.requesterSlot.ID())
	require.NoError(t, err)
	f.requests.On("RejectAllPendingReferencing", mock.Anything,
		[]uuid.UUID{f.requesterSlot.ID(), f.responderSlot.ID()}).Return([]*domain.SwapRequest{stale}, nil)
	f.slots.On("CompareAndSetStatus", mock.Anything, outsiderSlot,
		slotDomain.StatusSwapPending, slotDomain.StatusSwappable).Return(true, nil)
	f.uow.On("Commit", mock.Anything).Return(nil)

	result, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
		CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionAccept,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Cascaded)
	assert.Equal(t, []uuid.UUID{outsiderSlot}, result.Released)
	f.slots.AssertExpectations(t)
	f.slots.AssertNumberOfCalls(t, "CompareAndSetStatus", 1)
}

func TestRespondToSwapHandler_Reject(t *testing.T) {
	f := newRespondFixture(t)
	f.expectLoaded()
	f.requests.On("SetStatus", mock.Anything, f.request.ID(), domain.StatusRejected).Return(nil)
	f.expectSlotsLocked()
	f.slots.On("SetStatus", mock.Anything, f.requesterSlot.ID(), slotDomain.StatusSwappable).Return(nil)
	f.slots.On("SetStatus", mock.Anything, f.responderSlot.ID(), slotDomain.StatusSwappable).Return(nil)
	f.uow.On("Commit", mock.Anything).Return(nil)

	result, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
		CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionReject,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusRejected, result.Request.Status())
	assert.Equal(t, f.requester, result.RequesterSlot.OwnerID())
	assert.Equal(t, f.responder, result.ResponderSlot.OwnerID())
	assert.Equal(t, slotDomain.StatusSwappable, result.RequesterSlot.Status())
	f.requests.AssertNotCalled(t, "RejectAllPendingReferencing", mock.Anything, mock.Anything)
	f.slots.AssertExpectations(t)
}

func TestRespondToSwapHandler_Refusals(t *testing.T) {
	t.Run("requester cannot answer own request", func(t *testing.T) {
		f := newRespondFixture(t)
		f.expectLoaded()
		f.uow.On("Rollback", mock.Anything).Return(nil)

		_, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.requester, RequestID: f.request.ID(), Decision: domain.DecisionAccept,
		})

		assert.ErrorIs(t, err, domain.ErrNotAuthorizedOrStale)
		f.requests.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("already resolved request is stale", func(t *testing.T) {
		f := newRespondFixture(t)
		require.NoError(t, f.request.Resolve(domain.DecisionReject))
		f.expectLoaded()
		f.uow.On("Rollback", mock.Anything).Return(nil)

		_, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionAccept,
		})

		assert.ErrorIs(t, err, domain.ErrNotAuthorizedOrStale)
	})

	t.Run("store says no longer pending", func(t *testing.T) {
		f := newRespondFixture(t)
		f.expectLoaded()
		f.requests.On("SetStatus", mock.Anything, f.request.ID(), domain.StatusRejected).Return(domain.ErrRequestNotPending)
		f.uow.On("Rollback", mock.Anything).Return(nil)

		_, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionReject,
		})

		assert.ErrorIs(t, err, domain.ErrNotAuthorizedOrStale)
	})

	t.Run("slot owner drifted", func(t *testing.T) {
		f := newRespondFixture(t)
		f.requesterSlot = slotOf(uuid.New(), slotDomain.StatusSwapPending)
		request, err := domain.NewSwapRequest(f.requester, f.responder, f.requesterSlot.ID(), f.responderSlot.ID())
		require.NoError(t, err)
		f.request = request

		f.expectLoaded()
		f.requests.On("SetStatus", mock.Anything, f.request.ID(), domain.StatusAccepted).Return(nil)
		f.expectSlotsLocked()
		f.uow.On("Rollback", mock.Anything).Return(nil)

		_, err = f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.responder, RequestID: f.request.ID(), Decision: domain.DecisionAccept,
		})

		assert.ErrorIs(t, err, domain.ErrNotAuthorizedOrStale)
		f.slots.AssertNotCalled(t, "SetOwnerAndStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing request is not found", func(t *testing.T) {
		f := newRespondFixture(t)
		f.uow.On("Begin", mock.Anything).Return(nil)
		f.requests.On("GetForUpdate", mock.Anything, mock.Anything).Return(nil, domain.ErrRequestNotFound)
		f.uow.On("Rollback", mock.Anything).Return(nil)

		_, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.responder, RequestID: uuid.New(), Decision: domain.DecisionAccept,
		})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown decision never opens a transaction", func(t *testing.T) {
		f := newRespondFixture(t)

		_, err := f.handler.Handle(context.Background(), RespondToSwapCommand{
			CallerID: f.responder, RequestID: f.request.ID(),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidDecision)
		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}
