package commands

import (
	"context"

	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// mockSwapRepo is a mock implementation of domain.Repository.
type mockSwapRepo struct {
	mock.Mock
}

func (m *mockSwapRepo) Get(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *mockSwapRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.SwapRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SwapRequest), args.Error(1)
}

func (m *mockSwapRepo) ListIncoming(ctx context.Context, responderID uuid.UUID, status *domain.RequestStatus) ([]*domain.SwapRequest, error) {
	args := m.Called(ctx, responderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SwapRequest), args.Error(1)
}

func (m *mockSwapRepo) ListOutgoing(ctx context.Context, requesterID uuid.UUID) ([]*domain.SwapRequest, error) {
	args := m.Called(ctx, requesterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SwapRequest), args.Error(1)
}

func (m *mockSwapRepo) Create(ctx context.Context, request *domain.SwapRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *mockSwapRepo) SetStatus(ctx context.Context, id uuid.UUID, status domain.RequestStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockSwapRepo) RejectAllPendingReferencing(ctx context.Context, slotIDs []uuid.UUID) ([]*domain.SwapRequest, error) {
	args := m.Called(ctx, slotIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.SwapRequest), args.Error(1)
}

// mockSlotRepo is a mock implementation of the slot store.
type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Get(ctx context.Context, id uuid.UUID) (*slotDomain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slotDomain.Slot), args.Error(1)
}

func (m *mockSlotRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*slotDomain.Slot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*slotDomain.Slot), args.Error(1)
}

func (m *mockSlotRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*slotDomain.Slot, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*slotDomain.Slot), args.Error(1)
}

func (m *mockSlotRepo) Create(ctx context.Context, slot *slotDomain.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *mockSlotRepo) UpdateFields(ctx context.Context, id, ownerID uuid.UUID, patch slotDomain.Patch) error {
	return m.Called(ctx, id, ownerID, patch).Error(0)
}

func (m *mockSlotRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *mockSlotRepo) SetStatus(ctx context.Context, id uuid.UUID, status slotDomain.Status) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockSlotRepo) CompareAndSetStatus(ctx context.Context, id uuid.UUID, from, to slotDomain.Status) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockSlotRepo) SetOwnerAndStatus(ctx context.Context, id, ownerID uuid.UUID, status slotDomain.Status) error {
	return m.Called(ctx, id, ownerID, status).Error(0)
}

// mockUnitOfWork is a mock implementation of UnitOfWork.
type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return ctx, args.Error(0)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
