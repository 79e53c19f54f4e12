package commands

import (
	"context"
	"log/slog"

	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
)

// ProposeSwapCommand offers the caller's slot in exchange for someone else's.
type ProposeSwapCommand struct {
	CallerID    uuid.UUID
	MySlotID    uuid.UUID
	TheirSlotID uuid.UUID
}

// ProposeSwapHandler handles ProposeSwapCommand.
type ProposeSwapHandler struct {
	requests domain.Repository
	slots    slotDomain.Repository
	uow      sharedApplication.UnitOfWork
	logger   *slog.Logger
}

// NewProposeSwapHandler creates a ProposeSwapHandler.
func NewProposeSwapHandler(
	requests domain.Repository,
	slots slotDomain.Repository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *ProposeSwapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProposeSwapHandler{requests: requests, slots: slots, uow: uow, logger: logger}
}

// Handle creates a PENDING request and puts both slots into SWAP_PENDING, all in one
// transaction. Of two proposals racing for the same slot at most one commits; the other
// returns domain.ErrInvalidSlotState.
func (h *ProposeSwapHandler) Handle(ctx context.Context, cmd ProposeSwapCommand) (*domain.SwapRequest, error) {
	request, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*domain.SwapRequest, error) {
		return h.propose(txCtx, cmd)
	})
	if err != nil {
		err = classify(err, domain.ErrInvalidSlotState)
		h.logger.Debug("swap proposal failed",
			"caller_id", cmd.CallerID,
			"my_slot_id", cmd.MySlotID,
			"their_slot_id", cmd.TheirSlotID,
			"kind", kind(err),
			"error", err,
		)
		return nil, err
	}

	h.logger.Info("swap proposed",
		"request_id", request.ID(),
		"caller_id", cmd.CallerID,
		"responder_id", request.ResponderID(),
		"my_slot_id", cmd.MySlotID,
		"their_slot_id", cmd.TheirSlotID,
	)
	return request, nil
}

func (h *ProposeSwapHandler) propose(ctx context.Context, cmd ProposeSwapCommand) (*domain.SwapRequest, error) {
	locked, err := lockSlots(ctx, h.slots, cmd.MySlotID, cmd.TheirSlotID)
	if err != nil {
		return nil, err
	}

	mine, err := sharedApplication.Authorize(ctx, locked.load, cmd.MySlotID,
		(*slotDomain.Slot).OwnerID, cmd.CallerID, domain.ErrInvalidSlotState)
	if err != nil {
		return nil, err
	}
	if mine.Status() != slotDomain.StatusSwappable {
		return nil, domain.ErrInvalidSlotState
	}

	theirs := locked[cmd.TheirSlotID]
	if theirs.Status() != slotDomain.StatusSwappable {
		return nil, domain.ErrInvalidSlotState
	}
	if theirs.OwnerID() == cmd.CallerID {
		return nil, domain.ErrSelfSwap
	}

	request, err := domain.NewSwapRequest(cmd.CallerID, theirs.OwnerID(), mine.ID(), theirs.ID())
	if err != nil {
		return nil, err
	}
	if err := h.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	for _, slot := range []*slotDomain.Slot{mine, theirs} {
		if err := slot.Hold(); err != nil {
			return nil, domain.ErrInvalidSlotState
		}
		held, err := h.slots.CompareAndSetStatus(ctx, slot.ID(), slotDomain.StatusSwappable, slotDomain.StatusSwapPending)
		if err != nil {
			return nil, err
		}
		if !held {
			return nil, domain.ErrInvalidSlotState
		}
	}
	return request, nil
}
