package commands

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	sharedApplication "github.com/felixgeelhaar/slotswap/internal/shared/application"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
)

// RespondToSwapCommand is the responder's answer to a pending request.
type RespondToSwapCommand struct {
	CallerID  uuid.UUID
	RequestID uuid.UUID
	Decision  domain.Decision
}

// RespondToSwapResult is the committed state of the request and both slots.
type RespondToSwapResult struct {
	Request       *domain.SwapRequest
	RequesterSlot *slotDomain.Slot
	ResponderSlot *slotDomain.Slot
	// Cascaded counts other pending requests that acceptance forced to REJECTED.
	Cascaded int64
	// Released lists slots of those requests that went back from SWAP_PENDING to SWAPPABLE.
	Released []uuid.UUID
}

// RespondToSwapHandler handles RespondToSwapCommand for both accept and reject.
type RespondToSwapHandler struct {
	requests domain.Repository
	slots    slotDomain.Repository
	uow      sharedApplication.UnitOfWork
	logger   *slog.Logger
}

// NewRespondToSwapHandler creates a RespondToSwapHandler.
func NewRespondToSwapHandler(
	requests domain.Repository,
	slots slotDomain.Repository,
	uow sharedApplication.UnitOfWork,
	logger *slog.Logger,
) *RespondToSwapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RespondToSwapHandler{requests: requests, slots: slots, uow: uow, logger: logger}
}

// Handle resolves the request. Accepting exchanges owners and leaves both slots BUSY;
// rejecting returns both slots to SWAPPABLE. A caller who is not the responder, or a request
// that is no longer pending, yields domain.ErrNotAuthorizedOrStale.
func (h *RespondToSwapHandler) Handle(ctx context.Context, cmd RespondToSwapCommand) (*RespondToSwapResult, error) {
	if cmd.Decision.Outcome() == "" {
		return nil, domain.ErrInvalidDecision
	}

	result, err := sharedApplication.InUnitOfWork(ctx, h.uow, func(txCtx context.Context) (*RespondToSwapResult, error) {
		return h.respond(txCtx, cmd)
	})
	if err != nil {
		err = classify(err, domain.ErrNotAuthorizedOrStale)
		h.logger.Debug("swap response failed",
			"request_id", cmd.RequestID,
			"caller_id", cmd.CallerID,
			"decision", cmd.Decision.String(),
			"kind", kind(err),
			"error", err,
		)
		return nil, err
	}

	msg := "swap rejected"
	if cmd.Decision == domain.DecisionAccept {
		msg = "swap accepted"
	}
	h.logger.Info(msg,
		"request_id", result.Request.ID(),
		"caller_id", cmd.CallerID,
		"requester_id", result.Request.RequesterID(),
		"requester_slot_id", result.RequesterSlot.ID(),
		"responder_slot_id", result.ResponderSlot.ID(),
	)
	if result.Cascaded > 0 {
		h.logger.Warn("stale pending requests rejected",
			"request_id", result.Request.ID(),
			"count", result.Cascaded,
			"released_slots", len(result.Released),
		)
	}
	return result, nil
}

func (h *RespondToSwapHandler) respond(ctx context.Context, cmd RespondToSwapCommand) (*RespondToSwapResult, error) {
	request, err := sharedApplication.Authorize(ctx, h.requests.GetForUpdate, cmd.RequestID,
		(*domain.SwapRequest).ResponderID, cmd.CallerID, domain.ErrNotAuthorizedOrStale)
	if err != nil {
		return nil, err
	}
	if err := request.Resolve(cmd.Decision); err != nil {
		return nil, domain.ErrNotAuthorizedOrStale
	}
	if err := h.requests.SetStatus(ctx, request.ID(), request.Status()); err != nil {
		if errors.Is(err, domain.ErrRequestNotPending) {
			return nil, domain.ErrNotAuthorizedOrStale
		}
		return nil, err
	}

	locked, err := lockSlots(ctx, h.slots, request.SlotIDs()...)
	if err != nil {
		return nil, err
	}
	result := &RespondToSwapResult{
		Request:       request,
		RequesterSlot: locked[request.RequesterSlotID()],
		ResponderSlot: locked[request.ResponderSlotID()],
	}

	switch cmd.Decision {
	case domain.DecisionAccept:
		err = h.accept(ctx, result)
	case domain.DecisionReject:
		err = h.reject(ctx, result)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

// accept hands each slot to the other party and rejects anything else still pending on them.
func (h *RespondToSwapHandler) accept(ctx context.Context, result *RespondToSwapResult) error {
	request := result.Request
	if result.RequesterSlot.OwnerID() != request.RequesterID() ||
		result.ResponderSlot.OwnerID() != request.ResponderID() {
		return domain.ErrNotAuthorizedOrStale
	}

	handovers := []struct {
		slot     *slotDomain.Slot
		newOwner uuid.UUID
	}{
		{result.RequesterSlot, request.ResponderID()},
		{result.ResponderSlot, request.RequesterID()},
	}
	for _, handover := range handovers {
		if err := handover.slot.HandOver(handover.newOwner); err != nil {
			return domain.ErrNotAuthorizedOrStale
		}
		if err := h.slots.SetOwnerAndStatus(ctx, handover.slot.ID(), handover.newOwner, slotDomain.StatusBusy); err != nil {
			return err
		}
	}

	stale, err := h.requests.RejectAllPendingReferencing(ctx, request.SlotIDs())
	if err != nil {
		return err
	}
	result.Cascaded = int64(len(stale))

	// A stale request also held a slot outside this pair. With its request gone that
	// slot goes back on the market.
	for _, rejected := range stale {
		for _, id := range rejected.SlotIDs() {
			if slices.Contains(request.SlotIDs(), id) {
				continue
			}
			released, err := h.slots.CompareAndSetStatus(ctx, id, slotDomain.StatusSwapPending, slotDomain.StatusSwappable)
			if err != nil {
				return err
			}
			if released {
				result.Released = append(result.Released, id)
			}
		}
	}
	return nil
}

// reject puts both slots back on the market with their owners unchanged.
func (h *RespondToSwapHandler) reject(ctx context.Context, result *RespondToSwapResult) error {
	for _, slot := range []*slotDomain.Slot{result.RequesterSlot, result.ResponderSlot} {
		if err := slot.Release(); err != nil {
			return domain.ErrNotAuthorizedOrStale
		}
		if err := h.slots.SetStatus(ctx, slot.ID(), slotDomain.StatusSwappable); err != nil {
			return err
		}
	}
	return nil
}
