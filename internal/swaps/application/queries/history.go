package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
)

// Direction selects which side of a request the caller is on.
type Direction string

const (
	DirectionIncoming Direction = "incoming"
	DirectionOutgoing Direction = "outgoing"
)

// SwapRequestDTO is a bare request record.
type SwapRequestDTO struct {
	ID              uuid.UUID `json:"id"`
	RequesterID     uuid.UUID `json:"requesterId"`
	ResponderID     uuid.UUID `json:"responderId"`
	RequesterSlotID uuid.UUID `json:"requesterSlotId"`
	ResponderSlotID uuid.UUID `json:"responderSlotId"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ToSwapRequestDTO converts a request.
func ToSwapRequestDTO(r *domain.SwapRequest) SwapRequestDTO {
	return SwapRequestDTO{
		ID:              r.ID(),
		RequesterID:     r.RequesterID(),
		ResponderID:     r.ResponderID(),
		RequesterSlotID: r.RequesterSlotID(),
		ResponderSlotID: r.ResponderSlotID(),
		Status:          r.Status().String(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// RequestHistoryQuery selects the caller's requests on one side, in any status.
type RequestHistoryQuery struct {
	CallerID  uuid.UUID
	Direction Direction
	// Status filters incoming requests. Outgoing history is always complete.
	Status *domain.RequestStatus
}

// RequestHistoryHandler reads the audit trail of requests.
type RequestHistoryHandler struct {
	repo domain.Repository
}

// NewRequestHistoryHandler creates a RequestHistoryHandler.
func NewRequestHistoryHandler(repo domain.Repository) *RequestHistoryHandler {
	return &RequestHistoryHandler{repo: repo}
}

// Handle lists the requests.
func (h *RequestHistoryHandler) Handle(ctx context.Context, query RequestHistoryQuery) ([]SwapRequestDTO, error) {
	var (
		requests []*domain.SwapRequest
		err      error
	)
	switch query.Direction {
	case DirectionIncoming:
		requests, err = h.repo.ListIncoming(ctx, query.CallerID, query.Status)
	case DirectionOutgoing:
		requests, err = h.repo.ListOutgoing(ctx, query.CallerID)
	default:
		return nil, fmt.Errorf("unknown direction %q", query.Direction)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]SwapRequestDTO, 0, len(requests))
	for _, r := range requests {
		dtos = append(dtos, ToSwapRequestDTO(r))
	}
	return dtos, nil
}
