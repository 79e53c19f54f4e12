package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/slotswap/internal/swaps/domain"
	"github.com/google/uuid"
)

// MarketplaceSlotDTO is a slot someone else offers for exchange.
type MarketplaceSlotDTO struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"ownerId"`
	OwnerName string    `json:"ownerName"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// SlotSummaryDTO is a slot shown next to a request.
type SlotSummaryDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// IncomingRequestDTO is a pending request waiting for the caller's answer.
type IncomingRequestDTO struct {
	ID            uuid.UUID      `json:"id"`
	RequesterID   uuid.UUID      `json:"requesterId"`
	RequesterName string         `json:"requesterName"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	TheirSlot     SlotSummaryDTO `json:"theirSlot"`
	MySlot        SlotSummaryDTO `json:"mySlot"`
}

// OutgoingRequestDTO is a request the caller made.
type OutgoingRequestDTO struct {
	ID            uuid.UUID      `json:"id"`
	ResponderID   uuid.UUID      `json:"responderId"`
	ResponderName string         `json:"responderName"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"createdAt"`
	MySlot        SlotSummaryDTO `json:"mySlot"`
	TheirSlot     SlotSummaryDTO `json:"theirSlot"`
}

func toSlotSummaryDTO(s domain.SlotSummary) SlotSummaryDTO {
	return SlotSummaryDTO{ID: s.ID, Title: s.Title, StartTime: s.StartTime, EndTime: s.EndTime}
}

// ListMarketplaceHandler lists slots open for exchange.
type ListMarketplaceHandler struct {
	views domain.ViewRepository
}

// NewListMarketplaceHandler creates a ListMarketplaceHandler.
func NewListMarketplaceHandler(views domain.ViewRepository) *ListMarketplaceHandler {
	return &ListMarketplaceHandler{views: views}
}

// Handle returns SWAPPABLE slots of other users, earliest first.
func (h *ListMarketplaceHandler) Handle(ctx context.Context, callerID uuid.UUID) ([]MarketplaceSlotDTO, error) {
	entries, err := h.views.Marketplace(ctx, callerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]MarketplaceSlotDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, MarketplaceSlotDTO{
			ID:        e.SlotID,
			OwnerID:   e.OwnerID,
			OwnerName: e.OwnerName,
			Title:     e.Title,
			StartTime: e.StartTime,
			EndTime:   e.EndTime,
		})
	}
	return dtos, nil
}

// ListIncomingHandler lists requests waiting for the caller.
type ListIncomingHandler struct {
	views domain.ViewRepository
}

// NewListIncomingHandler creates a ListIncomingHandler.
func NewListIncomingHandler(views domain.ViewRepository) *ListIncomingHandler {
	return &ListIncomingHandler{views: views}
}

// Handle returns the caller's pending incoming requests, oldest first.
func (h *ListIncomingHandler) Handle(ctx context.Context, callerID uuid.UUID) ([]IncomingRequestDTO, error) {
	views, err := h.views.Incoming(ctx, callerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]IncomingRequestDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, IncomingRequestDTO{
			ID:            v.ID,
			RequesterID:   v.CounterpartyID,
			RequesterName: v.CounterpartyName,
			Status:        v.Status.String(),
			CreatedAt:     v.CreatedAt,
			TheirSlot:     toSlotSummaryDTO(v.RequesterSlot),
			MySlot:        toSlotSummaryDTO(v.ResponderSlot),
		})
	}
	return dtos, nil
}

// ListOutgoingHandler lists requests the caller made.
type ListOutgoingHandler struct {
	views domain.ViewRepository
}

// NewListOutgoingHandler creates a ListOutgoingHandler.
func NewListOutgoingHandler(views domain.ViewRepository) *ListOutgoingHandler {
	return &ListOutgoingHandler{views: views}
}

// Handle returns every request the caller made, newest first.
func (h *ListOutgoingHandler) Handle(ctx context.Context, callerID uuid.UUID) ([]OutgoingRequestDTO, error) {
	views, err := h.views.Outgoing(ctx, callerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]OutgoingRequestDTO, 0, len(views))
	for _, v := range views {
		dtos = append(dtos, OutgoingRequestDTO{
			ID:            v.ID,
			ResponderID:   v.CounterpartyID,
			ResponderName: v.CounterpartyName,
			Status:        v.Status.String(),
			CreatedAt:     v.CreatedAt,
			MySlot:        toSlotSummaryDTO(v.RequesterSlot),
			TheirSlot:     toSlotSummaryDTO(v.ResponderSlot),
		})
	}
	return dtos, nil
}
