package domain

import (
	"time"

	"github.com/google/uuid"
)

// MarketplaceEntry is a slot offered by someone else.
type MarketplaceEntry struct {
	SlotID    uuid.UUID
	OwnerID   uuid.UUID
	OwnerName string
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// SlotSummary is the part of a slot shown next to a request.
type SlotSummary struct {
	ID        uuid.UUID
	Title     string
	StartTime time.Time
	EndTime   time.Time
}

// RequestView is a request seen from one side. The counterparty is the requester for
// incoming requests and the responder for outgoing ones.
type RequestView struct {
	ID               uuid.UUID
	CounterpartyID   uuid.UUID
	CounterpartyName string
	Status           RequestStatus
	CreatedAt        time.Time
	RequesterSlot    SlotSummary
	ResponderSlot    SlotSummary
}
