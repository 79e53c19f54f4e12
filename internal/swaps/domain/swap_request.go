// Package domain holds swap requests and the failure kinds of the negotiation.
package domain

import (
	"fmt"
	"time"

	sharedDomain "github.com/felixgeelhaar/slotswap/internal/shared/domain"
	"github.com/google/uuid"
)

// RequestStatus is the lifecycle of a swap request. It only ever moves out of PENDING.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusAccepted RequestStatus = "ACCEPTED"
	StatusRejected RequestStatus = "REJECTED"
)

// ParseRequestStatus validates a stored or user supplied status.
func ParseRequestStatus(value string) (RequestStatus, error) {
	status := RequestStatus(value)
	switch status {
	case StatusPending, StatusAccepted, StatusRejected:
		return status, nil
	}
	return "", fmt.Errorf("invalid swap request status %q", value)
}

func (s RequestStatus) String() string { return string(s) }

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool { return s == StatusAccepted || s == StatusRejected }

// Decision is the responder's answer.
type Decision int

const (
	DecisionAccept Decision = iota + 1
	DecisionReject
)

// DecisionFrom maps a yes/no answer.
func DecisionFrom(accept bool) Decision {
	if accept {
		return DecisionAccept
	}
	return DecisionReject
}

// Outcome is the request status the decision leads to.
func (d Decision) Outcome() RequestStatus {
	switch d {
	case DecisionAccept:
		return StatusAccepted
	case DecisionReject:
		return StatusRejected
	}
	return ""
}

func (d Decision) String() string {
	switch d {
	case DecisionAccept:
		return "accept"
	case DecisionReject:
		return "reject"
	}
	return "unknown"
}

// SwapRequest is a proposed exchange of two slots between two owners.
// Parties and slots are fixed at creation; only the status changes.
type SwapRequest struct {
	sharedDomain.BaseEntity
	requesterID     uuid.UUID
	responderID     uuid.UUID
	requesterSlotID uuid.UUID
	responderSlotID uuid.UUID
	status          RequestStatus
}

// NewSwapRequest creates a PENDING request.
func NewSwapRequest(requesterID, responderID, requesterSlotID, responderSlotID uuid.UUID) (*SwapRequest, error) {
	if requesterID == responderID {
		return nil, ErrSelfSwap
	}
	if requesterSlotID == responderSlotID {
		return nil, ErrInvalidSlotState
	}

	return &SwapRequest{
		BaseEntity:      sharedDomain.NewBaseEntity(),
		requesterID:     requesterID,
		responderID:     responderID,
		requesterSlotID: requesterSlotID,
		responderSlotID: responderSlotID,
		status:          StatusPending,
	}, nil
}

// RehydrateSwapRequest rebuilds a request from storage.
func RehydrateSwapRequest(
	id, requesterID, responderID, requesterSlotID, responderSlotID uuid.UUID,
	status RequestStatus,
	createdAt, updatedAt time.Time,
) *SwapRequest {
	return &SwapRequest{
		BaseEntity:      sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		requesterID:     requesterID,
		responderID:     responderID,
		requesterSlotID: requesterSlotID,
		responderSlotID: responderSlotID,
		status:          status,
	}
}

func (r *SwapRequest) RequesterID() uuid.UUID     { return r.requesterID }
func (r *SwapRequest) ResponderID() uuid.UUID     { return r.responderID }
func (r *SwapRequest) RequesterSlotID() uuid.UUID { return r.requesterSlotID }
func (r *SwapRequest) ResponderSlotID() uuid.UUID { return r.responderSlotID }
func (r *SwapRequest) Status() RequestStatus      { return r.status }
func (r *SwapRequest) IsPending() bool            { return r.status == StatusPending }

// SlotIDs returns the requester's slot followed by the responder's.
func (r *SwapRequest) SlotIDs() []uuid.UUID {
	return []uuid.UUID{r.requesterSlotID, r.responderSlotID}
}

// Resolve moves a pending request to the decision's outcome.
func (r *SwapRequest) Resolve(d Decision) error {
	outcome := d.Outcome()
	if outcome == "" {
		return ErrInvalidDecision
	}
	if !r.IsPending() {
		return ErrRequestNotPending
	}
	r.status = outcome
	r.Touch()
	return nil
}
