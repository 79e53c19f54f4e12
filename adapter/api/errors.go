package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	identityDomain "github.com/felixgeelhaar/slotswap/internal/identity/domain"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
	swapDomain "github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// APIError represents an API error.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Common API errors
var (
	ErrBadRequest = &APIError{
		Status:  http.StatusBadRequest,
		Code:    "bad_request",
		Message: "Invalid request",
	}
	ErrUnauthorized = &APIError{
		Status:  http.StatusUnauthorized,
		Code:    "unauthorized",
		Message: "A valid bearer token is required",
	}
	ErrNotFound = &APIError{
		Status:  http.StatusNotFound,
		Code:    "not_found",
		Message: "Resource not found",
	}
	ErrInvalidSlotState = &APIError{
		Status:  http.StatusConflict,
		Code:    "invalid_slot_state",
		Message: "Slot is not in the required state",
	}
	ErrConflict = &APIError{
		Status:  http.StatusConflict,
		Code:    "conflict",
		Message: "Request conflicts with the current state",
	}
	ErrSelfSwap = &APIError{
		Status:  http.StatusUnprocessableEntity,
		Code:    "self_swap",
		Message: "Cannot swap slots with yourself",
	}
	ErrNotAuthorizedOrStale = &APIError{
		Status:  http.StatusForbidden,
		Code:    "not_authorized_or_stale",
		Message: "Swap request is not yours to answer or no longer pending",
	}
	ErrUnavailable = &APIError{
		Status:  http.StatusServiceUnavailable,
		Code:    "unavailable",
		Message: "Store unavailable, retry later",
	}
	ErrInternalServer = &APIError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "Internal server error",
	}
)

// toAPIError maps an application error onto its HTTP response.
func toAPIError(err error) *APIError {
	switch {
	case errors.Is(err, swapDomain.ErrNotAuthorizedOrStale):
		return ErrNotAuthorizedOrStale
	case errors.Is(err, swapDomain.ErrSelfSwap):
		return ErrSelfSwap
	case errors.Is(err, swapDomain.ErrInvalidSlotState):
		return ErrInvalidSlotState
	case errors.Is(err, swapDomain.ErrNotFound),
		errors.Is(err, slotDomain.ErrSlotNotFound),
		errors.Is(err, identityDomain.ErrUserNotFound):
		return ErrNotFound
	case errors.Is(err, swapDomain.ErrUnavailable):
		return ErrUnavailable
	case errors.Is(err, slotDomain.ErrSlotLocked),
		errors.Is(err, slotDomain.ErrSlotReferenced),
		errors.Is(err, identityDomain.ErrEmailTaken):
		return withMessage(ErrConflict, err)
	case errors.Is(err, slotDomain.ErrEmptyTitle),
		errors.Is(err, slotDomain.ErrInvalidTimeRange),
		errors.Is(err, slotDomain.ErrInvalidStatus),
		errors.Is(err, slotDomain.ErrStatusNotAllowed),
		errors.Is(err, slotDomain.ErrUnknownOwner),
		errors.Is(err, swapDomain.ErrInvalidDecision),
		errors.Is(err, identityDomain.ErrInvalidEmail),
		errors.Is(err, identityDomain.ErrEmptyName),
		errors.Is(err, identityDomain.ErrNameTooLong):
		return withMessage(ErrBadRequest, err)
	default:
		return ErrInternalServer
	}
}

func withMessage(base *APIError, err error) *APIError {
	return &APIError{Status: base.Status, Code: base.Code, Message: err.Error()}
}

// respondError writes the mapped error. Only server-side failures are logged.
func respondError(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	apiErr := toAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Error(msg, "error", err, "code", apiErr.Code)
	}
	writeError(w, apiErr)
}
