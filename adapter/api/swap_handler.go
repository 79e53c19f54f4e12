package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	slotQueries "github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	swapCommands "github.com/felixgeelhaar/slotswap/internal/swaps/application/commands"
	swapQueries "github.com/felixgeelhaar/slotswap/internal/swaps/application/queries"
	swapDomain "github.com/felixgeelhaar/slotswap/internal/swaps/domain"
)

// SwapHandler handles negotiation and the marketplace.
type SwapHandler struct {
	deps   Dependencies
	logger *slog.Logger
}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler(deps Dependencies, logger *slog.Logger) *SwapHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SwapHandler{deps: deps, logger: logger}
}

type proposeSwapRequest struct {
	MySlotID    uuid.UUID `json:"mySlotId"`
	TheirSlotID uuid.UUID `json:"theirSlotId"`
}

type respondToSwapRequest struct {
	Accept *bool `json:"accept"`
}

// RespondToSwapResponse is the committed outcome of an answer.
type RespondToSwapResponse struct {
	Request       swapQueries.SwapRequestDTO `json:"request"`
	RequesterSlot slotQueries.SlotDTO        `json:"requesterSlot"`
	ResponderSlot slotQueries.SlotDTO        `json:"responderSlot"`
}

// Marketplace handles GET /api/v1/swaps/marketplace
func (h *SwapHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	slots, err := h.deps.ListMarketplace.Handle(r.Context(), callerID)
	if err != nil {
		respondError(w, h.logger, "failed to list marketplace", err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// Propose handles POST /api/v1/swaps
func (h *SwapHandler) Propose(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	var req proposeSwapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}
	if req.MySlotID == uuid.Nil || req.TheirSlotID == uuid.Nil {
		writeError(w, &APIError{Status: http.StatusBadRequest, Code: ErrBadRequest.Code, Message: "mySlotId and theirSlotId are required"})
		return
	}

	request, err := h.deps.ProposeSwap.Handle(r.Context(), swapCommands.ProposeSwapCommand{
		CallerID:    callerID,
		MySlotID:    req.MySlotID,
		TheirSlotID: req.TheirSlotID,
	})
	if err != nil {
		respondError(w, h.logger, "failed to propose swap", err)
		return
	}
	writeJSON(w, http.StatusCreated, swapQueries.ToSwapRequestDTO(request))
}

// Respond handles POST /api/v1/swaps/{requestID}/response
func (h *SwapHandler) Respond(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())
	requestID, err := uuid.Parse(r.PathValue("requestID"))
	if err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}

	var req respondToSwapRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}
	if req.Accept == nil {
		writeError(w, withMessage(ErrBadRequest, swapDomain.ErrInvalidDecision))
		return
	}

	result, err := h.deps.RespondToSwap.Handle(r.Context(), swapCommands.RespondToSwapCommand{
		CallerID:  callerID,
		RequestID: requestID,
		Decision:  swapDomain.DecisionFrom(*req.Accept),
	})
	if err != nil {
		respondError(w, h.logger, "failed to answer swap", err)
		return
	}
	writeJSON(w, http.StatusOK, RespondToSwapResponse{
		Request:       swapQueries.ToSwapRequestDTO(result.Request),
		RequesterSlot: slotQueries.ToSlotDTO(result.RequesterSlot),
		ResponderSlot: slotQueries.ToSlotDTO(result.ResponderSlot),
	})
}

// Incoming handles GET /api/v1/swaps/incoming
func (h *SwapHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	requests, err := h.deps.ListIncoming.Handle(r.Context(), callerID)
	if err != nil {
		respondError(w, h.logger, "failed to list incoming requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// Outgoing handles GET /api/v1/swaps/outgoing
func (h *SwapHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	requests, err := h.deps.ListOutgoing.Handle(r.Context(), callerID)
	if err != nil {
		respondError(w, h.logger, "failed to list outgoing requests", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

// History handles GET /api/v1/swaps/history?direction=incoming|outgoing&status=
func (h *SwapHandler) History(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	query := swapQueries.RequestHistoryQuery{
		CallerID:  callerID,
		Direction: swapQueries.DirectionIncoming,
	}
	switch dir := r.URL.Query().Get("direction"); dir {
	case "", string(swapQueries.DirectionIncoming):
	case string(swapQueries.DirectionOutgoing):
		query.Direction = swapQueries.DirectionOutgoing
	default:
		writeError(w, &APIError{Status: http.StatusBadRequest, Code: ErrBadRequest.Code, Message: "direction must be incoming or outgoing"})
		return
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, err := swapDomain.ParseRequestStatus(statusParam)
		if err != nil {
			writeError(w, withMessage(ErrBadRequest, err))
			return
		}
		query.Status = &status
	}

	requests, err := h.deps.RequestHistory.Handle(r.Context(), query)
	if err != nil {
		respondError(w, h.logger, "failed to list swap history", err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}
