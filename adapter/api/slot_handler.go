package api

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	slotCommands "github.com/felixgeelhaar/slotswap/internal/slots/application/commands"
	slotQueries "github.com/felixgeelhaar/slotswap/internal/slots/application/queries"
	slotDomain "github.com/felixgeelhaar/slotswap/internal/slots/domain"
)

// SlotHandler handles the caller's own slots.
type SlotHandler struct {
	deps   Dependencies
	logger *slog.Logger
}

// NewSlotHandler creates a new slot handler.
func NewSlotHandler(deps Dependencies, logger *slog.Logger) *SlotHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotHandler{deps: deps, logger: logger}
}

type createSlotRequest struct {
	Title     string    `json:"title"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type updateSlotRequest struct {
	Title     *string    `json:"title"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Status    *string    `json:"status"`
}

// List handles GET /api/v1/slots
func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())
	query := slotQueries.ListMySlotsQuery{OwnerID: callerID}

	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status, err := slotDomain.ParseStatus(statusParam)
		if err != nil {
			writeError(w, withMessage(ErrBadRequest, err))
			return
		}
		query.Status = &status
	}

	slots, err := h.deps.ListMySlots.Handle(r.Context(), query)
	if err != nil {
		h.fail(w, "failed to list slots", err)
		return
	}
	writeJSON(w, http.StatusOK, slots)
}

// Create handles POST /api/v1/slots
func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}

	result, err := h.deps.CreateSlot.Handle(r.Context(), slotCommands.CreateSlotCommand{
		OwnerID: callerID,
		Title:   req.Title,
		Start:   req.StartTime,
		End:     req.EndTime,
	})
	if err != nil {
		h.fail(w, "failed to create slot", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]uuid.UUID{"id": result.SlotID})
}

// Update handles PATCH /api/v1/slots/{slotID}
func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())
	slotID, err := uuid.Parse(r.PathValue("slotID"))
	if err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}

	var req updateSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}

	patch := slotDomain.Patch{Title: req.Title, Start: req.StartTime, End: req.EndTime}
	if req.Status != nil {
		status, err := slotDomain.ParseStatus(*req.Status)
		if err != nil {
			writeError(w, withMessage(ErrBadRequest, err))
			return
		}
		patch.Status = &status
	}

	slot, err := h.deps.UpdateSlot.Handle(r.Context(), slotCommands.UpdateSlotCommand{
		SlotID:   slotID,
		CallerID: callerID,
		Patch:    patch,
	})
	if err != nil {
		h.fail(w, "failed to update slot", err)
		return
	}
	writeJSON(w, http.StatusOK, slotQueries.ToSlotDTO(slot))
}

// Delete handles DELETE /api/v1/slots/{slotID}
func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())
	slotID, err := uuid.Parse(r.PathValue("slotID"))
	if err != nil {
		writeError(w, withMessage(ErrBadRequest, err))
		return
	}

	err = h.deps.DeleteSlot.Handle(r.Context(), slotCommands.DeleteSlotCommand{
		SlotID:   slotID,
		CallerID: callerID,
	})
	if err != nil {
		h.fail(w, "failed to delete slot", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export handles GET /api/v1/slots/export.ics
func (h *SlotHandler) Export(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerFromContext(r.Context())

	var buf bytes.Buffer
	if err := h.deps.ExportCalendar.Handle(r.Context(), slotQueries.ExportCalendarQuery{OwnerID: callerID}, &buf); err != nil {
		h.fail(w, "failed to export slots", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="slots.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (h *SlotHandler) fail(w http.ResponseWriter, msg string, err error) {
	respondError(w, h.logger, msg, err)
}
