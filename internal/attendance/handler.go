package attendance

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/sgonzalez/retail-management/internal/auth"
	"github.com/sgonzalez/retail-management/internal/transport"
	"github.com/sgonzalez/retail-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrDuplicateRecord, ErrDuplicateExit:
		h.WriteError(w, http.StatusBadRequest, err.Error())
	case ErrNoEntry, ErrRecordNotFound:
		h.WriteError(w, http.StatusNotFound, err.Error())
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	rec, err := h.Service.RecordEntry(user.ID)
	if err != nil {
		h.Logger.Error("RecordEntry: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) RecordExit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.Service.RecordExit(user.ID)
	if err != nil {
		h.Logger.Error("RecordExit: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) RecordManual(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ManualAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.RecordManual(user.ID, dto)
	if err != nil {
		h.Logger.Error("RecordManual: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) RecordForEmployee(w http.ResponseWriter, r *http.Request) {
	var dto AdminAttendanceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.Service.RecordForEmployee(dto)
	if err != nil {
		h.Logger.Error("RecordForEmployee: service error", "error", err, "user_id", dto.UserID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid record id")
		return
	}

	var dto ConfirmDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Confirm(recordID, dto.Confirmed, user.ID); err != nil {
		h.Logger.Error("Confirm: service error", "error", err, "record_id", recordID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"id":        recordID,
		"confirmed": dto.Confirmed,
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	records, err := h.Service.ListForUser(user.ID)
	if err != nil {
		h.Logger.Error("ListMine: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("ListAll: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) OvertimeMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	overtime, err := h.Service.OvertimeForUser(user.ID)
	if err != nil {
		h.Logger.Error("OvertimeMine: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overtime)
}

func (h *Handler) OvertimeAll(w http.ResponseWriter, r *http.Request) {
	overtime, err := h.Service.OvertimeAll()
	if err != nil {
		h.Logger.Error("OvertimeAll: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, overtime)
}
