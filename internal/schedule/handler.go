package schedule

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
	case ErrDuplicateSchedule:
		h.WriteError(w, http.StatusBadRequest, err.Error())
	case ErrScheduleNotFound:
		h.WriteError(w, http.StatusNotFound, err.Error())
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sched, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, sched)
}

// ListMine returns the caller's own schedules.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	schedules, err := h.Service.ListForUser(user.ID)
	if err != nil {
		h.Logger.Error("ListMine: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedules)
}

// ListForUser is the admin view of any user's schedules.
func (h *Handler) ListForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	schedules, err := h.Service.ListForUser(userID)
	if err != nil {
		h.Logger.Error("ListForUser: service error", "error", err, "user_id", userID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedules)
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("ListAll: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schedules)
}
