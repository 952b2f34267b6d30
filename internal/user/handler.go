package user

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/sgonzalez/retail-management/internal"
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

// handleError translates domain sentinels into the shared error taxonomy so
// responses carry a machine-readable code alongside the status.
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch err {
	case ErrUserNotFound:
		h.HandleServiceError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeUserNotFound))
	case ErrDuplicateUser:
		h.HandleServiceError(w, internal.NewDuplicateError(err.Error(), internal.ErrCodeDuplicateUser))
	case auth.ErrInvalidRole:
		h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidRole))
	default:
		if _, ok := err.(ValidationError); ok {
			h.HandleServiceError(w, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed))
			return
		}
		h.HandleServiceError(w, err)
	}
}

func (h *Handler) userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid user id", internal.ErrCodeValidationFailed))
		return 0, false
	}
	return id, true
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.HandleServiceError(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
		return
	}

	profile, err := h.Service.GetProfile(user.ID)
	if err != nil {
		h.Logger.Error("GetProfile: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.HandleServiceError(w, internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken))
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	profile, err := h.Service.UpdateProfile(user.ID, dto)
	if err != nil {
		h.Logger.Error("UpdateProfile: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	u, err := h.Service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("Update: service error", "error", err, "user_id", id)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "user_id", id)
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto AssignRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.Service.AssignRole(id, dto.Role)
	if err != nil {
		h.Logger.Error("AssignRole: service error", "error", err, "user_id", id, "role", dto.Role)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdatePermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.userIDParam(w, r)
	if !ok {
		return
	}

	var dto UpdatePermissionsDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.HandleServiceError(w, internal.NewValidationError("invalid request body", internal.ErrCodeValidationFailed))
		return
	}

	u, err := h.Service.UpdatePermissions(id, dto.Permissions)
	if err != nil {
		h.Logger.Error("UpdatePermissions: service error", "error", err, "user_id", id)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, u)
}
