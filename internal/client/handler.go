package client

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
	case ErrClientNotFound:
		h.WriteError(w, http.StatusNotFound, err.Error())
	case ErrDuplicateClient:
		h.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateClientDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, c)
}

// List scopes results by role: admins see every client, employees only the
// clients attached to their own purchases.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		clients []*Client
		err     error
	)
	if user.Role.IsAdmin() {
		clients, err = h.Service.ListAll()
	} else {
		clients, err = h.Service.ListForEmployee(user.ID)
	}
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, clients)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid client id")
		return
	}

	c, err := h.Service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, c)
}
