package purchase

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/sgonzalez/retail-management/internal/auth"
	"github.com/sgonzalez/retail-management/internal/core/events"
	"github.com/sgonzalez/retail-management/internal/transport"
	"github.com/sgonzalez/retail-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	eventBus *events.EventBus
}

func NewHandler(service ServiceAPI, eventBus *events.EventBus) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		eventBus:    eventBus,
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrPurchaseNotFound), errors.Is(err, ErrLineItemNotFound):
		h.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrProductNotFound):
		h.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInsufficientStock), errors.Is(err, ErrNotPending), errors.Is(err, ErrReturnExceedsPurchase):
		h.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		if _, ok := err.(ValidationError); ok {
			h.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func (h *Handler) RecordPurchase(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreatePurchaseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.RecordPurchase(user.ID, dto)
	if err != nil {
		h.Logger.Error("RecordPurchase: service error", "error", err, "employee_id", user.ID)
		h.handleError(w, err)
		return
	}

	if h.eventBus != nil {
		productIDs := make([]int64, 0, len(p.Items))
		for _, item := range p.Items {
			productIDs = append(productIDs, item.ProductID)
		}
		h.eventBus.Publish(r.Context(), events.NewPurchaseRecordedEvent(p.ID, user.ID, productIDs))
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	p, err := h.Service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid purchase id")
		return
	}

	var dto ApproveDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Approve(id, dto, user.ID)
	if err != nil {
		h.Logger.Error("Approve: service error", "error", err, "purchase_id", id)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) RecordReturn(w http.ResponseWriter, r *http.Request) {
	var dto CreateReturnDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ret, err := h.Service.RecordReturn(dto)
	if err != nil {
		h.Logger.Error("RecordReturn: service error", "error", err, "purchase_id", dto.PurchaseID)
		h.handleError(w, err)
		return
	}

	if h.eventBus != nil {
		h.eventBus.Publish(r.Context(), events.NewStockReturnedEvent(ret.PurchaseID, ret.ProductID, ret.Quantity))
	}

	h.WriteJSON(w, http.StatusCreated, ret)
}

// List scopes results by role: admins see every purchase, employees only
// their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var (
		purchases []*Purchase
		err       error
	)
	if user.Role.IsAdmin() {
		purchases, err = h.Service.ListAll()
	} else {
		purchases, err = h.Service.ListForEmployee(user.ID)
	}
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "user_id", user.ID)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, purchases)
}

func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.Service.ListPending()
	if err != nil {
		h.Logger.Error("ListPending: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, purchases)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats()
	if err != nil {
		h.Logger.Error("Stats: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListReturns(w http.ResponseWriter, r *http.Request) {
	returns, err := h.Service.ListReturns()
	if err != nil {
		h.Logger.Error("ListReturns: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, returns)
}
