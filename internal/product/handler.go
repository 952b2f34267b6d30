package product

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
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
	case ErrProductNotFound:
		h.WriteError(w, http.StatusNotFound, err.Error())
	case ErrDuplicateProduct:
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
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Create(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, p)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.List()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.Service.GetByID(id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) GetByBarcode(w http.ResponseWriter, r *http.Request) {
	barcode := chi.URLParam(r, "barcode")

	p, err := h.Service.GetByBarcode(barcode)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := h.Service.Update(id, dto)
	if err != nil {
		h.Logger.Error("Update: service error", "error", err, "product_id", id)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.Service.Delete(id); err != nil {
		h.Logger.Error("Delete: service error", "error", err, "product_id", id)
		h.handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) LowStockAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.Service.LowStockAlerts()
	if err != nil {
		h.Logger.Error("LowStockAlerts: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, alerts)
}

func (h *Handler) AlertHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.Service.AlertHistory()
	if err != nil {
		h.Logger.Error("AlertHistory: service error", "error", err)
		h.handleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, history)
}
