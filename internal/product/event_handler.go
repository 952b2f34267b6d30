package product

import (
	"context"
	"log/slog"

	"github.com/sgonzalez/retail-management/internal/core/events"
)

// EventHandler keeps the inventory alert history in sync with stock
// movements: purchases open alerts, returns close them once stock recovers.
type EventHandler struct {
	service ServiceAPI
	logger  *slog.Logger
}

func NewEventHandler(service ServiceAPI, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		logger:  logger,
	}
}

func (h *EventHandler) HandlePurchaseRecorded(ctx context.Context, event events.Event) error {
	purchaseEvent, ok := event.(*events.PurchaseRecordedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	for _, productID := range purchaseEvent.ProductIDs {
		alert, err := h.service.RecordLowStockAlert(productID, purchaseEvent.PurchaseID)
		if err != nil {
			return err
		}
		if alert != nil {
			h.logger.Warn("product below minimum stock",
				"product_id", alert.ProductID,
				"name", alert.ProductName,
				"stock", alert.Stock,
				"min_stock", alert.MinStock,
				"purchase_id", purchaseEvent.PurchaseID)
		}
	}
	return nil
}

func (h *EventHandler) HandleStockReturned(ctx context.Context, event events.Event) error {
	returnEvent, ok := event.(*events.StockReturnedEvent)
	if !ok {
		h.logger.Error("unexpected event payload", "event_type", event.EventType())
		return nil
	}

	resolved, err := h.service.ResolveRecoveredAlerts(returnEvent.ProductID)
	if err != nil {
		return err
	}
	if resolved > 0 {
		h.logger.Info("inventory alerts resolved",
			"product_id", returnEvent.ProductID,
			"resolved", resolved,
			"purchase_id", returnEvent.PurchaseID)
	}
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePurchaseRecorded, h.HandlePurchaseRecorded)
	eventBus.Subscribe(events.EventTypeStockReturned, h.HandleStockReturned)
	h.logger.Info("product event handlers registered",
		"handlers", []string{events.EventTypePurchaseRecorded, events.EventTypeStockReturned})
}
