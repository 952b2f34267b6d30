package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePurchaseRecorded = "purchase.recorded"
	EventTypeStockReturned    = "stock.returned"
)

// PurchaseRecordedEvent fires after a purchase transaction commits, so the
// inventory alerting can re-check thresholds for the touched products.
type PurchaseRecordedEvent struct {
	BaseEvent
	PurchaseID int64   `json:"purchase_id"`
	EmployeeID int64   `json:"employee_id"`
	ProductIDs []int64 `json:"product_ids"`
}

func NewPurchaseRecordedEvent(purchaseID, employeeID int64, productIDs []int64) *PurchaseRecordedEvent {
	return &PurchaseRecordedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePurchaseRecorded,
			Timestamp: time.Now(),
		},
		PurchaseID: purchaseID,
		EmployeeID: employeeID,
		ProductIDs: productIDs,
	}
}

// StockReturnedEvent fires after a return restores stock.
type StockReturnedEvent struct {
	BaseEvent
	PurchaseID int64 `json:"purchase_id"`
	ProductID  int64 `json:"product_id"`
	Quantity   int   `json:"quantity"`
}

func NewStockReturnedEvent(purchaseID, productID int64, quantity int) *StockReturnedEvent {
	return &StockReturnedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeStockReturned,
			Timestamp: time.Now(),
		},
		PurchaseID: purchaseID,
		ProductID:  productID,
		Quantity:   quantity,
	}
}
