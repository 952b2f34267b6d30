package purchase

import (
	"errors"
	"time"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var (
	ErrPurchaseNotFound      = errors.New("purchase not found")
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrNotPending            = errors.New("purchase is not pending")
	ErrLineItemNotFound      = errors.New("purchase line item not found")
	ErrReturnExceedsPurchase = errors.New("return quantity exceeds purchased quantity")
)

// Purchase is a sale header. Stock is decremented when the purchase is
// created; the pending/approved/rejected lifecycle is an audit gate only.
type Purchase struct {
	ID         int64           `json:"id" gorm:"primaryKey;column:id"`
	EmployeeID int64           `json:"employee_id" gorm:"column:employee_id"`
	ClientID   int64           `json:"client_id" gorm:"column:client_id"`
	Total      float64         `json:"total" gorm:"column:total"`
	Status     string          `json:"status" gorm:"column:status"`
	ApprovedBy *int64          `json:"approved_by" gorm:"column:approved_by"`
	Items      []*PurchaseItem `json:"items" gorm:"-"`
	CreatedAt  time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem snapshots the product name and unit price at sale time.
type PurchaseItem struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	PurchaseID  int64     `json:"purchase_id" gorm:"column:purchase_id"`
	ProductID   int64     `json:"product_id" gorm:"column:product_id"`
	ProductName string    `json:"product_name" gorm:"column:product_name"`
	Quantity    int       `json:"quantity" gorm:"column:quantity"`
	UnitPrice   float64   `json:"unit_price" gorm:"column:unit_price"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// Return restores stock for part of a purchased line item.
type Return struct {
	ID         int64     `json:"id" gorm:"primaryKey;column:id"`
	PurchaseID int64     `json:"purchase_id" gorm:"column:purchase_id"`
	ProductID  int64     `json:"product_id" gorm:"column:product_id"`
	Quantity   int       `json:"quantity" gorm:"column:quantity"`
	Reason     string    `json:"reason" gorm:"column:reason"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Return) TableName() string {
	return "returns"
}

// EmployeeStats aggregates purchases per employee for the admin report.
type EmployeeStats struct {
	EmployeeID    int64   `json:"employee_id"`
	PurchaseCount int64   `json:"purchase_count"`
	TotalAmount   float64 `json:"total_amount"`
}

type ServiceAPI interface {
	RecordPurchase(employeeID int64, dto CreatePurchaseDTO) (*Purchase, error)
	GetByID(id int64) (*Purchase, error)
	Approve(purchaseID int64, dto ApproveDTO, approverID int64) (*Purchase, error)
	RecordReturn(dto CreateReturnDTO) (*Return, error)
	ListForEmployee(employeeID int64) ([]*Purchase, error)
	ListAll() ([]*Purchase, error)
	ListPending() ([]*Purchase, error)
	Stats() ([]*EmployeeStats, error)
	ListReturns() ([]*Return, error)
}

// RepositoryAPI owns the transaction boundaries: purchase creation and
// return processing are single all-or-nothing store transactions.
type RepositoryAPI interface {
	CreatePurchase(p *Purchase) error
	GetByID(id int64) (*Purchase, error)
	SetStatus(id int64, status string, approverID int64) error
	CreateReturn(ret *Return) error
	ListForEmployee(employeeID int64) ([]*Purchase, error)
	ListAll() ([]*Purchase, error)
	ListPending() ([]*Purchase, error)
	StatsPerEmployee() ([]*EmployeeStats, error)
	ListReturns() ([]*Return, error)
}
