package product

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrDuplicateProduct = errors.New("barcode or general code already registered")
)

// Product is a catalog item. Stock is only mutated by the purchase and
// return transactions, never directly through this package.
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	Name        string    `json:"name" gorm:"column:name"`
	Price       float64   `json:"price" gorm:"column:price"`
	Stock       int       `json:"stock" gorm:"column:stock"`
	Category    string    `json:"category" gorm:"column:category"`
	Size        string    `json:"size" gorm:"column:size"`
	Barcode     string    `json:"barcode" gorm:"column:barcode"`
	GeneralCode string    `json:"general_code" gorm:"column:general_code"`
	ImagePath   string    `json:"image_path" gorm:"column:image_path"`
	MinStock    int       `json:"min_stock" gorm:"column:min_stock"`
	MaxStock    int       `json:"max_stock" gorm:"column:max_stock"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Product) TableName() string {
	return "products"
}

// LowStockAlert pairs a product with its alert threshold for the
// inventory dashboard.
type LowStockAlert struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	MinStock  int    `json:"min_stock"`
}

// InventoryAlert is a persisted low-stock incident. A row opens when a
// purchase leaves a product below its minimum and resolves when stock
// recovers.
type InventoryAlert struct {
	ID          int64      `json:"id" gorm:"primaryKey;column:id"`
	ProductID   int64      `json:"product_id" gorm:"column:product_id"`
	ProductName string     `json:"product_name" gorm:"column:product_name"`
	Stock       int        `json:"stock" gorm:"column:stock"`
	MinStock    int        `json:"min_stock" gorm:"column:min_stock"`
	PurchaseID  int64      `json:"purchase_id" gorm:"column:purchase_id"`
	ResolvedAt  *time.Time `json:"resolved_at" gorm:"column:resolved_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (InventoryAlert) TableName() string {
	return "inventory_alerts"
}

type ServiceAPI interface {
	Create(dto CreateProductDTO) (*Product, error)
	List() ([]*Product, error)
	GetByID(id int64) (*Product, error)
	GetByBarcode(barcode string) (*Product, error)
	Update(id int64, dto UpdateProductDTO) (*Product, error)
	Delete(id int64) error
	LowStockAlerts() ([]*LowStockAlert, error)
	RecordLowStockAlert(productID, purchaseID int64) (*InventoryAlert, error)
	ResolveRecoveredAlerts(productID int64) (int64, error)
	AlertHistory() ([]*InventoryAlert, error)
}

type RepositoryAPI interface {
	Create(p *Product) error
	GetByID(id int64) (*Product, error)
	GetByBarcode(barcode string) (*Product, error)
	List() ([]*Product, error)
	Update(p *Product) error
	Delete(id int64) error
	ListBelowMinStock() ([]*Product, error)
	CreateAlert(a *InventoryAlert) error
	ListAlerts() ([]*InventoryAlert, error)
	ResolveAlerts(productID int64, at time.Time) (int64, error)
}
