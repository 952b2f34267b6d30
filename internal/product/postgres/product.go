package postgres

import (
	"time"

	"github.com/sgonzalez/retail-management/internal/core/database"
	"github.com/sgonzalez/retail-management/internal/product"
	"gorm.io/gorm"
)

// Repository implements product.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) product.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Create(p *product.Product) error {
	err := r.db.Create(p).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return product.ErrDuplicateProduct
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*product.Product, error) {
	var p product.Product
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) GetByBarcode(barcode string) (*product.Product, error) {
	var p product.Product
	err := r.db.Where("barcode = ?", barcode).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, product.ErrProductNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) List() ([]*product.Product, error) {
	var products []*product.Product
	err := r.db.Order("name ASC").Find(&products).Error
	return products, err
}

func (r *Repository) Update(p *product.Product) error {
	p.UpdatedAt = time.Now()
	err := r.db.Save(p).Error
	if err != nil && database.IsUniqueViolation(err) {
		return product.ErrDuplicateProduct
	}
	return err
}

func (r *Repository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&product.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.ErrProductNotFound
	}
	return nil
}

func (r *Repository) ListBelowMinStock() ([]*product.Product, error) {
	var products []*product.Product
	err := r.db.Where("stock < min_stock").
		Order("stock ASC").
		Find(&products).Error
	return products, err
}

func (r *Repository) CreateAlert(a *product.InventoryAlert) error {
	return r.db.Create(a).Error
}

func (r *Repository) ListAlerts() ([]*product.InventoryAlert, error) {
	var alerts []*product.InventoryAlert
	err := r.db.Order("created_at DESC").Find(&alerts).Error
	return alerts, err
}

// ResolveAlerts closes every open alert for the product and reports how
// many rows it touched.
func (r *Repository) ResolveAlerts(productID int64, at time.Time) (int64, error) {
	result := r.db.Model(&product.InventoryAlert{}).
		Where("product_id = ? AND resolved_at IS NULL", productID).
		Update("resolved_at", at)
	return result.RowsAffected, result.Error
}
