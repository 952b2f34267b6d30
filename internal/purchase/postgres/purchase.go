package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/sgonzalez/retail-management/internal/purchase"
	"gorm.io/gorm"
)

// Repository implements purchase.RepositoryAPI using GORM. Purchase
// creation and return processing run inside single store transactions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) purchase.RepositoryAPI {
	return &Repository{db: db}
}

// CreatePurchase decrements stock, inserts the header and the line items
// in one transaction. The decrement is a single conditional UPDATE guarded
// by stock >= quantity, so two concurrent purchases cannot both pass a
// stale sufficiency check.
func (r *Repository) CreatePurchase(p *purchase.Purchase) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range p.Items {
			result := tx.Exec(
				`UPDATE products SET stock = stock - ?, updated_at = ? WHERE id = ? AND stock >= ?`,
				item.Quantity, time.Now(), item.ProductID, item.Quantity,
			)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				// Zero rows: either the product is gone or the stock ran out.
				var count int64
				if err := tx.Table("products").Where("id = ?", item.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return fmt.Errorf("%w: product %d", purchase.ErrProductNotFound, item.ProductID)
				}
				return fmt.Errorf("%w: product %d", purchase.ErrInsufficientStock, item.ProductID)
			}

			row := tx.Raw(`SELECT name FROM products WHERE id = ?`, item.ProductID).Row()
			if err := row.Scan(&item.ProductName); err != nil {
				return err
			}
		}

		if err := tx.Create(p).Error; err != nil {
			return err
		}

		for _, item := range p.Items {
			item.PurchaseID = p.ID
			if err := tx.Create(item).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *Repository) GetByID(id int64) (*purchase.Purchase, error) {
	var p purchase.Purchase
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, purchase.ErrPurchaseNotFound
		}
		return nil, err
	}

	if err := r.loadItems([]*purchase.Purchase{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// SetStatus performs the pending-to-final transition as one conditional
// update; zero affected rows means either a missing purchase or one that
// already left pending.
func (r *Repository) SetStatus(id int64, status string, approverID int64) error {
	result := r.db.Model(&purchase.Purchase{}).
		Where("id = ? AND status = ?", id, purchase.StatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"approved_by": approverID,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Table("purchases").Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return purchase.ErrPurchaseNotFound
		}
		return purchase.ErrNotPending
	}
	return nil
}

// CreateReturn validates against the cumulative quantity already returned
// for the line item, inserts the return row and restores stock, in one
// transaction.
func (r *Repository) CreateReturn(ret *purchase.Return) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table("purchases").Where("id = ?", ret.PurchaseID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return purchase.ErrPurchaseNotFound
		}

		var purchased int
		row := tx.Raw(
			`SELECT quantity FROM purchase_items WHERE purchase_id = ? AND product_id = ?`,
			ret.PurchaseID, ret.ProductID,
		).Row()
		if err := row.Scan(&purchased); err != nil {
			if err == sql.ErrNoRows {
				return purchase.ErrLineItemNotFound
			}
			return err
		}

		var alreadyReturned int
		row = tx.Raw(
			`SELECT COALESCE(SUM(quantity), 0) FROM returns WHERE purchase_id = ? AND product_id = ?`,
			ret.PurchaseID, ret.ProductID,
		).Row()
		if err := row.Scan(&alreadyReturned); err != nil {
			return err
		}

		if alreadyReturned+ret.Quantity > purchased {
			return purchase.ErrReturnExceedsPurchase
		}

		if err := tx.Create(ret).Error; err != nil {
			return err
		}

		result := tx.Exec(
			`UPDATE products SET stock = stock + ?, updated_at = ? WHERE id = ?`,
			ret.Quantity, time.Now(), ret.ProductID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return purchase.ErrProductNotFound
		}

		return nil
	})
}

func (r *Repository) ListForEmployee(employeeID int64) ([]*purchase.Purchase, error) {
	var purchases []*purchase.Purchase
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *Repository) ListAll() ([]*purchase.Purchase, error) {
	var purchases []*purchase.Purchase
	err := r.db.Order("created_at DESC").Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *Repository) ListPending() ([]*purchase.Purchase, error) {
	var purchases []*purchase.Purchase
	err := r.db.Where("status = ?", purchase.StatusPending).
		Order("created_at ASC"). // FIFO for approvals
		Find(&purchases).Error
	if err != nil {
		return nil, err
	}
	if err := r.loadItems(purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *Repository) StatsPerEmployee() ([]*purchase.EmployeeStats, error) {
	var stats []*purchase.EmployeeStats
	query := `SELECT employee_id, COUNT(*) AS purchase_count, COALESCE(SUM(total), 0) AS total_amount
	          FROM purchases
	          GROUP BY employee_id
	          ORDER BY total_amount DESC`
	err := r.db.Raw(query).Scan(&stats).Error
	return stats, err
}

func (r *Repository) ListReturns() ([]*purchase.Return, error) {
	var returns []*purchase.Return
	err := r.db.Order("created_at DESC").Find(&returns).Error
	return returns, err
}

func (r *Repository) loadItems(purchases []*purchase.Purchase) error {
	if len(purchases) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(purchases))
	byID := make(map[int64]*purchase.Purchase, len(purchases))
	for _, p := range purchases {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Items = []*purchase.PurchaseItem{}
	}

	var items []*purchase.PurchaseItem
	if err := r.db.Where("purchase_id IN ?", ids).Order("id ASC").Find(&items).Error; err != nil {
		return err
	}

	for _, item := range items {
		if p, ok := byID[item.PurchaseID]; ok {
			p.Items = append(p.Items, item)
		}
	}
	return nil
}
