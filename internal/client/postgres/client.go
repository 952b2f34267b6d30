package postgres

import (
	"github.com/sgonzalez/retail-management/internal/client"
	"github.com/sgonzalez/retail-management/internal/core/database"
	"gorm.io/gorm"
)

// Repository implements client.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) client.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Create(c *client.Client) error {
	err := r.db.Create(c).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return client.ErrDuplicateClient
		}
		return err
	}
	return nil
}

func (r *Repository) GetByID(id int64) (*client.Client, error) {
	var c client.Client
	err := r.db.Where("id = ?", id).First(&c).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, client.ErrClientNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListAll() ([]*client.Client, error) {
	var clients []*client.Client
	err := r.db.Order("name ASC").Find(&clients).Error
	return clients, err
}

// ListForEmployee returns the clients referenced by the employee's own
// purchases.
func (r *Repository) ListForEmployee(employeeID int64) ([]*client.Client, error) {
	var clients []*client.Client
	query := `SELECT DISTINCT c.id, c.name, c.email, c.phone, c.gender, c.created_at, c.updated_at
	          FROM clients c
	          JOIN purchases p ON p.client_id = c.id
	          WHERE p.employee_id = ?
	          ORDER BY c.name ASC`
	err := r.db.Raw(query, employeeID).Scan(&clients).Error
	return clients, err
}
