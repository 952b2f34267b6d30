package postgres

import (
	"time"

	"github.com/sgonzalez/retail-management/internal/core/database"
	"github.com/sgonzalez/retail-management/internal/user"
	"gorm.io/gorm"
)

// Repository implements user.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) user.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) GetByID(id int64) (*user.User, error) {
	var u user.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) ListAll() ([]*user.User, error) {
	var users []*user.User
	err := r.db.Order("username ASC").Find(&users).Error
	return users, err
}

func (r *Repository) Update(u *user.User) error {
	u.UpdatedAt = time.Now()
	err := r.db.Save(u).Error
	if err != nil && database.IsUniqueViolation(err) {
		return user.ErrDuplicateUser
	}
	return err
}

func (r *Repository) Delete(id int64) error {
	result := r.db.Where("id = ?", id).Delete(&user.User{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}
