package postgres

import (
	"github.com/sgonzalez/retail-management/internal/core/database"
	"github.com/sgonzalez/retail-management/internal/schedule"
	"gorm.io/gorm"
)

// Repository implements schedule.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) schedule.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Create(s *schedule.Schedule) error {
	err := r.db.Create(s).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return schedule.ErrDuplicateSchedule
		}
		return err
	}
	return nil
}

func (r *Repository) ListForUser(userID int64) ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&schedules).Error
	return schedules, err
}

func (r *Repository) ListAll() ([]*schedule.Schedule, error) {
	var schedules []*schedule.Schedule
	err := r.db.Order("date DESC").Find(&schedules).Error
	return schedules, err
}
