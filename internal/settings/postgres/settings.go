package postgres

import (
	"time"

	"github.com/sgonzalez/retail-management/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The settings table holds exactly one row.
const settingsRowID = 1

// Repository implements settings.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) settings.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) Get() (*settings.Settings, error) {
	var s settings.Settings
	err := r.db.Where("id = ?", settingsRowID).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, settings.ErrSettingsNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Upsert(s *settings.Settings) error {
	s.ID = settingsRowID
	s.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"inventory_limit":       s.InventoryLimit,
			"notifications_enabled": s.NotificationsEnabled,
			"expiry_days":           s.ExpiryDays,
			"updated_at":            s.UpdatedAt,
		}),
	}).Create(s).Error
}
