package settings

import (
	"errors"
	"time"
)

var ErrSettingsNotFound = errors.New("settings not configured")

// Settings is a single-row table: the one row holds the system-wide knobs.
type Settings struct {
	ID                   int64     `json:"id" gorm:"primaryKey;column:id"`
	InventoryLimit       int       `json:"inventory_limit" gorm:"column:inventory_limit"`
	NotificationsEnabled bool      `json:"notifications_enabled" gorm:"column:notifications_enabled"`
	ExpiryDays           int       `json:"expiry_days" gorm:"column:expiry_days"`
	CreatedAt            time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt            time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Settings) TableName() string {
	return "settings"
}

type ServiceAPI interface {
	Get() (*Settings, error)
	Upsert(dto UpdateSettingsDTO) (*Settings, error)
}

type RepositoryAPI interface {
	Get() (*Settings, error)
	Upsert(s *Settings) error
}
