package schedule

import (
	"errors"
	"time"
)

var (
	ErrDuplicateSchedule = errors.New("schedule already exists for this date")
	ErrScheduleNotFound  = errors.New("schedule not found")
)

// Schedule assigns a shift label to a user for a date. One per (user,
// date), enforced by a unique index.
type Schedule struct {
	ID        int64     `json:"id" gorm:"primaryKey;column:id"`
	UserID    int64     `json:"user_id" gorm:"column:user_id"`
	Date      string    `json:"date" gorm:"column:date"`
	Shift     string    `json:"shift" gorm:"column:shift"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Schedule) TableName() string {
	return "schedules"
}

type ServiceAPI interface {
	Create(userID int64, dto CreateScheduleDTO) (*Schedule, error)
	ListForUser(userID int64) ([]*Schedule, error)
	ListAll() ([]*Schedule, error)
}

type RepositoryAPI interface {
	Create(s *Schedule) error
	ListForUser(userID int64) ([]*Schedule, error)
	ListAll() ([]*Schedule, error)
}
