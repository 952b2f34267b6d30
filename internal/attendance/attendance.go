package attendance

import (
	"errors"
	"time"
)

// Shift length in hours; anything worked beyond it becomes overtime.
const StandardShiftHours = 8.0

// Overtime descriptions kept verbatim from the production data so existing
// reports keep matching on them.
const (
	OvertimeAutoDescription   = "Horas extras automáticas"
	OvertimeManualDescription = "Horas extras manuales por admin"
)

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

var (
	ErrDuplicateRecord = errors.New("attendance already recorded for this date")
	ErrDuplicateExit   = errors.New("exit already recorded for this date")
	ErrNoEntry         = errors.New("no attendance entry found for today")
	ErrRecordNotFound  = errors.New("attendance record not found")
)

// Record is one attendance row: at most one per (user, date), enforced by a
// unique index rather than a pre-insert read.
type Record struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	UserID      int64     `json:"user_id" gorm:"column:user_id"`
	Date        string    `json:"date" gorm:"column:date"`
	Status      string    `json:"status" gorm:"column:status"`
	EntryTime   *string   `json:"entry_time" gorm:"column:entry_time"`
	ExitTime    *string   `json:"exit_time" gorm:"column:exit_time"`
	Confirmed   bool      `json:"confirmed" gorm:"column:confirmed"`
	ConfirmedBy *int64    `json:"confirmed_by" gorm:"column:confirmed_by"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Record) TableName() string {
	return "attendances"
}

// Overtime is derived from an exit event, never created on its own. One row
// per (user, date) with upsert semantics when recomputed.
type Overtime struct {
	ID          int64     `json:"id" gorm:"primaryKey;column:id"`
	UserID      int64     `json:"user_id" gorm:"column:user_id"`
	Date        string    `json:"date" gorm:"column:date"`
	Hours       float64   `json:"hours" gorm:"column:hours"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Overtime) TableName() string {
	return "overtime_records"
}

// ExitResult is what the exit endpoint returns to the caller.
type ExitResult struct {
	ExitTime      string   `json:"exit_time"`
	WorkedHours   float64  `json:"worked_hours"`
	OvertimeHours *float64 `json:"overtime_hours,omitempty"`
}

type ServiceAPI interface {
	RecordEntry(userID int64) (*Record, error)
	RecordExit(userID int64) (*ExitResult, error)
	RecordManual(userID int64, dto ManualAttendanceDTO) (*Record, error)
	RecordForEmployee(dto AdminAttendanceDTO) (*Record, error)
	Confirm(recordID int64, confirmed bool, approverID int64) error
	ListForUser(userID int64) ([]*Record, error)
	ListAll() ([]*Record, error)
	OvertimeForUser(userID int64) ([]*Overtime, error)
	OvertimeAll() ([]*Overtime, error)
}

type RepositoryAPI interface {
	CreateRecord(rec *Record) error
	GetRecordByUserAndDate(userID int64, date string) (*Record, error)
	GetRecordByID(id int64) (*Record, error)
	UpdateRecord(rec *Record) error
	ConfirmRecord(id int64, confirmed bool, approverID int64) error
	UpsertOvertime(ot *Overtime) error
	ListRecordsForUser(userID int64) ([]*Record, error)
	ListAllRecords() ([]*Record, error)
	ListOvertimeForUser(userID int64) ([]*Overtime, error)
	ListAllOvertime() ([]*Overtime, error)
}

func validStatus(s string) bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	}
	return false
}
