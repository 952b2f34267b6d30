package postgres

import (
	"time"

	"github.com/sgonzalez/retail-management/internal/attendance"
	"github.com/sgonzalez/retail-management/internal/core/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository implements attendance.RepositoryAPI using GORM
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &Repository{db: db}
}

// CreateRecord inserts a record; the (user_id, date) unique index is the
// duplicate guard, so a constraint violation becomes ErrDuplicateRecord.
func (r *Repository) CreateRecord(rec *attendance.Record) error {
	err := r.db.Create(rec).Error
	if err != nil {
		if database.IsUniqueViolation(err) {
			return attendance.ErrDuplicateRecord
		}
		return err
	}
	return nil
}

func (r *Repository) GetRecordByUserAndDate(userID int64, date string) (*attendance.Record, error) {
	var rec attendance.Record
	err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) GetRecordByID(id int64) (*attendance.Record, error) {
	var rec attendance.Record
	err := r.db.Where("id = ?", id).First(&rec).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, attendance.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *Repository) UpdateRecord(rec *attendance.Record) error {
	rec.UpdatedAt = time.Now()
	return r.db.Save(rec).Error
}

// ConfirmRecord sets the confirmation fields; zero affected rows means the
// record does not exist.
func (r *Repository) ConfirmRecord(id int64, confirmed bool, approverID int64) error {
	result := r.db.Model(&attendance.Record{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"confirmed":    confirmed,
			"confirmed_by": approverID,
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

// UpsertOvertime inserts or, when a row for (user_id, date) already exists,
// overwrites its hours and description.
func (r *Repository) UpsertOvertime(ot *attendance.Overtime) error {
	ot.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"hours":       ot.Hours,
			"description": ot.Description,
			"updated_at":  ot.UpdatedAt,
		}),
	}).Create(ot).Error
}

func (r *Repository) ListRecordsForUser(userID int64) ([]*attendance.Record, error) {
	var records []*attendance.Record
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *Repository) ListAllRecords() ([]*attendance.Record, error) {
	var records []*attendance.Record
	err := r.db.Order("date DESC").Find(&records).Error
	return records, err
}

func (r *Repository) ListOvertimeForUser(userID int64) ([]*attendance.Overtime, error) {
	var overtime []*attendance.Overtime
	err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&overtime).Error
	return overtime, err
}

func (r *Repository) ListAllOvertime() ([]*attendance.Overtime, error) {
	var overtime []*attendance.Overtime
	err := r.db.Order("date DESC").Find(&overtime).Error
	return overtime, err
}
