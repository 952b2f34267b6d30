package attendance

import (
	"log/slog"
	"math"
	"time"

	"github.com/sgonzalez/retail-management/internal/core/clock"
)

// Service implements the attendance ledger: entry/exit events and the
// overtime derivation that follows from them.
type Service struct {
	repo   RepositoryAPI
	clock  clock.Clock
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		clock:  clk,
		logger: logger,
	}
}

// RecordEntry registers today's entry for the user. The (user, date) unique
// index is the duplicate guard; the repository translates the constraint
// violation into ErrDuplicateRecord.
func (s *Service) RecordEntry(userID int64) (*Record, error) {
	now := s.clock.Now()
	entryTime := now.Format(timeLayout)

	rec := &Record{
		UserID:    userID,
		Date:      now.Format(dateLayout),
		Status:    StatusPresent,
		EntryTime: &entryTime,
	}

	if err := s.repo.CreateRecord(rec); err != nil {
		if err == ErrDuplicateRecord {
			s.logger.Warn("duplicate entry attempt", "user_id", userID, "date", rec.Date)
		}
		return nil, err
	}

	s.logger.Info("attendance entry recorded", "user_id", userID, "date", rec.Date, "entry_time", entryTime)
	return rec, nil
}

// RecordExit sets today's exit time, computes worked hours and posts an
// overtime record when the shift ran longer than the standard eight hours.
func (s *Service) RecordExit(userID int64) (*ExitResult, error) {
	now := s.clock.Now()
	today := now.Format(dateLayout)

	rec, err := s.repo.GetRecordByUserAndDate(userID, today)
	if err != nil {
		if err == ErrRecordNotFound {
			return nil, ErrNoEntry
		}
		return nil, err
	}

	if rec.ExitTime != nil {
		return nil, ErrDuplicateExit
	}
	if rec.EntryTime == nil {
		return nil, ValidationError{Msg: "attendance record has no entry time"}
	}

	exitTime := now.Format(timeLayout)
	worked, err := workedHours(*rec.EntryTime, exitTime)
	if err != nil {
		return nil, err
	}

	rec.ExitTime = &exitTime
	if err := s.repo.UpdateRecord(rec); err != nil {
		return nil, err
	}

	result := &ExitResult{ExitTime: exitTime, WorkedHours: worked}

	if worked > StandardShiftHours {
		hours := roundHours(worked - StandardShiftHours)
		if err := s.repo.UpsertOvertime(&Overtime{
			UserID:      userID,
			Date:        today,
			Hours:       hours,
			Description: OvertimeAutoDescription,
		}); err != nil {
			return nil, err
		}
		result.OvertimeHours = &hours
		s.logger.Info("overtime posted", "user_id", userID, "date", today, "hours", hours)
	}

	s.logger.Info("attendance exit recorded", "user_id", userID, "date", today, "worked_hours", worked)
	return result, nil
}

// RecordManual is the employee self-service path for a chosen date.
func (s *Service) RecordManual(userID int64, dto ManualAttendanceDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rec := &Record{
		UserID:    userID,
		Date:      dto.Date,
		Status:    dto.Status,
		EntryTime: dto.EntryTime,
		ExitTime:  dto.ExitTime,
	}

	if err := s.repo.CreateRecord(rec); err != nil {
		return nil, err
	}

	s.logger.Info("manual attendance recorded", "user_id", userID, "date", dto.Date, "status", dto.Status)
	return rec, nil
}

// RecordForEmployee is the admin path. When both times are present it runs
// the same overtime derivation as RecordExit, tagged as admin-entered.
func (s *Service) RecordForEmployee(dto AdminAttendanceDTO) (*Record, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rec := &Record{
		UserID:    dto.UserID,
		Date:      dto.Date,
		Status:    dto.Status,
		EntryTime: dto.EntryTime,
		ExitTime:  dto.ExitTime,
	}

	if dto.EntryTime != nil && dto.ExitTime != nil {
		worked, err := workedHours(*dto.EntryTime, *dto.ExitTime)
		if err != nil {
			return nil, err
		}

		if worked > StandardShiftHours {
			if err := s.repo.CreateRecord(rec); err != nil {
				return nil, err
			}
			if err := s.repo.UpsertOvertime(&Overtime{
				UserID:      dto.UserID,
				Date:        dto.Date,
				Hours:       roundHours(worked - StandardShiftHours),
				Description: OvertimeManualDescription,
			}); err != nil {
				return nil, err
			}
			s.logger.Info("admin attendance with overtime recorded", "user_id", dto.UserID, "date", dto.Date)
			return rec, nil
		}
	}

	if err := s.repo.CreateRecord(rec); err != nil {
		return nil, err
	}

	s.logger.Info("admin attendance recorded", "user_id", dto.UserID, "date", dto.Date, "status", dto.Status)
	return rec, nil
}

// Confirm sets the confirmed flag and approver unconditionally: a record may
// be re-confirmed or un-confirmed any number of times.
func (s *Service) Confirm(recordID int64, confirmed bool, approverID int64) error {
	if err := s.repo.ConfirmRecord(recordID, confirmed, approverID); err != nil {
		return err
	}
	s.logger.Info("attendance confirmation set", "record_id", recordID, "confirmed", confirmed, "approver_id", approverID)
	return nil
}

func (s *Service) ListForUser(userID int64) ([]*Record, error) {
	return s.repo.ListRecordsForUser(userID)
}

func (s *Service) ListAll() ([]*Record, error) {
	return s.repo.ListAllRecords()
}

func (s *Service) OvertimeForUser(userID int64) ([]*Overtime, error) {
	return s.repo.ListOvertimeForUser(userID)
}

func (s *Service) OvertimeAll() ([]*Overtime, error) {
	return s.repo.ListAllOvertime()
}

// workedHours computes the time-of-day difference in hours. Shifts crossing
// midnight would come out negative, which we reject rather than post.
func workedHours(entry, exit string) (float64, error) {
	entryT, err := time.Parse(timeLayout, entry)
	if err != nil {
		return 0, ValidationError{Msg: "entry_time must be HH:MM:SS"}
	}
	exitT, err := time.Parse(timeLayout, exit)
	if err != nil {
		return 0, ValidationError{Msg: "exit_time must be HH:MM:SS"}
	}

	hours := exitT.Sub(entryT).Hours()
	if hours < 0 {
		return 0, ValidationError{Msg: "exit time is before entry time"}
	}
	return hours, nil
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
