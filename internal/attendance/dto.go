package attendance

import "time"

// ManualAttendanceDTO is the employee self-service shape: the caller picks
// the date and state, times are optional.
type ManualAttendanceDTO struct {
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	EntryTime *string `json:"entry_time"`
	ExitTime  *string `json:"exit_time"`
}

// AdminAttendanceDTO lets an admin record attendance for any employee.
type AdminAttendanceDTO struct {
	UserID    int64   `json:"user_id"`
	Date      string  `json:"date"`
	Status    string  `json:"status"`
	EntryTime *string `json:"entry_time"`
	ExitTime  *string `json:"exit_time"`
}

// ConfirmDTO carries the confirmation decision for an attendance record.
type ConfirmDTO struct {
	Confirmed bool `json:"confirmed"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func validateTimes(entry, exit *string) error {
	if entry != nil {
		if _, err := time.Parse(timeLayout, *entry); err != nil {
			return ValidationError{Msg: "entry_time must be HH:MM:SS"}
		}
	}
	if exit != nil {
		if _, err := time.Parse(timeLayout, *exit); err != nil {
			return ValidationError{Msg: "exit_time must be HH:MM:SS"}
		}
	}
	return nil
}

func (d ManualAttendanceDTO) Validate() error {
	if _, err := time.Parse(dateLayout, d.Date); err != nil {
		return ValidationError{Msg: "date must be YYYY-MM-DD"}
	}
	if !validStatus(d.Status) {
		return ValidationError{Msg: "status must be present, absent or late"}
	}
	return validateTimes(d.EntryTime, d.ExitTime)
}

func (d AdminAttendanceDTO) Validate() error {
	if d.UserID <= 0 {
		return ValidationError{Msg: "user_id is required"}
	}
	if _, err := time.Parse(dateLayout, d.Date); err != nil {
		return ValidationError{Msg: "date must be YYYY-MM-DD"}
	}
	if !validStatus(d.Status) {
		return ValidationError{Msg: "status must be present, absent or late"}
	}
	return validateTimes(d.EntryTime, d.ExitTime)
}
