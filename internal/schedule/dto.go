package schedule

import "time"

type CreateScheduleDTO struct {
	Date  string `json:"date"`
	Shift string `json:"shift"`
}

type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

func (d CreateScheduleDTO) Validate() error {
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return ValidationError{Msg: "date must be YYYY-MM-DD"}
	}
	if d.Shift == "" {
		return ValidationError{Msg: "shift is required"}
	}
	return nil
}
