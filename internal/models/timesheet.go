// internal/models/timesheet.go
package models

import "time"

type Timesheet struct {
	ID        int64     `json:"id"`
	EmpNumber int64     `json:"empNumber"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// TimesheetItem is a single logged entry; Duration is in seconds and nil when unset.
type TimesheetItem struct {
	ID          int64     `json:"id"`
	TimesheetID int64     `json:"timesheetId"`
	Date        time.Time `json:"date"`
	Duration    *int64    `json:"duration,omitempty"`
}

// WeekBounds returns the first and last calendar day of the week containing date,
// where weeks begin on start. Both bounds are truncated to midnight in date's location.
func WeekBounds(date time.Time, start time.Weekday) (time.Time, time.Time) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	offset := (int(day.Weekday()) - int(start) + 7) % 7
	first := day.AddDate(0, 0, -offset)
	return first, first.AddDate(0, 0, 6)
}
