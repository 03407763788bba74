// Package postgres implements the assistant's read-only collaborators over
// an OrangeHRM-shaped PostgreSQL schema.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "hr-assistant/internal/common/errors"
)

// Stores groups every collaborator backed by one connection pool.
type Stores struct {
	Leave      *LeaveStore
	Timesheets *TimesheetStore
	Employees  *EmployeeStore
	Users      *UserStore
}

func New(db *sql.DB, defaultWeekStart time.Weekday) *Stores {
	return &Stores{
		Leave:      NewLeaveStore(db),
		Timesheets: NewTimesheetStore(db, defaultWeekStart),
		Employees:  NewEmployeeStore(db),
		Users:      NewUserStore(db),
	}
}

func queryError(ctx context.Context, queryName string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewQueryTimeoutError(queryName)
	}
	return apperrors.NewQueryExecutionFailedError(queryName, err)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
