package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"hr-assistant/internal/common/config"
	"hr-assistant/internal/models"
)

// WeekStartConfigKey is the ohrm_config key holding the first day of a
// timesheet week, as a day name or a number (0 or 7 Sunday, 1 Monday ...).
const WeekStartConfigKey = "timesheet_week_start"

type TimesheetStore struct {
	db               *sql.DB
	defaultWeekStart time.Weekday
}

func NewTimesheetStore(db *sql.DB, defaultWeekStart time.Weekday) *TimesheetStore {
	return &TimesheetStore{db: db, defaultWeekStart: defaultWeekStart}
}

// WeekBounds resolves the timesheet week containing date using the
// organisation's configured week start, or the store default when unset.
func (s *TimesheetStore) WeekBounds(ctx context.Context, date time.Time) (time.Time, time.Time, error) {
	start, err := s.weekStart(ctx)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	first, last := models.WeekBounds(date, start)
	return first, last, nil
}

func (s *TimesheetStore) weekStart(ctx context.Context) (time.Weekday, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM ohrm_config WHERE key = $1`, WeekStartConfigKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaultWeekStart, nil
	}
	if err != nil {
		return 0, queryError(ctx, "week_start", err)
	}
	return parseWeekStart(value, s.defaultWeekStart), nil
}

func parseWeekStart(value string, fallback time.Weekday) time.Weekday {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 7 {
			return fallback
		}
		return time.Weekday(n % 7)
	}
	return config.ParseWeekday(value, fallback)
}

// TimesheetByRange returns the employee's timesheet spanning exactly
// [start, end], or nil when there is none.
func (s *TimesheetStore) TimesheetByRange(ctx context.Context, empNumber int64, start, end time.Time) (*models.Timesheet, error) {
	var ts models.Timesheet
	err := s.db.QueryRowContext(ctx, `
		SELECT timesheet_id, emp_number, start_date, end_date
		FROM ohrm_timesheet
		WHERE emp_number = $1
		  AND start_date = $2
		  AND end_date = $3
		ORDER BY timesheet_id
		LIMIT 1`,
		empNumber, dateOnly(start), dateOnly(end),
	).Scan(&ts.ID, &ts.EmpNumber, &ts.StartDate, &ts.EndDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryError(ctx, "timesheet_by_range", err)
	}
	return &ts, nil
}

func (s *TimesheetStore) TimesheetItems(ctx context.Context, timesheetID int64) ([]models.TimesheetItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT timesheet_item_id, timesheet_id, date, duration
		FROM ohrm_timesheet_item
		WHERE timesheet_id = $1
		ORDER BY date, timesheet_item_id`,
		timesheetID,
	)
	if err != nil {
		return nil, queryError(ctx, "timesheet_items", err)
	}
	defer rows.Close()

	var items []models.TimesheetItem
	for rows.Next() {
		var (
			item     models.TimesheetItem
			duration sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.TimesheetID, &item.Date, &duration); err != nil {
			return nil, queryError(ctx, "timesheet_items", err)
		}
		if duration.Valid {
			d := duration.Int64
			item.Duration = &d
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "timesheet_items", err)
	}
	return items, nil
}
