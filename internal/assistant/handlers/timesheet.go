package handlers

import (
	"context"
	"fmt"
	"time"

	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
)

// TimesheetWeek totals the hours the caller logged in the current week.
type TimesheetWeek struct {
	timesheets TimesheetService
	weekStart  time.Weekday
	faults     faultReporter
}

// NewTimesheetWeek builds the handler; weekStart is only used when the
// collaborator cannot resolve the week boundary itself.
func NewTimesheetWeek(timesheets TimesheetService, weekStart time.Weekday, log logger.Logger) *TimesheetWeek {
	return &TimesheetWeek{
		timesheets: timesheets,
		weekStart:  weekStart,
		faults:     faultReporter{log: log.WithFields(map[string]interface{}{"handler": "timesheet_this_week"})},
	}
}

func (h *TimesheetWeek) Handle(ctx context.Context, req Request) Draft {
	start, end, err := h.timesheets.WeekBounds(ctx, req.Now)
	if err != nil {
		h.faults.report(CollaboratorTimesheet, "WeekBounds", err)
		start, end = models.WeekBounds(req.Now, h.weekStart)
	}

	notFound := draft(composer.KeyTimesheetNotFound,
		"start", start.Format(dateLayout),
		"end", end.Format(dateLayout),
	)
	if req.CallerID == nil {
		return notFound
	}

	ts, err := h.timesheets.TimesheetByRange(ctx, *req.CallerID, start, end)
	if err != nil {
		h.faults.report(CollaboratorTimesheet, "TimesheetByRange", err)
		return notFound
	}

	var seconds int64
	if ts != nil {
		items, err := h.timesheets.TimesheetItems(ctx, ts.ID)
		if err != nil {
			h.faults.report(CollaboratorTimesheet, "TimesheetItems", err)
			return notFound
		}
		seconds = TotalSeconds(items)
	}

	return draft(composer.KeyTimesheetWeek,
		"hours", FormatHours(seconds),
		"start", start.Format(dateLayout),
		"end", end.Format(dateLayout),
	)
}

// TotalSeconds sums item durations, skipping unset ones.
func TotalSeconds(items []models.TimesheetItem) int64 {
	var total int64
	for _, item := range items {
		if item.Duration == nil {
			continue
		}
		total += *item.Duration
	}
	return total
}

// FormatHours renders seconds as hours with two decimals: 5400 -> "1.50".
func FormatHours(seconds int64) string {
	return fmt.Sprintf("%.2f", float64(seconds)/3600.0)
}
