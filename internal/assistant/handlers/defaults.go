package handlers

import (
	"time"

	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
)

// Dependencies are the collaborators the personalised handlers read from.
type Dependencies struct {
	Leave      LeaveService
	Timesheets TimesheetService
	Employees  EmployeeService
	// WeekStart is used when Timesheets cannot resolve the week boundary.
	WeekStart time.Weekday
}

// Defaults returns the handler for every intent that has one. Help topics are
// absent and answered from the FAQ table by the router.
func Defaults(deps Dependencies, log logger.Logger) map[models.IntentID]Handler {
	return map[models.IntentID]Handler{
		models.IntentLeaveBalance:      NewLeaveBalance(deps.Leave, log),
		models.IntentMyLeaveStatus:     NewLeaveStatus(deps.Leave, log),
		models.IntentTimesheetThisWeek: NewTimesheetWeek(deps.Timesheets, deps.WeekStart, log),
		models.IntentMyInfoSummary:     NewProfileField(deps.Employees, log),
		models.IntentMyIdentity:        NewIdentity(deps.Employees, log),
		models.IntentPasswordHelp:      PasswordHelp(),
	}
}
