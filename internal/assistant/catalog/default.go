package catalog

import (
	"hr-assistant/internal/assistant/normalize"
	"hr-assistant/internal/models"
	"hr-assistant/pkg/registry"
)

// builtin is the compiled-in intent table. Order matters: leave_help lists
// "apply for leave" ahead of apply_leave, so that phrase resolves to leave_help.
var builtin = []registry.IntentEntry{
	{ID: string(models.IntentLeaveBalance), Phrases: []string{"leave balance", "how many leave days", "leave days left", "my leave balance"}},
	{ID: string(models.IntentMyLeaveStatus), Phrases: []string{"status of my leave", "my leave requests status"}},
	{ID: string(models.IntentTimesheetThisWeek), Phrases: []string{"timesheet for this week", "hours this week", "show my timesheet"}},
	{ID: string(models.IntentMyInfoSummary), Phrases: []string{"my job title", "my department", "who is my manager", "my employee id"}},
	{ID: string(models.IntentMyIdentity), Phrases: []string{"my username", "what's my username", "who am i", "my first name", "my last name", "my full name"}},
	{ID: string(models.IntentPerformanceHelp), Phrases: []string{"performance help", "how performance works", "how to view performance review"}},
	{ID: string(models.IntentDashboardHelp), Phrases: []string{"dashboard help", "how to use dashboard", "widgets on dashboard"}},
	{ID: string(models.IntentDirectoryHelp), Phrases: []string{"directory help", "search directory", "find an employee"}},
	{ID: string(models.IntentClaimHelp), Phrases: []string{"claim help", "how to submit claim", "how to view my claims"}},
	{ID: string(models.IntentBuzzHelp), Phrases: []string{"buzz help", "post on buzz", "how to use buzz"}},
	{ID: string(models.IntentTimeHelp), Phrases: []string{"time help", "timesheet help", "how to fill timesheet"}},
	{ID: string(models.IntentLeaveHelp), Phrases: []string{"leave help", "how to request leave", "apply for leave"}},
	{ID: string(models.IntentApplyLeave), Phrases: []string{"apply for leave", "how to apply leave"}},
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(builtin, normalize.Default())
}
