package composer

import "hr-assistant/internal/models"

// Template keys that are not FAQ answers.
const (
	KeyOutOfScope = "out_of_scope"
	KeyFallback   = "fallback"

	KeyPasswordHelp = "password_help"

	KeyLeaveBalance      = "leave.balance"
	KeyLeaveStatusNone   = "leave.status.none"
	KeyLeaveStatusLatest = "leave.status.latest"

	KeyTimesheetWeek     = "timesheet.week"
	KeyTimesheetNotFound = "timesheet.not_found"

	KeyRecordNotFound   = "employee.not_found"
	KeyFieldValue       = "field.value"
	KeyFieldNotDefined  = "field.not_defined"
	KeyProfileAskField  = "profile.ask_field"
	KeyIdentityAskField = "identity.ask_field"
)

// FAQKey is the template key of the static answer for an intent.
func FAQKey(intent models.IntentID) string {
	return "faq." + string(intent)
}

var faqAnswers = map[models.IntentID]string{
	models.IntentApplyLeave:        "to apply for leave: 1) Go to Leave > Apply, 2) choose the leave type and dates, 3) add a note (optional), 4) Submit. Track status in Leave > My Leave.",
	models.IntentLeaveBalance:      "see entitlements and usage at Leave > My Leave Entitlements and Usage.",
	models.IntentMyLeaveStatus:     "review your request statuses in Leave > My Leave (filter Approved/Pending/Rejected).",
	models.IntentTimesheetThisWeek: "open Time > My Timesheets to add or edit entries, then Submit for approval.",
	models.IntentMyInfoSummary:     "find your personal details in My Info; ask for a specific item like job title or birthday.",
	models.IntentMyIdentity:        "your full name is in My Info > Personal Details; username is in the top-right profile menu.",
	models.IntentPerformanceHelp:   "check Performance > My Reviews and My Trackers to view goals and reviews.",
	models.IntentDashboardHelp:     "the Dashboard shows Time at Work, My Actions, and Quick Launch tiles.",
	models.IntentDirectoryHelp:     "use Directory to find employees by name, job title, or location.",
	models.IntentClaimHelp:         "to submit a claim: Claim > My Claims > Add, fill details and attachments, then Submit. Track in the same page.",
	models.IntentBuzzHelp:          "to post in Buzz: open Buzz, write your message (add images if needed), then Post.",
	models.IntentTimeHelp:          "fill your hours in Time > My Timesheets; save daily, then Submit the week.",
	models.IntentAttendanceHelp:    "manage attendance in Time > Attendance. Use Punch In/Out to record your time.",
	models.IntentLeaveHelp:         "apply via Leave > Apply; track in Leave > My Leave.",
	models.IntentPasswordHelp:      "I can’t help with passwords as they’re sensitive. If you’ve forgotten yours, click ‘Forgot your password?’ on the login page to reset it. If you still can’t sign in, contact your administrator or HR to assist with a reset.",
}

var replyTemplates = map[string]string{
	KeyOutOfScope: `I can help with Leave, Time, My Info, Performance, Dashboard, Directory, Claim, and Buzz. Try: "Show my leave balance", "This week timesheet", or ask for a specific detail like "my job title".`,
	KeyFallback:   "please check the relevant module for steps.",

	KeyPasswordHelp: "I can’t provide or view passwords. If you forgot yours, use ‘Forgot your password?’ on the login screen to reset it. For further help, contact your administrator or HR.",

	KeyLeaveBalance:      "your leave balances are: {{*balances}}.",
	KeyLeaveStatusNone:   "you have no recent leave requests.",
	KeyLeaveStatusLatest: "your most recent leave request is {{*status}} (type {{*type}}, applied on {{*applied}}).",

	KeyTimesheetWeek:     "you’ve logged {{*hours}} hours from {{*start}} to {{*end}}.",
	KeyTimesheetNotFound: "no timesheet could be found for {{*start}} to {{*end}}.",

	KeyRecordNotFound:   "your employee record was not found.",
	KeyFieldValue:       "your {{label}} is {{*value}}.",
	KeyFieldNotDefined:  "your {{label}} is currently not defined. {{guidance}}",
	KeyProfileAskField:  "please ask for a specific detail like job title, department, manager, employee ID, or birthday.",
	KeyIdentityAskField: "please ask for your username, first name, last name, or full name.",
}

func builtinTemplates() map[string]string {
	out := make(map[string]string, len(faqAnswers)+len(replyTemplates))
	for id, text := range faqAnswers {
		out[FAQKey(id)] = text
	}
	for key, text := range replyTemplates {
		out[key] = text
	}
	return out
}
