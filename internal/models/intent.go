// internal/models/intent.go
package models

// IntentID is the canonical token of a recognised request category.
type IntentID string

const (
	IntentLeaveBalance      IntentID = "leave_balance"
	IntentMyLeaveStatus     IntentID = "my_leave_status"
	IntentTimesheetThisWeek IntentID = "timesheet_this_week"
	IntentMyInfoSummary     IntentID = "my_info_summary"
	IntentMyIdentity        IntentID = "my_identity"
	IntentPasswordHelp      IntentID = "password_help"
	IntentPerformanceHelp   IntentID = "performance_help"
	IntentDashboardHelp     IntentID = "dashboard_help"
	IntentDirectoryHelp     IntentID = "directory_help"
	IntentClaimHelp         IntentID = "claim_help"
	IntentBuzzHelp          IntentID = "buzz_help"
	IntentTimeHelp          IntentID = "time_help"
	IntentAttendanceHelp    IntentID = "attendance_help"
	IntentLeaveHelp         IntentID = "leave_help"
	IntentApplyLeave        IntentID = "apply_leave"
)

// ConversationRequest is a single employee message together with the already-resolved caller identity.
// CallerID and RoleID are nil when the session could not supply them.
type ConversationRequest struct {
	Message  string  `json:"message"`
	CallerID *int64  `json:"employeeNumber,omitempty"`
	RoleID   *int64  `json:"userRoleId,omitempty"`
	Username *string `json:"username,omitempty"`
}

// ReplyPayload is the only externally observable output of the assistant.
type ReplyPayload struct {
	Reply  string    `json:"reply"`
	Intent *IntentID `json:"intent"`
}

// IntentPtr is a small helper for building ReplyPayload values.
func IntentPtr(id IntentID) *IntentID {
	return &id
}
