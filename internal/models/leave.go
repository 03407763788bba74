// internal/models/leave.go
package models

import "time"

type LeaveType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LeaveStatus mirrors the status codes stored on individual leave days.
type LeaveStatus int

const (
	LeaveStatusRejected        LeaveStatus = -1
	LeaveStatusCancelled       LeaveStatus = 0
	LeaveStatusPendingApproval LeaveStatus = 1
	LeaveStatusScheduled       LeaveStatus = 2
	LeaveStatusTaken           LeaveStatus = 3
	LeaveStatusWeekend         LeaveStatus = 4
	LeaveStatusHoliday         LeaveStatus = 5
)

var leaveStatusNames = map[LeaveStatus]string{
	LeaveStatusRejected:        "Rejected",
	LeaveStatusCancelled:       "Cancelled",
	LeaveStatusPendingApproval: "Pending Approval",
	LeaveStatusScheduled:       "Scheduled",
	LeaveStatusTaken:           "Taken",
	LeaveStatusWeekend:         "Weekend",
	LeaveStatusHoliday:         "Holiday",
}

func (s LeaveStatus) String() string {
	if name, ok := leaveStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// Leave is one day entry of a leave request.
type Leave struct {
	ID     int64       `json:"id"`
	Date   time.Time   `json:"date"`
	Status LeaveStatus `json:"status"`
}

type LeaveRequest struct {
	ID          int64      `json:"id"`
	EmpNumber   int64      `json:"empNumber"`
	LeaveType   *LeaveType `json:"leaveType,omitempty"`
	DateApplied time.Time  `json:"dateApplied"`
	Leaves      []Leave    `json:"leaves"`
}
