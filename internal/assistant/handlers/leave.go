package handlers

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
)

const noBalances = "no balances found"

// LeaveBalance lists the caller's balance for every leave type as of now.
type LeaveBalance struct {
	leave  LeaveService
	faults faultReporter
}

func NewLeaveBalance(leave LeaveService, log logger.Logger) *LeaveBalance {
	return &LeaveBalance{
		leave:  leave,
		faults: faultReporter{log: log.WithFields(map[string]interface{}{"handler": "leave_balance"})},
	}
}

func (h *LeaveBalance) Handle(ctx context.Context, req Request) Draft {
	if req.CallerID == nil {
		return draft(composer.KeyLeaveBalance, "balances", noBalances)
	}

	types, err := h.leave.LeaveTypes(ctx)
	if err != nil {
		h.faults.report(CollaboratorLeave, "LeaveTypes", err)
		return draft(composer.KeyLeaveBalance, "balances", noBalances)
	}

	seen := make(map[int64]struct{}, len(types))
	parts := make([]string, 0, len(types))
	for _, lt := range types {
		if _, dup := seen[lt.ID]; dup {
			continue
		}
		seen[lt.ID] = struct{}{}

		bal, err := h.leave.Balance(ctx, *req.CallerID, lt.ID, req.Now)
		if err != nil {
			h.faults.report(CollaboratorLeave, "Balance", err)
			return draft(composer.KeyLeaveBalance, "balances", noBalances)
		}
		parts = append(parts, lt.Name+" "+FormatBalance(bal))
	}

	list := noBalances
	if len(parts) > 0 {
		list = strings.Join(parts, ", ")
	}
	return draft(composer.KeyLeaveBalance, "balances", list)
}

// FormatBalance renders b with at most two decimals and no trailing zeros
// or trailing point: 5 -> "5", 2.50 -> "2.5".
func FormatBalance(b float64) string {
	s := strconv.FormatFloat(b, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// LeaveStatus reports the status of the caller's most recently applied
// leave request.
type LeaveStatus struct {
	leave  LeaveService
	faults faultReporter
}

func NewLeaveStatus(leave LeaveService, log logger.Logger) *LeaveStatus {
	return &LeaveStatus{
		leave:  leave,
		faults: faultReporter{log: log.WithFields(map[string]interface{}{"handler": "my_leave_status"})},
	}
}

func (h *LeaveStatus) Handle(ctx context.Context, req Request) Draft {
	if req.CallerID == nil {
		return draft(composer.KeyLeaveStatusNone)
	}

	from, to := StatusWindow(req.Now)
	requests, err := h.leave.LeaveRequests(ctx, *req.CallerID, from, to)
	if err != nil {
		h.faults.report(CollaboratorLeave, "LeaveRequests", err)
		return draft(composer.KeyLeaveStatusNone)
	}
	if len(requests) == 0 {
		return draft(composer.KeyLeaveStatusNone)
	}

	sorted := make([]models.LeaveRequest, len(requests))
	copy(sorted, requests)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateApplied.After(sorted[j].DateApplied)
	})
	latest := sorted[0]

	status := "Unknown"
	var latestDay time.Time
	for i, day := range latest.Leaves {
		if i == 0 || day.Date.After(latestDay) {
			latestDay = day.Date
			status = day.Status.String()
		}
	}

	typeName := "N/A"
	if latest.LeaveType != nil && latest.LeaveType.Name != "" {
		typeName = latest.LeaveType.Name
	}

	return draft(composer.KeyLeaveStatusLatest,
		"status", status,
		"type", typeName,
		"applied", latest.DateApplied.Format(dateLayout),
	)
}

// StatusWindow spans from the start of the first day of the month two months
// before now to the last second of the current month.
func StatusWindow(now time.Time) (from, to time.Time) {
	loc := now.Location()
	from = time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, loc)
	to = time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, loc)
	return from, to
}
