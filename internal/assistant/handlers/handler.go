// Package handlers holds the per-intent responders. A handler reads from its
// collaborators and returns a Draft; greeting and markup are applied later by
// the composer, and role checks happen before a handler is ever called.
package handlers

import (
	"context"
	"time"

	"hr-assistant/internal/assistant/composer"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/common/metrics"
	"hr-assistant/internal/models"
)

// Collaborator names used in logs and metrics.
const (
	CollaboratorLeave     = "leave"
	CollaboratorTimesheet = "timesheet"
	CollaboratorEmployee  = "employee"
	CollaboratorUser      = "user"
)

// Request is the per-message input every handler sees.
type Request struct {
	// Message is the raw text; Folded is the normalised form used for probing.
	Message  string
	Folded   string
	CallerID *int64
	RoleID   *int64
	// Username is the resolved login name, nil when it could not be resolved.
	Username *string
	Now      time.Time
}

// Draft is an unrendered reply.
type Draft struct {
	Template string
	Bindings composer.Bindings
}

func draft(template string, kv ...string) Draft {
	b := make(composer.Bindings, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		b[kv[i]] = kv[i+1]
	}
	return Draft{Template: template, Bindings: b}
}

type Handler interface {
	Handle(ctx context.Context, req Request) Draft
}

type HandlerFunc func(ctx context.Context, req Request) Draft

func (f HandlerFunc) Handle(ctx context.Context, req Request) Draft {
	return f(ctx, req)
}

// ==========================
// Collaborators
// ==========================

type LeaveService interface {
	LeaveTypes(ctx context.Context) ([]models.LeaveType, error)
	Balance(ctx context.Context, empNumber, leaveTypeID int64, asOf time.Time) (float64, error)
	LeaveRequests(ctx context.Context, empNumber int64, from, to time.Time) ([]models.LeaveRequest, error)
}

type TimesheetService interface {
	WeekBounds(ctx context.Context, date time.Time) (start, end time.Time, err error)
	// TimesheetByRange returns nil without error when no timesheet exists.
	TimesheetByRange(ctx context.Context, empNumber int64, start, end time.Time) (*models.Timesheet, error)
	TimesheetItems(ctx context.Context, timesheetID int64) ([]models.TimesheetItem, error)
}

type EmployeeService interface {
	// EmployeeByNumber returns nil without error when no record exists.
	EmployeeByNumber(ctx context.Context, empNumber int64) (*models.Employee, error)
}

type UserDirectory interface {
	Username(ctx context.Context, empNumber int64) (string, error)
}

// ==========================
// Fault boundary
// ==========================

// faultReporter logs a failed collaborator read and counts it. Callers then
// reply as if the data were absent.
type faultReporter struct {
	log logger.Logger
}

func (f faultReporter) report(collaborator, operation string, err error) {
	stdErr := apperrors.NewCollaboratorFaultError(collaborator, operation, err)
	f.log.Warn("collaborator lookup failed", map[string]interface{}{
		"collaborator": collaborator,
		"operation":    operation,
		"errorCode":    string(stdErr.Code),
		"error":        err.Error(),
	})
	metrics.CollaboratorFaults.WithLabelValues(collaborator).Inc()
}

const dateLayout = "2006-01-02"
