package handlers

import (
	"context"
	"time"

	"hr-assistant/internal/models"
)

type fakeLeave struct {
	types       []models.LeaveType
	typesErr    error
	balances    map[int64]float64
	balanceErr  error
	requests    []models.LeaveRequest
	requestsErr error

	calls          int
	gotFrom, gotTo time.Time
}

func (f *fakeLeave) LeaveTypes(context.Context) ([]models.LeaveType, error) {
	f.calls++
	return f.types, f.typesErr
}

func (f *fakeLeave) Balance(_ context.Context, _, leaveTypeID int64, _ time.Time) (float64, error) {
	f.calls++
	if f.balanceErr != nil {
		return 0, f.balanceErr
	}
	return f.balances[leaveTypeID], nil
}

func (f *fakeLeave) LeaveRequests(_ context.Context, _ int64, from, to time.Time) ([]models.LeaveRequest, error) {
	f.calls++
	f.gotFrom, f.gotTo = from, to
	return f.requests, f.requestsErr
}

type fakeTimesheets struct {
	start, end time.Time
	boundsErr  error
	timesheet  *models.Timesheet
	lookupErr  error
	items      []models.TimesheetItem
	itemsErr   error

	calls int
}

func (f *fakeTimesheets) WeekBounds(context.Context, time.Time) (time.Time, time.Time, error) {
	f.calls++
	return f.start, f.end, f.boundsErr
}

func (f *fakeTimesheets) TimesheetByRange(context.Context, int64, time.Time, time.Time) (*models.Timesheet, error) {
	f.calls++
	return f.timesheet, f.lookupErr
}

func (f *fakeTimesheets) TimesheetItems(context.Context, int64) ([]models.TimesheetItem, error) {
	f.calls++
	return f.items, f.itemsErr
}

type fakeEmployees struct {
	employee *models.Employee
	err      error
	calls    int
}

func (f *fakeEmployees) EmployeeByNumber(context.Context, int64) (*models.Employee, error) {
	f.calls++
	return f.employee, f.err
}

func int64Ptr(v int64) *int64 { return &v }

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
