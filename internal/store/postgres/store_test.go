package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/assistant/handlers"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/models"
)

var (
	_ handlers.LeaveService     = (*LeaveStore)(nil)
	_ handlers.TimesheetService = (*TimesheetStore)(nil)
	_ handlers.EmployeeService  = (*EmployeeStore)(nil)
	_ handlers.UserDirectory    = (*UserStore)(nil)
)

// ==========================
// Test Helper Functions
// ==========================

func createTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

func requireCode(t *testing.T, err error, code apperrors.ErrorCode) {
	t.Helper()
	var std *apperrors.StandardError
	require.True(t, errors.As(err, &std), "expected StandardError, got %v", err)
	assert.Equal(t, code, std.Code)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ==========================
// Leave
// ==========================

func TestLeaveStore_LeaveTypes(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_leave_type").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "Annual").
			AddRow(int64(2), "Sick"))

	types, err := NewLeaveStore(db).LeaveTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.LeaveType{{ID: 1, Name: "Annual"}, {ID: 2, Name: "Sick"}}, types)
}

func TestLeaveStore_LeaveTypesError(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_leave_type").WillReturnError(errors.New("relation does not exist"))

	_, err := NewLeaveStore(db).LeaveTypes(context.Background())
	requireCode(t, err, apperrors.ErrCodeQueryExecutionFailed)
}

func TestLeaveStore_Balance(t *testing.T) {
	db, mock := createTestDB(t)
	asOf := time.Date(2026, time.October, 15, 16, 45, 0, 0, time.UTC)

	mock.ExpectQuery("FROM ohrm_leave_entitlement").
		WithArgs(int64(7), int64(2), date(2026, time.October, 15)).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(6.5))

	bal, err := NewLeaveStore(db).Balance(context.Background(), 7, 2, asOf)
	require.NoError(t, err)
	assert.Equal(t, 6.5, bal)
}

func TestLeaveStore_LeaveRequests(t *testing.T) {
	db, mock := createTestDB(t)
	from := date(2026, time.August, 1)
	to := time.Date(2026, time.October, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery("FROM ohrm_leave_request r").
		WithArgs(int64(7), from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "emp_number", "date_applied", "type_id", "type_name"}).
			AddRow(int64(11), int64(7), date(2026, time.October, 2), int64(2), "Sick").
			AddRow(int64(10), int64(7), date(2026, time.September, 1), nil, nil))

	mock.ExpectQuery("FROM ohrm_leave\\s+WHERE leave_request_id = ANY").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "leave_request_id", "date", "status"}).
			AddRow(int64(100), int64(10), date(2026, time.September, 10), int64(3)).
			AddRow(int64(101), int64(11), date(2026, time.October, 21), int64(2)).
			AddRow(int64(102), int64(11), date(2026, time.October, 22), int64(1)))

	requests, err := NewLeaveStore(db).LeaveRequests(context.Background(), 7, from, to)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	assert.Equal(t, int64(11), requests[0].ID)
	require.NotNil(t, requests[0].LeaveType)
	assert.Equal(t, "Sick", requests[0].LeaveType.Name)
	require.Len(t, requests[0].Leaves, 2)
	assert.Equal(t, models.LeaveStatusPendingApproval, requests[0].Leaves[1].Status)

	assert.Nil(t, requests[1].LeaveType)
	require.Len(t, requests[1].Leaves, 1)
	assert.Equal(t, models.LeaveStatusTaken, requests[1].Leaves[0].Status)
}

func TestLeaveStore_LeaveRequestsEmptySkipsDayQuery(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_leave_request r").
		WillReturnRows(sqlmock.NewRows([]string{"id", "emp_number", "date_applied", "type_id", "type_name"}))

	requests, err := NewLeaveStore(db).LeaveRequests(context.Background(), 7, date(2026, 8, 1), date(2026, 10, 31))
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestLeaveStore_Timeout(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_leave_type").WillReturnError(context.DeadlineExceeded)

	_, err := NewLeaveStore(db).LeaveTypes(context.Background())
	requireCode(t, err, apperrors.ErrCodeQueryTimeout)
}

// ==========================
// Timesheet
// ==========================

func TestTimesheetStore_WeekBounds(t *testing.T) {
	tests := []struct {
		name      string
		mock      func(mock sqlmock.Sqlmock)
		wantStart time.Time
		wantErr   bool
	}{
		{
			name: "configured sunday by name",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM ohrm_config").WithArgs(WeekStartConfigKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("Sunday"))
			},
			wantStart: date(2026, time.October, 11),
		},
		{
			name: "configured by number",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM ohrm_config").WithArgs(WeekStartConfigKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("3"))
			},
			wantStart: date(2026, time.October, 14),
		},
		{
			name: "unset uses default",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM ohrm_config").WithArgs(WeekStartConfigKey).
					WillReturnRows(sqlmock.NewRows([]string{"value"}))
			},
			wantStart: date(2026, time.October, 12),
		},
		{
			name: "query error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM ohrm_config").WillReturnError(errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := createTestDB(t)
			tt.mock(mock)

			start, end, err := NewTimesheetStore(db, time.Monday).WeekBounds(context.Background(), date(2026, time.October, 15))
			if tt.wantErr {
				requireCode(t, err, apperrors.ErrCodeQueryExecutionFailed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantStart.AddDate(0, 0, 6), end)
		})
	}
}

func TestParseWeekStart(t *testing.T) {
	assert.Equal(t, time.Sunday, parseWeekStart("0", time.Monday))
	assert.Equal(t, time.Sunday, parseWeekStart("7", time.Monday))
	assert.Equal(t, time.Saturday, parseWeekStart(" 6 ", time.Monday))
	assert.Equal(t, time.Monday, parseWeekStart("9", time.Monday))
	assert.Equal(t, time.Friday, parseWeekStart("friday", time.Monday))
	assert.Equal(t, time.Monday, parseWeekStart("", time.Monday))
}

func TestTimesheetStore_TimesheetByRange(t *testing.T) {
	db, mock := createTestDB(t)
	start, end := date(2026, time.October, 12), date(2026, time.October, 18)

	mock.ExpectQuery("FROM ohrm_timesheet").
		WithArgs(int64(7), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id", "emp_number", "start_date", "end_date"}).
			AddRow(int64(4), int64(7), start, end))
	mock.ExpectQuery("FROM ohrm_timesheet").
		WithArgs(int64(8), start, end).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_id", "emp_number", "start_date", "end_date"}))

	store := NewTimesheetStore(db, time.Monday)

	ts, err := store.TimesheetByRange(context.Background(), 7, start, end)
	require.NoError(t, err)
	require.NotNil(t, ts)
	assert.Equal(t, int64(4), ts.ID)

	ts, err = store.TimesheetByRange(context.Background(), 8, start, end)
	require.NoError(t, err)
	assert.Nil(t, ts)
}

func TestTimesheetStore_TimesheetItems(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_timesheet_item").
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"timesheet_item_id", "timesheet_id", "date", "duration"}).
			AddRow(int64(1), int64(4), date(2026, 10, 12), int64(3600)).
			AddRow(int64(2), int64(4), date(2026, 10, 13), nil).
			AddRow(int64(3), int64(4), date(2026, 10, 14), int64(1800)))

	items, err := NewTimesheetStore(db, time.Monday).TimesheetItems(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.NotNil(t, items[0].Duration)
	assert.Equal(t, int64(3600), *items[0].Duration)
	assert.Nil(t, items[1].Duration)
}

// ==========================
// Employee & user
// ==========================

func TestEmployeeStore_EmployeeByNumber(t *testing.T) {
	db, mock := createTestDB(t)
	birthday := date(1990, time.April, 3)

	mock.ExpectQuery("FROM hs_hr_employee e").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{
			"emp_number", "employee_id", "first", "middle", "last", "birthday", "job_title", "subunit",
		}).AddRow(int64(7), "E-0007", "Jane", "", "Doe", birthday, "QA Engineer", "Engineering"))
	mock.ExpectQuery("FROM hs_hr_emp_reportto r").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"emp_number", "first", "last"}).
			AddRow(int64(3), "Sam", "Lee"))

	emp, err := NewEmployeeStore(db).EmployeeByNumber(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, emp)

	assert.Equal(t, "E-0007", emp.EmployeeID)
	assert.Equal(t, "Engineering", emp.SubDivision)
	require.NotNil(t, emp.Birthday)
	assert.Equal(t, birthday, *emp.Birthday)
	assert.Equal(t, []models.Supervisor{{EmpNumber: 3, FirstName: "Sam", LastName: "Lee"}}, emp.Supervisors)
}

func TestEmployeeStore_NotFoundAndNullBirthday(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM hs_hr_employee e").WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{"emp_number"}))
	mock.ExpectQuery("FROM hs_hr_employee e").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{
			"emp_number", "employee_id", "first", "middle", "last", "birthday", "job_title", "subunit",
		}).AddRow(int64(8), "", "Li", "", "Wu", nil, "", ""))
	mock.ExpectQuery("FROM hs_hr_emp_reportto r").WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"emp_number", "first", "last"}))

	store := NewEmployeeStore(db)

	emp, err := store.EmployeeByNumber(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, emp)

	emp, err = store.EmployeeByNumber(context.Background(), 8)
	require.NoError(t, err)
	assert.Nil(t, emp.Birthday)
	assert.Empty(t, emp.Supervisors)
}

func TestUserStore_Username(t *testing.T) {
	db, mock := createTestDB(t)
	mock.ExpectQuery("FROM ohrm_user").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"user_name"}).AddRow("jdoe"))
	mock.ExpectQuery("FROM ohrm_user").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"user_name"}))

	store := NewUserStore(db)

	name, err := store.Username(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", name)

	_, err = store.Username(context.Background(), 9)
	requireCode(t, err, apperrors.ErrCodeRecordNotFound)
}

func TestNew(t *testing.T) {
	db, _ := createTestDB(t)
	stores := New(db, time.Sunday)
	assert.NotNil(t, stores.Leave)
	assert.NotNil(t, stores.Timesheets)
	assert.NotNil(t, stores.Employees)
	assert.NotNil(t, stores.Users)
}
