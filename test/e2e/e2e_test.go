//go:build e2e

// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/api"
	"hr-assistant/internal/assistant"
	"hr-assistant/internal/assistant/catalog"
	"hr-assistant/internal/assistant/handlers"
	"hr-assistant/internal/common/config"
	"hr-assistant/internal/common/database"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/store/postgres"
)

const (
	testEmpNumber  = 90001
	testSupervisor = 90002
	employeeRole   = 2
	adminRole      = 1
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS ohrm_leave_type (id BIGINT PRIMARY KEY, name TEXT NOT NULL, deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
	`CREATE TABLE IF NOT EXISTS ohrm_leave_entitlement (id BIGSERIAL PRIMARY KEY, emp_number BIGINT, leave_type_id BIGINT,
		no_of_days NUMERIC, days_used NUMERIC, from_date DATE, to_date DATE, deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
	`CREATE TABLE IF NOT EXISTS ohrm_leave_request (id BIGINT PRIMARY KEY, emp_number BIGINT, leave_type_id BIGINT, date_applied DATE)`,
	`CREATE TABLE IF NOT EXISTS ohrm_leave (id BIGINT PRIMARY KEY, leave_request_id BIGINT, date DATE, status INT)`,
	`CREATE TABLE IF NOT EXISTS ohrm_timesheet (timesheet_id BIGINT PRIMARY KEY, emp_number BIGINT, start_date DATE, end_date DATE)`,
	`CREATE TABLE IF NOT EXISTS ohrm_timesheet_item (timesheet_item_id BIGINT PRIMARY KEY, timesheet_id BIGINT, date DATE, duration BIGINT)`,
	`CREATE TABLE IF NOT EXISTS ohrm_job_title (id BIGINT PRIMARY KEY, job_title TEXT)`,
	`CREATE TABLE IF NOT EXISTS ohrm_subunit (id BIGINT PRIMARY KEY, name TEXT)`,
	`CREATE TABLE IF NOT EXISTS hs_hr_employee (emp_number BIGINT PRIMARY KEY, employee_id TEXT, emp_firstname TEXT,
		emp_middle_name TEXT, emp_lastname TEXT, emp_birthday DATE, job_title_code BIGINT, work_station BIGINT)`,
	`CREATE TABLE IF NOT EXISTS hs_hr_emp_reportto (erep_sup_emp_number BIGINT, erep_sub_emp_number BIGINT)`,
	`CREATE TABLE IF NOT EXISTS ohrm_user (id BIGSERIAL PRIMARY KEY, user_name TEXT, emp_number BIGINT, deleted BOOLEAN NOT NULL DEFAULT FALSE)`,
	`CREATE TABLE IF NOT EXISTS ohrm_config (key TEXT PRIMARY KEY, value TEXT)`,
}

func seed(t *testing.T, db *sql.DB, today time.Time) {
	t.Helper()
	ctx := context.Background()

	for _, ddl := range schema {
		_, err := db.ExecContext(ctx, ddl)
		require.NoError(t, err)
	}
	cleanup(t, db)

	start, end := weekOf(today)
	stmts := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO ohrm_leave_type (id, name) VALUES (90001, 'E2E Annual') ON CONFLICT (id) DO NOTHING`, nil},
		{`INSERT INTO ohrm_leave_entitlement (emp_number, leave_type_id, no_of_days, days_used, from_date, to_date)
			VALUES ($1, 90001, 14, 4, $2, $3)`, []interface{}{testEmpNumber, today.AddDate(0, -1, 0), today.AddDate(0, 6, 0)}},
		{`INSERT INTO ohrm_leave_request (id, emp_number, leave_type_id, date_applied) VALUES (90001, $1, 90001, $2)`,
			[]interface{}{testEmpNumber, today.AddDate(0, 0, -3)}},
		{`INSERT INTO ohrm_leave (id, leave_request_id, date, status) VALUES (90001, 90001, $1, 1)`,
			[]interface{}{today}},
		{`INSERT INTO ohrm_timesheet (timesheet_id, emp_number, start_date, end_date) VALUES (90001, $1, $2, $3)`,
			[]interface{}{testEmpNumber, start, end}},
		{`INSERT INTO ohrm_timesheet_item (timesheet_item_id, timesheet_id, date, duration) VALUES
			(90001, 90001, $1, 14400), (90002, 90001, $1, 5400), (90003, 90001, $1, NULL)`, []interface{}{start}},
		{`INSERT INTO ohrm_job_title (id, job_title) VALUES (90001, 'QA Engineer') ON CONFLICT (id) DO NOTHING`, nil},
		{`INSERT INTO hs_hr_employee (emp_number, employee_id, emp_firstname, emp_middle_name, emp_lastname, job_title_code)
			VALUES ($1, 'E2E-1', 'Jane', '', 'Doe', 90001), ($2, 'E2E-2', 'Sam', '', 'Lee', NULL)`,
			[]interface{}{testEmpNumber, testSupervisor}},
		{`INSERT INTO hs_hr_emp_reportto (erep_sup_emp_number, erep_sub_emp_number) VALUES ($1, $2)`,
			[]interface{}{testSupervisor, testEmpNumber}},
		{`INSERT INTO ohrm_user (user_name, emp_number) VALUES ('jdoe.e2e', $1)`, []interface{}{testEmpNumber}},
	}
	for _, s := range stmts {
		_, err := db.ExecContext(ctx, s.query, s.args...)
		require.NoError(t, err, s.query)
	}
}

func cleanup(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, q := range []string{
		`DELETE FROM ohrm_leave_entitlement WHERE emp_number = 90001`,
		`DELETE FROM ohrm_leave WHERE leave_request_id = 90001`,
		`DELETE FROM ohrm_leave_request WHERE id = 90001`,
		`DELETE FROM ohrm_timesheet_item WHERE timesheet_id = 90001`,
		`DELETE FROM ohrm_timesheet WHERE timesheet_id = 90001`,
		`DELETE FROM hs_hr_emp_reportto WHERE erep_sub_emp_number = 90001`,
		`DELETE FROM hs_hr_employee WHERE emp_number IN (90001, 90002)`,
		`DELETE FROM ohrm_user WHERE emp_number = 90001`,
	} {
		_, err := db.Exec(q)
		require.NoError(t, err)
	}
}

func weekOf(day time.Time) (time.Time, time.Time) {
	offset := (int(day.Weekday()) - int(time.Monday) + 7) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

type chatReply struct {
	Data struct {
		Reply  string  `json:"reply"`
		Intent *string `json:"intent"`
	} `json:"data"`
}

func chat(t *testing.T, srv *httptest.Server, message string, role int64) chatReply {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"message": message})
	req, err := http.NewRequest(http.MethodPost, srv.URL+api.ChatPath, strings.NewReader(string(body)))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.HeaderEmployeeNumber, strconv.Itoa(testEmpNumber))
	req.Header.Set(api.HeaderUserRoleID, strconv.FormatInt(role, 10))

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out chatReply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAssistantAgainstPostgres(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	log := logger.NewTestLogger(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pg, err := database.ConnectPostgres(ctx, cfg.Database.Postgres, database.RetryPolicy{MaxAttempts: 3, InitialDelay: time.Second}, log)
	require.NoError(t, err)
	defer pg.Close()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	seed(t, pg.DB, today)
	defer cleanup(t, pg.DB)

	stores := postgres.New(pg.DB, time.Monday)
	engine := assistant.New(
		assistant.Config{Locale: "en", AdminRoleID: adminRole, CollaboratorTimeout: 5 * time.Second},
		catalog.Default(),
		handlers.Dependencies{Leave: stores.Leave, Timesheets: stores.Timesheets, Employees: stores.Employees, WeekStart: time.Monday},
		stores.Users,
		log,
	)
	srv := httptest.NewServer(api.NewServer(engine, log))
	defer srv.Close()

	tests := []struct {
		name       string
		message    string
		role       int64
		wantIntent string
		contains   []string
	}{
		{"leave balance", "what is my leave balance", employeeRole, "leave_balance", []string{"Hello jdoe.e2e", "E2E Annual", "10"}},
		{"leave status", "what is the status of my leave", employeeRole, "my_leave_status", []string{"Pending Approval"}},
		{"timesheet", "show my timesheet this week", employeeRole, "timesheet_this_week", []string{"5.50"}},
		{"job title", "what is my job title", employeeRole, "my_info_summary", []string{"QA Engineer"}},
		{"manager", "who is my manager", employeeRole, "my_info_summary", []string{"Sam Lee"}},
		{"username", "what is my username", employeeRole, "my_identity", []string{"jdoe.e2e"}},
		{"admin gets faq", "what is my leave balance", adminRole, "leave_balance", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := chat(t, srv, tt.message, tt.role)
			require.NotNil(t, got.Data.Intent)
			assert.Equal(t, tt.wantIntent, *got.Data.Intent)
			for _, want := range tt.contains {
				assert.Contains(t, got.Data.Reply, want)
			}
		})
	}

	out := chat(t, srv, "book me a flight to Lisbon", employeeRole)
	assert.Nil(t, out.Data.Intent)
}
