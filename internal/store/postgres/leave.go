package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"hr-assistant/internal/models"
)

type LeaveStore struct {
	db *sql.DB
}

func NewLeaveStore(db *sql.DB) *LeaveStore {
	return &LeaveStore{db: db}
}

func (s *LeaveStore) LeaveTypes(ctx context.Context) ([]models.LeaveType, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name
		FROM ohrm_leave_type
		WHERE deleted = FALSE
		ORDER BY id`)
	if err != nil {
		return nil, queryError(ctx, "leave_types", err)
	}
	defer rows.Close()

	var types []models.LeaveType
	for rows.Next() {
		var lt models.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name); err != nil {
			return nil, queryError(ctx, "leave_types", err)
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "leave_types", err)
	}
	return types, nil
}

// Balance is the sum of unused days over the non-deleted entitlements of one
// leave type that cover asOf.
func (s *LeaveStore) Balance(ctx context.Context, empNumber, leaveTypeID int64, asOf time.Time) (float64, error) {
	var balance float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(no_of_days - days_used), 0)
		FROM ohrm_leave_entitlement
		WHERE emp_number = $1
		  AND leave_type_id = $2
		  AND deleted = FALSE
		  AND from_date <= $3
		  AND to_date >= $3`,
		empNumber, leaveTypeID, dateOnly(asOf),
	).Scan(&balance)
	if err != nil {
		return 0, queryError(ctx, "leave_balance", err)
	}
	return balance, nil
}

// LeaveRequests returns the employee's requests having at least one leave day
// in [from, to], newest application first, each with all of its days.
func (s *LeaveStore) LeaveRequests(ctx context.Context, empNumber int64, from, to time.Time) ([]models.LeaveRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.emp_number, r.date_applied, t.id, t.name
		FROM ohrm_leave_request r
		LEFT JOIN ohrm_leave_type t ON t.id = r.leave_type_id
		WHERE r.emp_number = $1
		  AND EXISTS (
		      SELECT 1 FROM ohrm_leave l
		      WHERE l.leave_request_id = r.id
		        AND l.date BETWEEN $2 AND $3)
		ORDER BY r.date_applied DESC, r.id DESC`,
		empNumber, from, to,
	)
	if err != nil {
		return nil, queryError(ctx, "leave_requests", err)
	}
	defer rows.Close()

	var (
		requests []models.LeaveRequest
		ids      []int64
	)
	index := make(map[int64]int)
	for rows.Next() {
		var (
			req      models.LeaveRequest
			typeID   sql.NullInt64
			typeName sql.NullString
		)
		if err := rows.Scan(&req.ID, &req.EmpNumber, &req.DateApplied, &typeID, &typeName); err != nil {
			return nil, queryError(ctx, "leave_requests", err)
		}
		if typeID.Valid {
			req.LeaveType = &models.LeaveType{ID: typeID.Int64, Name: typeName.String}
		}
		index[req.ID] = len(requests)
		ids = append(ids, req.ID)
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "leave_requests", err)
	}
	if len(requests) == 0 {
		return nil, nil
	}

	dayRows, err := s.db.QueryContext(ctx, `
		SELECT id, leave_request_id, date, status
		FROM ohrm_leave
		WHERE leave_request_id = ANY($1)
		ORDER BY date, id`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, queryError(ctx, "leave_days", err)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var (
			day       models.Leave
			requestID int64
		)
		if err := dayRows.Scan(&day.ID, &requestID, &day.Date, &day.Status); err != nil {
			return nil, queryError(ctx, "leave_days", err)
		}
		if i, ok := index[requestID]; ok {
			requests[i].Leaves = append(requests[i].Leaves, day)
		}
	}
	if err := dayRows.Err(); err != nil {
		return nil, queryError(ctx, "leave_days", err)
	}

	return requests, nil
}
