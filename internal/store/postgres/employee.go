package postgres

import (
	"context"
	"database/sql"
	"errors"

	"hr-assistant/internal/models"
)

type EmployeeStore struct {
	db *sql.DB
}

func NewEmployeeStore(db *sql.DB) *EmployeeStore {
	return &EmployeeStore{db: db}
}

// EmployeeByNumber loads the profile with job title, sub-unit and
// supervisors. A missing employee yields nil without error.
func (s *EmployeeStore) EmployeeByNumber(ctx context.Context, empNumber int64) (*models.Employee, error) {
	var (
		emp      models.Employee
		birthday sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT e.emp_number,
		       COALESCE(e.employee_id, ''),
		       COALESCE(e.emp_firstname, ''),
		       COALESCE(e.emp_middle_name, ''),
		       COALESCE(e.emp_lastname, ''),
		       e.emp_birthday,
		       COALESCE(j.job_title, ''),
		       COALESCE(u.name, '')
		FROM hs_hr_employee e
		LEFT JOIN ohrm_job_title j ON j.id = e.job_title_code
		LEFT JOIN ohrm_subunit u ON u.id = e.work_station
		WHERE e.emp_number = $1`,
		empNumber,
	).Scan(
		&emp.EmpNumber, &emp.EmployeeID,
		&emp.FirstName, &emp.MiddleName, &emp.LastName,
		&birthday, &emp.JobTitle, &emp.SubDivision,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, queryError(ctx, "employee", err)
	}
	if birthday.Valid {
		b := birthday.Time
		emp.Birthday = &b
	}

	supervisors, err := s.supervisors(ctx, empNumber)
	if err != nil {
		return nil, err
	}
	emp.Supervisors = supervisors
	return &emp, nil
}

func (s *EmployeeStore) supervisors(ctx context.Context, empNumber int64) ([]models.Supervisor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.emp_number, COALESCE(s.emp_firstname, ''), COALESCE(s.emp_lastname, '')
		FROM hs_hr_emp_reportto r
		JOIN hs_hr_employee s ON s.emp_number = r.erep_sup_emp_number
		WHERE r.erep_sub_emp_number = $1
		ORDER BY s.emp_number`,
		empNumber,
	)
	if err != nil {
		return nil, queryError(ctx, "supervisors", err)
	}
	defer rows.Close()

	var out []models.Supervisor
	for rows.Next() {
		var sup models.Supervisor
		if err := rows.Scan(&sup.EmpNumber, &sup.FirstName, &sup.LastName); err != nil {
			return nil, queryError(ctx, "supervisors", err)
		}
		out = append(out, sup)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "supervisors", err)
	}
	return out, nil
}
