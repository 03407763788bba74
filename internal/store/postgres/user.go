package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "hr-assistant/internal/common/errors"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Username returns the login name of the employee's active system user.
func (s *UserStore) Username(ctx context.Context, empNumber int64) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx, `
		SELECT user_name
		FROM ohrm_user
		WHERE emp_number = $1
		  AND deleted = FALSE
		ORDER BY user_name
		LIMIT 1`,
		empNumber,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", apperrors.NewRecordNotFoundError("user", fmt.Sprintf("empNumber: %d", empNumber))
	}
	if err != nil {
		return "", queryError(ctx, "username", err)
	}
	return name, nil
}
