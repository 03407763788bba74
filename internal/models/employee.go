// internal/models/employee.go
package models

import "time"

type Supervisor struct {
	EmpNumber int64  `json:"empNumber"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Employee carries the profile fields the assistant can report. Empty strings mean "not recorded".
type Employee struct {
	EmpNumber   int64        `json:"empNumber"`
	EmployeeID  string       `json:"employeeId"`
	FirstName   string       `json:"firstName"`
	MiddleName  string       `json:"middleName"`
	LastName    string       `json:"lastName"`
	JobTitle    string       `json:"jobTitle"`
	SubDivision string       `json:"subDivision"`
	Birthday    *time.Time   `json:"birthday,omitempty"`
	Supervisors []Supervisor `json:"supervisors"`
}
