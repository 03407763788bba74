package handlers

import (
	"context"
	"regexp"
	"strings"

	"hr-assistant/internal/assistant/composer"
	"hr-assistant/internal/common/logger"
	"hr-assistant/internal/models"
)

// Profile fields, also used as the "not defined" label.
const (
	FieldJobTitle   = "job title"
	FieldDepartment = "department"
	FieldManager    = "manager"
	FieldEmployeeID = "employee id"
	FieldBirthday   = "birthday"
)

var profileProbes = []probe{
	{field: FieldJobTitle, keywords: []string{"job title", "jobtitle"}},
	{field: FieldDepartment, keywords: []string{"department", "dept"}},
	{field: FieldManager, keywords: []string{"manager", "supervisor"}},
	{field: FieldEmployeeID, keywords: []string{"employee id", "employeeid", "emp id", "empid"}},
	{field: FieldBirthday, keywords: []string{"birthday", "birthdate", "date of birth", "dob"}},
}

// label used when the value is present
var profileValueLabels = map[string]string{
	FieldJobTitle:   "job title",
	FieldDepartment: "department",
	FieldManager:    "manager",
	FieldEmployeeID: "employee ID",
	FieldBirthday:   "birthdate",
}

var profileGuidance = map[string]string{
	FieldJobTitle:   "Please contact HR to update your Job Title (visible in My Info > Job).",
	FieldDepartment: "Please contact HR to set your Department (visible in My Info > Job).",
	FieldManager:    "Ask HR to assign a Supervisor (visible in My Info > Reports To).",
	FieldEmployeeID: "Ask HR to set your Employee ID (visible in My Info > Personal Details).",
	FieldBirthday:   "Go to My Info > Personal Details to add your Date of Birth (if permitted), or contact HR.",
}

// ProfileField answers a single profile field picked by keyword probing.
type ProfileField struct {
	employees EmployeeService
	faults    faultReporter
}

func NewProfileField(employees EmployeeService, log logger.Logger) *ProfileField {
	return &ProfileField{
		employees: employees,
		faults:    faultReporter{log: log.WithFields(map[string]interface{}{"handler": "my_info_summary"})},
	}
}

func (h *ProfileField) Handle(ctx context.Context, req Request) Draft {
	if req.CallerID == nil {
		return draft(composer.KeyRecordNotFound)
	}

	emp, err := h.employees.EmployeeByNumber(ctx, *req.CallerID)
	if err != nil {
		h.faults.report(CollaboratorEmployee, "EmployeeByNumber", err)
		return draft(composer.KeyRecordNotFound)
	}
	if emp == nil {
		return draft(composer.KeyRecordNotFound)
	}

	field, ok := ProfileTarget(req.Folded)
	if !ok {
		return draft(composer.KeyProfileAskField)
	}

	value := profileValue(emp, field)
	if value == "" {
		return draft(composer.KeyFieldNotDefined,
			"label", field,
			"guidance", profileGuidance[field],
		)
	}
	return draft(composer.KeyFieldValue,
		"label", profileValueLabels[field],
		"value", value,
	)
}

// ProfileTarget picks the profile field a folded message asks for.
func ProfileTarget(folded string) (string, bool) {
	return firstField(profileProbes, folded)
}

func profileValue(emp *models.Employee, field string) string {
	switch field {
	case FieldJobTitle:
		return strings.TrimSpace(emp.JobTitle)
	case FieldDepartment:
		return strings.TrimSpace(emp.SubDivision)
	case FieldManager:
		for _, sup := range emp.Supervisors {
			if name := strings.TrimSpace(sup.FirstName + " " + sup.LastName); name != "" {
				return name
			}
		}
		return ""
	case FieldEmployeeID:
		return strings.TrimSpace(emp.EmployeeID)
	case FieldBirthday:
		if emp.Birthday == nil {
			return ""
		}
		return emp.Birthday.Format(dateLayout)
	}
	return ""
}

// Identity fields.
const (
	FieldUsername   = "username"
	FieldFirstName  = "first name"
	FieldMiddleName = "middle name"
	FieldLastName   = "last name"
	FieldFullName   = "full name"
)

var identityProbes = []probe{
	{field: FieldUsername, keywords: []string{"username"}},
	{field: FieldFirstName, keywords: []string{"first name", "firstname"}},
	{field: FieldMiddleName, keywords: []string{"middle name", "middlename"}},
	{field: FieldLastName, keywords: []string{"last name", "lastname"}},
	{
		field:    FieldFullName,
		keywords: []string{"full name", "fullname", "who am i", "whoami"},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bwhat\s*is\s*my\s*name\b`),
			regexp.MustCompile(`\bmy\s*name\b`),
		},
	},
}

const (
	usernameGuidance = "Please contact an administrator to set your username."
	nameGuidance     = "Go to My Info > Personal Details to set this."
)

// Identity answers the caller's username or one of their name parts.
type Identity struct {
	employees EmployeeService
	faults    faultReporter
}

func NewIdentity(employees EmployeeService, log logger.Logger) *Identity {
	return &Identity{
		employees: employees,
		faults:    faultReporter{log: log.WithFields(map[string]interface{}{"handler": "my_identity"})},
	}
}

func (h *Identity) Handle(ctx context.Context, req Request) Draft {
	field, ok := IdentityTarget(req.Folded)
	if !ok {
		return draft(composer.KeyIdentityAskField)
	}

	var value string
	if field == FieldUsername {
		if req.Username != nil {
			value = strings.TrimSpace(*req.Username)
		}
	} else {
		value = nameValue(h.lookup(ctx, req), field)
	}

	if value == "" {
		guidance := nameGuidance
		if field == FieldUsername {
			guidance = usernameGuidance
		}
		return draft(composer.KeyFieldNotDefined, "label", field, "guidance", guidance)
	}
	return draft(composer.KeyFieldValue, "label", field, "value", value)
}

func (h *Identity) lookup(ctx context.Context, req Request) *models.Employee {
	if req.CallerID == nil {
		return nil
	}
	emp, err := h.employees.EmployeeByNumber(ctx, *req.CallerID)
	if err != nil {
		h.faults.report(CollaboratorEmployee, "EmployeeByNumber", err)
		return nil
	}
	return emp
}

// IdentityTarget picks the identity field a folded message asks for.
func IdentityTarget(folded string) (string, bool) {
	return firstField(identityProbes, folded)
}

func nameValue(emp *models.Employee, field string) string {
	if emp == nil {
		return ""
	}
	switch field {
	case FieldFirstName:
		return strings.TrimSpace(emp.FirstName)
	case FieldMiddleName:
		return strings.TrimSpace(emp.MiddleName)
	case FieldLastName:
		return strings.TrimSpace(emp.LastName)
	case FieldFullName:
		return FullName(emp)
	}
	return ""
}

// FullName joins the non-blank first, middle and last names with single spaces.
func FullName(emp *models.Employee) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{emp.FirstName, emp.MiddleName, emp.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
