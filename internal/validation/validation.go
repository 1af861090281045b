// Package validation checks form input before it reaches a store. Validators
// are pure: they only read the form they are given.
package validation

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"taskboard/internal/models"
)

// MinPasswordLength is the shortest password the login form accepts.
const MinPasswordLength = 6

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Errors maps a form field to the message shown next to it. A nil Errors
// means the form is valid.
type Errors map[string]string

// Error lists the messages sorted by field.
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e Errors) orNil() Errors {
	if len(e) == 0 {
		return nil
	}
	return e
}

// LoginForm is the input of the login screen.
type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProjectForm is the input of the project editor.
type ProjectForm struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      models.Status   `json:"status"`
	Priority    models.Priority `json:"priority"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	Progress    int             `json:"progress"`
	TeamMembers []string        `json:"teamMembers"`
}

// TaskForm is the input of the task editor.
type TaskForm struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	ProjectID   string          `json:"projectId"`
	Priority    models.Priority `json:"priority"`
	Status      models.Status   `json:"status"`
	Assignee    string          `json:"assignee"`
	DueDate     string          `json:"dueDate"`
	Completed   bool            `json:"completed"`
}

// Email returns the message for an invalid email, or "".
func Email(email string) string {
	if email == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(email) {
		return "email is invalid"
	}
	return ""
}

// Password returns the message for an invalid password, or "".
func Password(password string) string {
	if password == "" {
		return "password is required"
	}
	if len([]rune(password)) < MinPasswordLength {
		return "password must be at least 6 characters"
	}
	return ""
}

// Required returns "<field> is required" for blank values, or "".
func Required(value, field string) string {
	if strings.TrimSpace(value) == "" {
		return field + " is required"
	}
	return ""
}

// ValidateLoginForm checks the email shape and password length.
func ValidateLoginForm(f LoginForm) Errors {
	errs := Errors{}
	if msg := Email(f.Email); msg != "" {
		errs["email"] = msg
	}
	if msg := Password(f.Password); msg != "" {
		errs["password"] = msg
	}
	return errs.orNil()
}

// ValidateProjectForm checks required fields, known enum values, the
// progress range and that the end date is not before the start date.
func ValidateProjectForm(f ProjectForm) Errors {
	errs := Errors{}
	if msg := Required(f.Title, "project title"); msg != "" {
		errs["title"] = msg
	}
	if msg := Required(f.Description, "description"); msg != "" {
		errs["description"] = msg
	}

	switch _, known := models.ValidProjectStatuses[f.Status]; {
	case f.Status == "":
		errs["status"] = "select a status"
	case !known:
		errs["status"] = "unknown status"
	}
	checkPriority(errs, f.Priority)

	if f.Progress < 0 || f.Progress > 100 {
		errs["progress"] = "progress must be between 0 and 100"
	}

	start, startOK := checkDate(errs, "startDate", f.StartDate)
	end, endOK := checkDate(errs, "endDate", f.EndDate)
	if startOK && endOK && start.After(end) {
		errs["endDate"] = "end date must be after start date"
	}
	return errs.orNil()
}

// checkDate parses an optional date, either YYYY-MM-DD or an RFC 3339
// timestamp. A value that is neither is reported under field.
func checkDate(errs Errors, field, value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	errs[field] = "date is invalid"
	return time.Time{}, false
}

// ValidateTaskForm checks the title, project reference and priority.
func ValidateTaskForm(f TaskForm) Errors {
	errs := Errors{}
	if msg := Required(f.Title, "task title"); msg != "" {
		errs["title"] = msg
	}
	if f.ProjectID == "" {
		errs["projectId"] = "select a project"
	}
	checkPriority(errs, f.Priority)
	if f.Status != "" {
		if _, ok := models.ValidTaskStatuses[f.Status]; !ok {
			errs["status"] = "unknown status"
		}
	}
	return errs.orNil()
}

func checkPriority(errs Errors, p models.Priority) {
	if p == "" {
		errs["priority"] = "select a priority"
		return
	}
	if _, ok := models.ValidPriorities[p]; !ok {
		errs["priority"] = "unknown priority"
	}
}

// Project builds the record a valid form describes.
func (f ProjectForm) Project() models.Project {
	members := f.TeamMembers
	if members == nil {
		members = []string{}
	}
	return models.Project{
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Status:      f.Status,
		Priority:    f.Priority,
		StartDate:   f.StartDate,
		EndDate:     f.EndDate,
		Progress:    f.Progress,
		TeamMembers: members,
	}
}

// Task builds the record a valid form describes. An empty status defaults to
// planning.
func (f TaskForm) Task() models.Task {
	status := f.Status
	if status == "" {
		status = models.StatusPlanning
	}
	return models.Task{
		ProjectID:   f.ProjectID,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		Priority:    f.Priority,
		Status:      status,
		Assignee:    f.Assignee,
		DueDate:     f.DueDate,
		Completed:   f.Completed,
	}
}

// ProjectFormOf is the form a stored project would be edited through.
func ProjectFormOf(p models.Project) ProjectForm {
	return ProjectForm{
		Title:       p.Title,
		Description: p.Description,
		Status:      p.Status,
		Priority:    p.Priority,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Progress:    p.Progress,
		TeamMembers: p.TeamMembers,
	}
}

// TaskFormOf is the form a stored task would be edited through.
func TaskFormOf(t models.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		ProjectID:   t.ProjectID,
		Priority:    t.Priority,
		Status:      t.Status,
		Assignee:    t.Assignee,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
	}
}
