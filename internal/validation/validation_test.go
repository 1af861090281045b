package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestValidateLoginForm(t *testing.T) {
	errs := ValidateLoginForm(LoginForm{Email: "bad", Password: "123"})
	require.NotNil(t, errs)
	assert.Equal(t, "email is invalid", errs["email"])
	assert.Equal(t, "password must be at least 6 characters", errs["password"])

	assert.Nil(t, ValidateLoginForm(LoginForm{Email: "a@b.com", Password: "abcdef"}))

	errs = ValidateLoginForm(LoginForm{})
	assert.Equal(t, "email is required", errs["email"])
	assert.Equal(t, "password is required", errs["password"])
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a@b.com", ""},
		{"first.last@sub.example.org", ""},
		{"", "email is required"},
		{"no-at.com", "email is invalid"},
		{"a@b", "email is invalid"},
		{"a b@c.com", "email is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func validProject() ProjectForm {
	return ProjectForm{
		Title:       "X",
		Description: "Y",
		Status:      models.StatusPlanning,
		Priority:    models.PriorityLow,
		StartDate:   "2024-01-01",
		EndDate:     "2024-02-01",
	}
}

func TestValidateProjectForm(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProjectForm)
		field  string
	}{
		{"blank title", func(f *ProjectForm) { f.Title = "  " }, "title"},
		{"blank description", func(f *ProjectForm) { f.Description = "" }, "description"},
		{"missing status", func(f *ProjectForm) { f.Status = "" }, "status"},
		{"unknown status", func(f *ProjectForm) { f.Status = "archived" }, "status"},
		{"missing priority", func(f *ProjectForm) { f.Priority = "" }, "priority"},
		{"unknown priority", func(f *ProjectForm) { f.Priority = "critical" }, "priority"},
		{"negative progress", func(f *ProjectForm) { f.Progress = -1 }, "progress"},
		{"progress over 100", func(f *ProjectForm) { f.Progress = 101 }, "progress"},
		{"end before start", func(f *ProjectForm) { f.EndDate = "2023-12-31" }, "endDate"},
		{"timestamp end before start", func(f *ProjectForm) { f.EndDate = "2023-12-31T10:00:00Z" }, "endDate"},
		{"malformed start", func(f *ProjectForm) { f.StartDate = "01/02/2024" }, "startDate"},
		{"malformed end", func(f *ProjectForm) { f.EndDate = "soon" }, "endDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validProject()
			tt.mutate(&form)
			errs := ValidateProjectForm(form)
			require.Len(t, errs, 1, errs)
			assert.Contains(t, errs, tt.field)
		})
	}

	assert.Nil(t, ValidateProjectForm(validProject()))

	same := validProject()
	same.EndDate = same.StartDate
	assert.Nil(t, ValidateProjectForm(same), "equal dates are allowed")

	stamped := validProject()
	stamped.StartDate = "2024-01-01T08:00:00+03:00"
	stamped.EndDate = "2024-01-01T06:00:00Z"
	assert.Nil(t, ValidateProjectForm(stamped), "offsets are compared as instants")

	onlyStart := validProject()
	onlyStart.EndDate = ""
	assert.Nil(t, ValidateProjectForm(onlyStart))

	onHold := validProject()
	onHold.Status = models.StatusOnHold
	onHold.Progress = 100
	assert.Nil(t, ValidateProjectForm(onHold))
}

func TestValidateTaskForm(t *testing.T) {
	errs := ValidateTaskForm(TaskForm{})
	assert.Equal(t, "task title is required", errs["title"])
	assert.Equal(t, "select a project", errs["projectId"])
	assert.Equal(t, "select a priority", errs["priority"])

	errs = ValidateTaskForm(TaskForm{Title: "T", ProjectID: "1", Priority: models.PriorityUrgent, Status: models.StatusOnHold})
	assert.Equal(t, Errors{"status": "unknown status"}, errs)

	assert.Nil(t, ValidateTaskForm(TaskForm{Title: "T", ProjectID: "1", Priority: models.PriorityMedium}))
}

func TestErrorsMessageIsSorted(t *testing.T) {
	errs := Errors{"title": "t", "description": "d"}
	assert.Equal(t, "validation failed: description: d; title: t", errs.Error())
}

func TestFormConversions(t *testing.T) {
	p := validProject().Project()
	assert.Equal(t, []string{}, p.TeamMembers)
	assert.Empty(t, p.ID)
	assert.Equal(t, validProject(), withMembers(ProjectFormOf(p), nil))

	task := TaskForm{Title: " T ", ProjectID: "1", Priority: models.PriorityLow}.Task()
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, models.StatusPlanning, task.Status)
	assert.Equal(t, task.Title, TaskFormOf(task).Title)
}

func withMembers(f ProjectForm, members []string) ProjectForm {
	f.TeamMembers = members
	return f
}
