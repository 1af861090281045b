package models

import "encoding/json"

// Status is the lifecycle stage shared by projects and tasks.
type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on-hold"
)

// Priority ranks projects and tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// ValidProjectStatuses enumerates the statuses a project can be in.
var ValidProjectStatuses = map[Status]struct{}{
	StatusPlanning:   {},
	StatusInProgress: {},
	StatusCompleted:  {},
	StatusOnHold:     {},
}

// ValidTaskStatuses enumerates the statuses offered for tasks.
var ValidTaskStatuses = map[Status]struct{}{
	StatusPlanning:   {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

// ValidPriorities enumerates the supported priorities.
var ValidPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
	PriorityUrgent: {},
}

// Identity is the authenticated user. It never carries a credential.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Language is the share of a repository written in one language.
type Language struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// Project groups tasks. The GitHub fields are only set for imported
// repositories; for those, stars, forks, languages and topics are always
// encoded, zero or empty included.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      Status   `json:"status"`
	Priority    Priority `json:"priority"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Progress    int      `json:"progress"`
	TeamMembers []string `json:"teamMembers"`

	GithubURL       string     `json:"githubUrl,omitempty"`
	Stars           int        `json:"stars,omitempty"`
	Forks           int        `json:"forks,omitempty"`
	Language        string     `json:"language,omitempty"`
	Languages       []Language `json:"languages,omitempty"`
	Topics          []string   `json:"topics,omitempty"`
	IsGithubProject bool       `json:"isGithubProject,omitempty"`
}

// MarshalJSON writes team members as a list even when none are set.
func (p Project) MarshalJSON() ([]byte, error) {
	type plain Project
	out := plain(p)
	out.TeamMembers = orEmpty(p.TeamMembers)
	if !p.IsGithubProject {
		return json.Marshal(out)
	}
	return json.Marshal(struct {
		plain
		Stars     int        `json:"stars"`
		Forks     int        `json:"forks"`
		Languages []Language `json:"languages"`
		Topics    []string   `json:"topics"`
	}{out, p.Stars, p.Forks, orEmpty(p.Languages), orEmpty(p.Topics)})
}

// Clone returns a deep copy so callers never share slices with a store.
// Empty and nil slices stay as they are.
func (p Project) Clone() Project {
	out := p
	out.TeamMembers = cloneSlice(p.TeamMembers)
	out.Languages = cloneSlice(p.Languages)
	out.Topics = cloneSlice(p.Topics)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Task is a unit of work inside a project. ProjectID is not checked against
// the project collection.
type Task struct {
	ID          string   `json:"id"`
	ProjectID   string   `json:"projectId"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
	Assignee    string   `json:"assignee"`
	DueDate     string   `json:"dueDate"`
	Completed   bool     `json:"completed"`
}

// ProjectPatch carries the fields of a partial project update. Nil fields are
// left untouched.
type ProjectPatch struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	StartDate   *string   `json:"startDate,omitempty"`
	EndDate     *string   `json:"endDate,omitempty"`
	Progress    *int      `json:"progress,omitempty"`
	TeamMembers *[]string `json:"teamMembers,omitempty"`

	GithubURL       *string     `json:"githubUrl,omitempty"`
	Stars           *int        `json:"stars,omitempty"`
	Forks           *int        `json:"forks,omitempty"`
	Language        *string     `json:"language,omitempty"`
	Languages       *[]Language `json:"languages,omitempty"`
	Topics          *[]string   `json:"topics,omitempty"`
	IsGithubProject *bool       `json:"isGithubProject,omitempty"`
}

// Apply merges the patch into p. The identifier is never changed.
func (pp ProjectPatch) Apply(p *Project) {
	setIf(&p.Title, pp.Title)
	setIf(&p.Description, pp.Description)
	setIf(&p.Status, pp.Status)
	setIf(&p.Priority, pp.Priority)
	setIf(&p.StartDate, pp.StartDate)
	setIf(&p.EndDate, pp.EndDate)
	setIf(&p.Progress, pp.Progress)
	if pp.TeamMembers != nil {
		p.TeamMembers = cloneSlice(*pp.TeamMembers)
	}
	setIf(&p.GithubURL, pp.GithubURL)
	setIf(&p.Stars, pp.Stars)
	setIf(&p.Forks, pp.Forks)
	setIf(&p.Language, pp.Language)
	if pp.Languages != nil {
		p.Languages = cloneSlice(*pp.Languages)
	}
	if pp.Topics != nil {
		p.Topics = cloneSlice(*pp.Topics)
	}
	setIf(&p.IsGithubProject, pp.IsGithubProject)
}

// TaskPatch carries the fields of a partial task update. Nil fields are left
// untouched. Completed and Status are applied independently.
type TaskPatch struct {
	ID          string    `json:"id"`
	ProjectID   *string   `json:"projectId,omitempty"`
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
	Assignee    *string   `json:"assignee,omitempty"`
	DueDate     *string   `json:"dueDate,omitempty"`
	Completed   *bool     `json:"completed,omitempty"`
}

// Apply merges the patch into t. The identifier is never changed.
func (tp TaskPatch) Apply(t *Task) {
	setIf(&t.ProjectID, tp.ProjectID)
	setIf(&t.Title, tp.Title)
	setIf(&t.Description, tp.Description)
	setIf(&t.Priority, tp.Priority)
	setIf(&t.Status, tp.Status)
	setIf(&t.Assignee, tp.Assignee)
	setIf(&t.DueDate, tp.DueDate)
	setIf(&t.Completed, tp.Completed)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Theme is the persisted colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is one of the known themes.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}
