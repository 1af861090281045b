package tasks

import "taskboard/internal/models"

// ProjectLookup resolves project ids for display. The task store only ever
// reads through it.
type ProjectLookup interface {
	Title(id string) string
}

// View is a task joined with the title of the project it references.
type View struct {
	models.Task
	ProjectTitle string `json:"projectTitle"`
}

// Views joins tasks with project titles. Dangling references get whatever the
// lookup reports for unknown ids.
func Views(tasks []models.Task, lookup ProjectLookup) []View {
	out := make([]View, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, View{Task: t, ProjectTitle: lookup.Title(t.ProjectID)})
	}
	return out
}
