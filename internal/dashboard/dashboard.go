// Package dashboard computes the overview figures shown on the landing page.
package dashboard

import "taskboard/internal/models"

const (
	recentProjects = 3
	recentTasks    = 5
)

// Stats are counts over the current collections.
type Stats struct {
	TotalProjects     int `json:"totalProjects"`
	ActiveProjects    int `json:"activeProjects"`
	CompletedProjects int `json:"completedProjects"`
	TotalTasks        int `json:"totalTasks"`
	CompletedTasks    int `json:"completedTasks"`
	PendingTasks      int `json:"pendingTasks"`
}

// Summary is the dashboard payload.
type Summary struct {
	Stats          Stats            `json:"stats"`
	RecentProjects []models.Project `json:"recentProjects"`
	RecentTasks    []models.Task    `json:"recentTasks"`
}

// Summarize counts projects by status and tasks by completion. "Recent" means
// the first entries in display order.
func Summarize(projects []models.Project, tasks []models.Task) Summary {
	var st Stats
	st.TotalProjects = len(projects)
	for _, p := range projects {
		switch p.Status {
		case models.StatusInProgress:
			st.ActiveProjects++
		case models.StatusCompleted:
			st.CompletedProjects++
		}
	}
	st.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			st.CompletedTasks++
		} else {
			st.PendingTasks++
		}
	}

	return Summary{
		Stats:          st,
		RecentProjects: head(projects, recentProjects),
		RecentTasks:    head(tasks, recentTasks),
	}
}

func head[T any](items []T, n int) []T {
	if len(items) < n {
		n = len(items)
	}
	return append(make([]T, 0, n), items[:n]...)
}
