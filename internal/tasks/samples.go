package tasks

import "taskboard/internal/models"

// Samples returns the built-in tasks used when nothing is persisted yet.
func Samples() []models.Task {
	return []models.Task{
		{
			ID:          "1",
			ProjectID:   "1",
			Title:       "Design home page mockups",
			Description: "Prepare three design options for the home page",
			Status:      models.StatusCompleted,
			Priority:    models.PriorityHigh,
			Assignee:    "Maria",
			DueDate:     "2024-02-10",
			Completed:   true,
		},
		{
			ID:          "2",
			ProjectID:   "1",
			Title:       "Implement responsive layout",
			Description: "Layouts for desktop, tablet and mobile",
			Status:      models.StatusInProgress,
			Priority:    models.PriorityHigh,
			Assignee:    "Dmitry",
			DueDate:     "2024-02-20",
		},
		{
			ID:          "3",
			ProjectID:   "1",
			Title:       "CMS integration",
			Description: "Connect the site to the content management system",
			Status:      models.StatusPlanning,
			Priority:    models.PriorityMedium,
			Assignee:    "Alexey",
			DueDate:     "2024-03-01",
		},
		{
			ID:          "4",
			ProjectID:   "2",
			Title:       "Set up the development environment",
			Description: "React Native + Expo setup",
			Status:      models.StatusCompleted,
			Priority:    models.PriorityUrgent,
			Assignee:    "Ivan",
			DueDate:     "2024-02-05",
			Completed:   true,
		},
	}
}
