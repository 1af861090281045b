package projects

import "taskboard/internal/models"

// Samples returns the built-in projects used when nothing is persisted yet.
func Samples() []models.Project {
	return []models.Project{
		{
			ID:          "1",
			Title:       "Website redesign",
			Description: "Full refresh of the corporate website with a modern design",
			Status:      models.StatusInProgress,
			Priority:    models.PriorityHigh,
			StartDate:   "2024-01-15",
			EndDate:     "2024-03-30",
			Progress:    65,
			TeamMembers: []string{"Alexey", "Maria", "Dmitry"},
		},
		{
			ID:          "2",
			Title:       "Mobile app",
			Description: "Native mobile application for iOS and Android",
			Status:      models.StatusPlanning,
			Priority:    models.PriorityUrgent,
			StartDate:   "2024-02-01",
			EndDate:     "2024-06-15",
			Progress:    20,
			TeamMembers: []string{"Olga", "Ivan"},
		},
		{
			ID:          "3",
			Title:       "Analytics platform",
			Description: "Business intelligence and reporting rollout",
			Status:      models.StatusCompleted,
			Priority:    models.PriorityMedium,
			StartDate:   "2023-11-01",
			EndDate:     "2024-01-20",
			Progress:    100,
			TeamMembers: []string{"Elena", "Sergey"},
		},
	}
}
