package github

import (
	"context"
	"math"
	"sort"
	"strconv"
	"time"

	"taskboard/internal/models"
)

// NoDescription replaces an empty repository description.
const NoDescription = "No description"

const dateLayout = "2006-01-02"

// LanguageShares converts byte counts into rounded percentages, largest first.
// Equal percentages keep the input order.
func LanguageShares(langs []LanguageBytes) []models.Language {
	var total int64
	for _, l := range langs {
		total += l.Bytes
	}

	out := make([]models.Language, 0, len(langs))
	for _, l := range langs {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(l.Bytes) / float64(total) * 100))
		}
		out = append(out, models.Language{Name: l.Name, Percentage: pct})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})
	return out
}

// ToProject maps a repository onto a project. Archived repositories count as
// completed; more than ten stars makes a project high priority.
func ToProject(repo Repo, langs []LanguageBytes) models.Project {
	p := models.Project{
		ID:              strconv.FormatInt(repo.ID, 10),
		Title:           repo.Name,
		Description:     repo.Description,
		Status:          models.StatusInProgress,
		Priority:        models.PriorityMedium,
		StartDate:       day(repo.CreatedAt),
		EndDate:         day(repo.UpdatedAt),
		Progress:        50,
		TeamMembers:     []string{},
		GithubURL:       repo.HTMLURL,
		Stars:           repo.StargazersCount,
		Forks:           repo.ForksCount,
		Language:        repo.Language,
		Languages:       LanguageShares(langs),
		Topics:          repo.Topics,
		IsGithubProject: true,
	}
	if p.Description == "" {
		p.Description = NoDescription
	}
	if repo.Archived {
		p.Status = models.StatusCompleted
		p.Progress = 100
	}
	if repo.StargazersCount > 10 {
		p.Priority = models.PriorityHigh
	}
	if p.Topics == nil {
		p.Topics = []string{}
	}
	return p
}

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

// ProjectAdder receives imported projects.
type ProjectAdder interface {
	Add(ctx context.Context, p models.Project) models.Project
}

// Importer turns repositories into stored projects.
type Importer struct {
	client   *Client
	projects ProjectAdder
}

// NewImporter wires a client to a project store.
func NewImporter(client *Client, projects ProjectAdder) *Importer {
	return &Importer{client: client, projects: projects}
}

// Import fetches the language breakdown of repo, converts it and adds the
// result. A missing breakdown does not fail the import.
func (i *Importer) Import(ctx context.Context, repo Repo) models.Project {
	langs := i.client.Languages(ctx, repo.Owner.Login, repo.Name)
	return i.projects.Add(ctx, ToProject(repo, langs))
}

// ImportByName looks the repository up first. Nothing is stored when the
// lookup fails.
func (i *Importer) ImportByName(ctx context.Context, owner, name string) (models.Project, error) {
	repo, err := i.client.GetRepo(ctx, owner, name)
	if err != nil {
		return models.Project{}, err
	}
	if repo.Owner.Login == "" {
		repo.Owner.Login = owner
	}
	return i.Import(ctx, repo), nil
}
