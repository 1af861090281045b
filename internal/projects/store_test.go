package projects

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
	"taskboard/internal/storage"
	"taskboard/internal/storage/memory"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs() Option {
	n := 100
	return WithIDGenerator(func() string {
		n++
		return strconv.Itoa(n)
	})
}

func newTestStore(t *testing.T, seed map[string]string) (*Store, *memory.Store) {
	t.Helper()
	kv := memory.New(seed)
	return NewStore(context.Background(), kv, quietLogger(), sequentialIDs()), kv
}

func persisted(t *testing.T, kv *memory.Store) []models.Project {
	t.Helper()
	var out []models.Project
	raw, ok := kv.Snapshot()[storage.KeyProjects]
	require.True(t, ok, "projects key should be written")
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestNewStoreFallsBackToSamples(t *testing.T) {
	s, kv := newTestStore(t, nil)

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"1", "2", "3"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Empty(t, kv.Snapshot(), "samples are not written until the first mutation")
}

func TestNewStoreKeepsCorruptValue(t *testing.T) {
	s, kv := newTestStore(t, map[string]string{storage.KeyProjects: "not json"})

	assert.Len(t, s.List(), 3)
	assert.Equal(t, "not json", kv.Snapshot()[storage.KeyProjects])
}

func TestNewStoreLoadsPersisted(t *testing.T) {
	s, _ := newTestStore(t, map[string]string{storage.KeyProjects: `[{"id":"a","title":"Only"}]`})

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Only", list[0].Title)
}

func TestAddAssignsIDAndPersists(t *testing.T) {
	s, kv := newTestStore(t, nil)

	p := s.Add(context.Background(), models.Project{Title: "X", Description: "Y", Status: models.StatusPlanning, Priority: models.PriorityLow})
	assert.Equal(t, "101", p.ID)
	assert.Equal(t, []string{}, p.TeamMembers)

	count := 0
	for _, q := range s.List() {
		if q.ID == p.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, s.List(), persisted(t, kv))
}

func TestAddThenDeleteRestoresCollection(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, nil)
	before := s.List()

	p := s.Add(ctx, models.Project{Title: "X", Description: "Y", Status: models.StatusPlanning, Priority: models.PriorityLow, Progress: 0})
	assert.True(t, s.Delete(ctx, p.ID))

	assert.Equal(t, before, s.List())
}

func TestDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, nil)

	assert.True(t, s.Delete(ctx, "2"))
	once := s.List()
	assert.False(t, s.Delete(ctx, "2"))

	assert.Equal(t, once, s.List())
	assert.Equal(t, once, persisted(t, kv))
}

func TestUpdateMergesAndKeepsLength(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, nil)

	progress := 90
	title := "Renamed"
	updated, ok, err := s.Update(ctx, models.ProjectPatch{ID: "1", Title: &title, Progress: &progress})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 90, updated.Progress)
	assert.Equal(t, Samples()[0].Description, updated.Description)
	assert.Len(t, s.List(), 3)
	assert.Equal(t, s.List(), persisted(t, kv))
}

func TestUpdateUnknownIDIsNoop(t *testing.T) {
	s, kv := newTestStore(t, nil)

	title := "Ghost"
	_, ok, err := s.Update(context.Background(), models.ProjectPatch{ID: "nope", Title: &title})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, kv.Snapshot())
}

func TestUpdateRequiresID(t *testing.T) {
	s, _ := newTestStore(t, nil)

	_, _, err := s.Update(context.Background(), models.ProjectPatch{})
	assert.ErrorIs(t, err, ErrMissingID)
}

func TestSelectionIsTransient(t *testing.T) {
	s, kv := newTestStore(t, nil)

	_, ok := s.Selected()
	assert.False(t, ok)

	p, _ := s.Get("2")
	s.Select(&p)
	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "2", got.ID)
	assert.Empty(t, kv.Snapshot())

	s.Select(nil)
	_, ok = s.Selected()
	assert.False(t, ok)
}

func TestTitle(t *testing.T) {
	s, _ := newTestStore(t, nil)

	assert.Equal(t, Samples()[0].Title, s.Title("1"))
	assert.Equal(t, UnknownTitle, s.Title("missing"))
}

func TestListReturnsCopies(t *testing.T) {
	s, _ := newTestStore(t, nil)

	list := s.List()
	list[0].Title = "mutated"
	list[0].TeamMembers[0] = "someone else"

	fresh, _ := s.Get(list[0].ID)
	assert.Equal(t, Samples()[0].Title, fresh.Title)
	assert.Equal(t, Samples()[0].TeamMembers, fresh.TeamMembers)
}

func TestReloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, nil)
	s.Add(ctx, models.Project{
		Title:     "Imported",
		Languages: []models.Language{{Name: "Go", Percentage: 100}},
		Topics:    []string{"cli"},
	})

	reloaded := NewStore(ctx, kv, quietLogger())
	assert.Equal(t, s.List(), reloaded.List())
}

func TestSavedLayoutKeepsEmptyAndZeroValues(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, nil)

	added := s.Add(ctx, models.Project{ID: "x", Title: "No team", TeamMembers: []string{}})
	assert.Equal(t, []string{}, added.TeamMembers)
	s.Add(ctx, models.Project{
		ID:              "gh",
		Title:           "fresh-repo",
		GithubURL:       "https://github.com/octo/fresh-repo",
		Topics:          []string{},
		Languages:       []models.Language{},
		IsGithubProject: true,
	})

	var saved []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(kv.Snapshot()[storage.KeyProjects]), &saved))
	require.Len(t, saved, 5)

	noTeam, imported := saved[3], saved[4]
	assert.JSONEq(t, `[]`, string(noTeam["teamMembers"]))
	_, hasStars := noTeam["stars"]
	assert.False(t, hasStars)

	assert.JSONEq(t, `0`, string(imported["stars"]))
	assert.JSONEq(t, `0`, string(imported["forks"]))
	assert.JSONEq(t, `[]`, string(imported["languages"]))
	assert.JSONEq(t, `[]`, string(imported["topics"]))
	assert.JSONEq(t, `[]`, string(imported["teamMembers"]))
}

func TestUpdateIfChecksMergedRecordUnderLock(t *testing.T) {
	ctx := context.Background()
	s, kv := newTestStore(t, nil)
	before, _ := s.Get("1")

	progress := 150
	rejected := errors.New("progress out of range")
	var seen models.Project
	_, ok, err := s.UpdateIf(ctx, models.ProjectPatch{ID: "1", Progress: &progress}, func(p models.Project) error {
		seen = p
		if p.Progress > 100 {
			return rejected
		}
		return nil
	})
	assert.True(t, ok)
	assert.ErrorIs(t, err, rejected)
	assert.Equal(t, 150, seen.Progress)
	assert.Equal(t, before.Title, seen.Title, "check sees the merged record")

	after, _ := s.Get("1")
	assert.Equal(t, before, after)
	assert.Empty(t, kv.Snapshot(), "rejected updates are not persisted")

	progress = 80
	updated, ok, err := s.UpdateIf(ctx, models.ProjectPatch{ID: "1", Progress: &progress}, func(models.Project) error { return nil })
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 80, updated.Progress)
	assert.Equal(t, s.List(), persisted(t, kv))
}
