package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectPatchApply(t *testing.T) {
	p := Project{ID: "1", Title: "Old", Progress: 10, TeamMembers: []string{"a"}}
	title := "New"
	members := []string{"b", "c"}

	ProjectPatch{ID: "other", Title: &title, TeamMembers: &members}.Apply(&p)

	assert.Equal(t, "1", p.ID, "id is never patched")
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, 10, p.Progress)
	assert.Equal(t, []string{"b", "c"}, p.TeamMembers)

	members[0] = "z"
	assert.Equal(t, "b", p.TeamMembers[0])
}

func TestTaskPatchApplyKeepsStatusIndependent(t *testing.T) {
	task := Task{ID: "1", Status: StatusInProgress}
	done := true
	TaskPatch{Completed: &done}.Apply(&task)

	assert.True(t, task.Completed)
	assert.Equal(t, StatusInProgress, task.Status)
}

func TestCloneIsDeep(t *testing.T) {
	p := Project{TeamMembers: []string{"a"}, Topics: []string{"t"}, Languages: []Language{{Name: "Go", Percentage: 100}}}
	c := p.Clone()
	c.TeamMembers[0] = "x"
	c.Topics[0] = "x"
	c.Languages[0].Name = "x"

	assert.Equal(t, "a", p.TeamMembers[0])
	assert.Equal(t, "t", p.Topics[0])
	assert.Equal(t, "Go", p.Languages[0].Name)
}

func TestCloneKeepsEmptySlices(t *testing.T) {
	c := Project{TeamMembers: []string{}, Topics: []string{}, Languages: []Language{}}.Clone()
	assert.NotNil(t, c.TeamMembers)
	assert.NotNil(t, c.Topics)
	assert.NotNil(t, c.Languages)
	assert.Nil(t, Project{}.Clone().TeamMembers)
}

func TestProjectJSONLayout(t *testing.T) {
	raw, err := json.Marshal(Project{ID: "1", Title: "Plain"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"teamMembers":[]`)
	assert.NotContains(t, string(raw), `"stars"`)
	assert.NotContains(t, string(raw), `"topics"`)

	raw, err = json.Marshal(Project{ID: "2", GithubURL: "https://github.com/o/r", IsGithubProject: true})
	require.NoError(t, err)
	for _, want := range []string{`"stars":0`, `"forks":0`, `"languages":[]`, `"topics":[]`, `"teamMembers":[]`, `"isGithubProject":true`} {
		assert.Contains(t, string(raw), want)
	}

	var back Project
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, []string{}, back.Topics)
	assert.Equal(t, 0, back.Stars)
}

func TestThemeValid(t *testing.T) {
	assert.True(t, ThemeLight.Valid())
	assert.True(t, ThemeSystem.Valid())
	assert.False(t, Theme("sepia").Valid())
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	assert.NotEqual(t, a, b)

	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}
