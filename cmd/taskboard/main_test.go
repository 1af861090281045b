package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/models"
)

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "taskboard version "+Version+"\n", out.String())
}

func TestImportRejectsMalformedName(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"import", "no-slash"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWNER/REPO")
}

func TestNotifyNeedsText(t *testing.T) {
	cmd := rootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"notify"})

	assert.Error(t, cmd.Execute())
}

func TestImportPrintsOnlyJSONOnStdout(t *testing.T) {
	gh := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/repos/octo/cli":
			io.WriteString(w, `{"id":7,"name":"cli","owner":{"login":"octo"}}`)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer gh.Close()

	cmd := rootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{
		"import", "octo/cli",
		"--db", filepath.Join(t.TempDir(), "board.db"),
		"--github-url", gh.URL,
	})

	require.NoError(t, cmd.Execute())

	var project models.Project
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &project), stdout.String())
	assert.Equal(t, "7", project.ID)
	assert.Contains(t, stderr.String(), "github languages unavailable")
}
