package sqlite

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, quietLogger()), mock
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "taskboard.db")

	store, err := Open(path, quietLogger())
	require.NoError(t, err)

	_, ok := store.Load(ctx, "projects")
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, "projects", `[]`))
	require.NoError(t, store.Save(ctx, "projects", `[{"id":"1"}]`))
	require.NoError(t, store.Save(ctx, "theme", "dark"))
	require.NoError(t, store.Close())

	reopened, err := Open(path, quietLogger())
	require.NoError(t, err)
	defer reopened.Close()

	v, ok := reopened.Load(ctx, "projects")
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, reopened.Remove(ctx, "theme"))
	_, ok = reopened.Load(ctx, "theme")
	assert.False(t, ok)
	require.NoError(t, reopened.Remove(ctx, "theme"))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("", quietLogger())
	assert.Error(t, err)
}

func TestLoadQueryErrorReportsMissing(t *testing.T) {
	store, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
		WithArgs("user").
		WillReturnError(errors.New("database is locked"))

	_, ok := store.Load(context.Background(), "user")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadReturnsValue(t *testing.T) {
	store, mock := setupMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
		WithArgs("theme").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("light"))

	v, ok := store.Load(context.Background(), "theme")
	assert.True(t, ok)
	assert.Equal(t, "light", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWrapsError(t *testing.T) {
	store, mock := setupMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv(key, value) VALUES(?, ?)`)).
		WithArgs("tasks", "[]").
		WillReturnError(errors.New("disk I/O error"))

	err := store.Save(context.Background(), "tasks", "[]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `save "tasks"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveWrapsError(t *testing.T) {
	store, mock := setupMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = ?`)).
		WithArgs("user").
		WillReturnError(errors.New("readonly database"))

	err := store.Remove(context.Background(), "user")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `remove "user"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
