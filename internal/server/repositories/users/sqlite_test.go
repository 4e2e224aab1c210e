package users

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/migrations"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.SQLite)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.UpContext(context.Background(), db, "sqlite"))

	return NewSQLiteRepository(db), db
}

func TestSQLite_CreateAndGet(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	fixed := time.Date(2026, 10, 18, 9, 30, 15, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	created, err := repo.Create(context.Background(), &models.User{
		ID: "u-1", Name: "Ana", Email: "a@x.com", PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.True(t, created.CreatedAt.Equal(fixed))

	got, err := repo.GetUserByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, got.CreatedAt.Equal(fixed))
}

func TestSQLite_DuplicateEmail(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Name: "Ana", Email: "a@x.com", PasswordHash: "h1"})
	require.NoError(t, err)

	_, err = repo.Create(context.Background(), &models.User{ID: "u-2", Name: "Other", Email: "a@x.com", PasswordHash: "h2"})
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestSQLite_EmailIsCaseSensitive(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.Create(context.Background(), &models.User{ID: "u-1", Name: "Ana", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.GetUserByEmail(context.Background(), "A@X.COM")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.Create(context.Background(), &models.User{ID: "u-2", Name: "Ana", Email: "A@x.com", PasswordHash: "h"})
	assert.NoError(t, err)
}

func TestSQLite_NotFound(t *testing.T) {
	repo, _ := newSQLiteRepo(t)

	_, err := repo.GetUserByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLite_ClosedDB(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	require.NoError(t, db.Close())

	_, err := repo.GetUserByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}
