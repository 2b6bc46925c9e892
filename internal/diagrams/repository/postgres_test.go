package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/mermaid-gen-backend/internal/diagrams/domain"
)

var columns = []string{"id", "title", "description", "content", "thumbnail_url", "user_id", "is_public", "created_at", "updated_at"}

func setupPostgresStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

func TestPostgresStore_Insert(t *testing.T) {
	store, mock := setupPostgresStore(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO diagrams`).
		WithArgs(sqlmock.AnyArg(), "Login", "", "graph TD\nA-->B", "", "user-1", false).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	d := &domain.Diagram{Title: "Login", Content: "graph TD\nA-->B", OwnerID: "user-1"}
	require.NoError(t, store.Insert(context.Background(), d))
	assert.NotEmpty(t, d.ID)
	assert.True(t, now.Equal(d.CreatedAt))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Update(t *testing.T) {
	store, mock := setupPostgresStore(t)

	t.Run("owner match", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`UPDATE diagrams`).
			WithArgs("New", "", "graph LR", "", true, "d-1", "user-1").
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		d := &domain.Diagram{ID: "d-1", Title: "New", Content: "graph LR", OwnerID: "user-1", IsPublic: true}
		require.NoError(t, store.Update(context.Background(), d))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE diagrams`).
			WithArgs("New", "", "graph LR", "", false, "d-1", "intruder").
			WillReturnError(sql.ErrNoRows)

		d := &domain.Diagram{ID: "d-1", Title: "New", Content: "graph LR", OwnerID: "intruder"}
		assert.ErrorIs(t, store.Update(context.Background(), d), domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresStore_Get(t *testing.T) {
	store, mock := setupPostgresStore(t)
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE id = \$1`).
			WithArgs("d-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("d-1", "T", "desc", "graph TD", nil, "user-1", true, now, now))

		d, err := store.Get(context.Background(), "d-1")
		require.NoError(t, err)
		assert.Equal(t, "graph TD", d.Content)
		assert.Equal(t, "", d.ThumbnailURL)
		assert.True(t, d.IsPublic)
	})

	t.Run("missing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE id = \$1`).
			WithArgs("nope").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := store.Get(context.Background(), "nope")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE id = \$1`).
			WithArgs("xyz").
			WillReturnError(&pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"})

		_, err := store.Get(context.Background(), "xyz")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("backend error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE id = \$1`).
			WithArgs("d-1").
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(context.Background(), "d-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Lists(t *testing.T) {
	store, mock := setupPostgresStore(t)
	newer := time.Now()
	older := newer.Add(-time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE user_id = \$1 ORDER BY updated_at DESC`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("d-2", "B", "", "graph LR", "https://img/x.png", "user-1", false, older, newer).
			AddRow("d-1", "A", "", "graph TD", nil, "user-1", true, older, older))

	mine, err := store.ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "d-2", mine[0].ID)
	assert.Equal(t, "https://img/x.png", mine[0].ThumbnailURL)

	mock.ExpectQuery(`SELECT (.+) FROM diagrams WHERE is_public = TRUE ORDER BY updated_at DESC`).
		WillReturnRows(sqlmock.NewRows(columns))

	public, err := store.ListPublic(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, public)
	assert.Empty(t, public)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Delete(t *testing.T) {
	store, mock := setupPostgresStore(t)

	mock.ExpectExec(`DELETE FROM diagrams WHERE id = \$1 AND user_id = \$2`).
		WithArgs("d-1", "intruder").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, store.Delete(context.Background(), "d-1", "intruder"))

	mock.ExpectExec(`DELETE FROM diagrams`).
		WithArgs("d-1", "user-1").
		WillReturnError(errors.New("connection reset"))
	assert.Error(t, store.Delete(context.Background(), "d-1", "user-1"))

	require.NoError(t, mock.ExpectationsWereMet())
}
