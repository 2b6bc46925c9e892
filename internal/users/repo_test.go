package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct {
	id  string
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.id
	return nil
}

type fakeQuerier struct {
	row  fakeRow
	args []any
}

func (q *fakeQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	q.args = args
	return q.row
}

func TestEnsureUser(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{id: "row-1"}}
	repo := &Repo{db: q}

	id, err := repo.EnsureUser(context.Background(), UpsertUser{Provider: "firebase", ExternalID: "uid-1", Email: "a@b.c"})
	require.NoError(t, err)
	assert.Equal(t, "row-1", id)
	assert.Equal(t, []any{"firebase", "uid-1", "a@b.c", "", ""}, q.args)
}

func TestEnsureUser_Validation(t *testing.T) {
	repo := &Repo{db: &fakeQuerier{}}

	_, err := repo.EnsureUser(context.Background(), UpsertUser{Provider: "firebase"})
	assert.Error(t, err)
	_, err = repo.EnsureUser(context.Background(), UpsertUser{ExternalID: "uid"})
	assert.Error(t, err)
}

func TestEnsureUser_DBError(t *testing.T) {
	repo := &Repo{db: &fakeQuerier{row: fakeRow{err: errors.New("conn refused")}}}

	_, err := repo.EnsureUser(context.Background(), UpsertUser{Provider: "header", ExternalID: "uid"})
	assert.ErrorContains(t, err, "conn refused")
}
