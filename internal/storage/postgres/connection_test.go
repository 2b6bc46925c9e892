package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaDefinesTables(t *testing.T) {
	s := Schema()
	assert.True(t, strings.Contains(s, "CREATE TABLE IF NOT EXISTS diagrams"))
	assert.True(t, strings.Contains(s, "CREATE TABLE IF NOT EXISTS users"))
	assert.True(t, strings.Contains(s, "UNIQUE (provider, external_id)"))
}

func TestMigrate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS diagrams`).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS diagrams`).WillReturnError(errors.New("permission denied"))
	assert.ErrorContains(t, Migrate(context.Background(), db), "permission denied")

	require.NoError(t, mock.ExpectationsWereMet())
}
