package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresDB{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func TestWithParam(t *testing.T) {
	t.Run("No Query String", func(t *testing.T) {
		got := withParam("postgres://u:p@host/db", "default_query_exec_mode", "simple_protocol")
		assert.Equal(t, "postgres://u:p@host/db?default_query_exec_mode=simple_protocol", got)
	})

	t.Run("Existing Query String", func(t *testing.T) {
		got := withParam("postgres://host/db?sslmode=require", "default_query_exec_mode", "simple_protocol")
		assert.Equal(t, "postgres://host/db?sslmode=require&default_query_exec_mode=simple_protocol", got)
	})

	t.Run("Already Set", func(t *testing.T) {
		url := "postgres://host/db?default_query_exec_mode=exec"
		assert.Equal(t, url, withParam(url, "default_query_exec_mode", "simple_protocol"))
	})
}

func TestIsUndefinedFunction(t *testing.T) {
	assert.True(t, isUndefinedFunction(&pq.Error{Code: "42883"}))
	assert.True(t, isUndefinedFunction(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "42883"})))
	assert.False(t, isUndefinedFunction(&pq.Error{Code: "42P01"}))
	assert.False(t, isUndefinedFunction(errors.New("connection refused")))
}
