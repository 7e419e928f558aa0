package sqlerr_test

import (
	"database/sql"
	"net/http"
	"testing"

	"github.com/behaviormetrics/capture-api/internal/errs"
	"github.com/behaviormetrics/capture-api/internal/sqlerr"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a throwaway in-memory database with a users-like
// table so real driver errors can be produced.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE users (
			id       INTEGER PRIMARY KEY,
			username TEXT NOT NULL UNIQUE
		);
		CREATE TABLE rows_with_fk (
			id      INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL REFERENCES users(id)
		);
	`)
	require.NoError(t, err)

	return db
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (username) VALUES ('alice')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO users (username) VALUES ('alice')`)
	require.Error(t, err)

	handled := sqlerr.HandleError(err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handled, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
	assert.Contains(t, httpErr.Message, "Username")
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO rows_with_fk (user_id) VALUES (9999)`)
	require.Error(t, err)

	handled := sqlerr.HandleError(err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handled, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO users (username) VALUES (NULL)`)
	require.Error(t, err)

	handled := sqlerr.HandleError(err)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handled, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "username", httpErr.Errors[0].Field)
}

func TestHandleErrorNoRows(t *testing.T) {
	handled := sqlerr.HandleError(sql.ErrNoRows)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handled, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorPassesThroughHTTPError(t *testing.T) {
	orig := errs.NewUnauthorizedError("Invalid credentials", true)
	assert.Same(t, orig, sqlerr.HandleError(orig))
}

func TestHandleErrorUnknown(t *testing.T) {
	handled := sqlerr.HandleError(assert.AnError)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, handled, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}
