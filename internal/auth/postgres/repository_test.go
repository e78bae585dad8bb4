package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-tour-service/internal/auth"
)

type fakeRow struct {
	ScanFn func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.ScanFn(dest...) }

type fakeDB struct {
	row       Row
	lastQuery string
	lastArgs  []any
}

func (f *fakeDB) QueryRowContext(ctx context.Context, query string, args ...any) Row {
	f.lastQuery = query
	f.lastArgs = args
	return f.row
}

// ------------------------------------------------------------
// FOUND
// ------------------------------------------------------------

func TestUserRepository_Found(t *testing.T) {
	db := &fakeDB{row: fakeRow{ScanFn: func(dest ...any) error {
		*dest[0].(*int64) = 42
		*dest[1].(*string) = "guide@example.com"
		*dest[2].(*string) = "Guide"
		*dest[3].(*string) = "admin"
		*dest[4].(*bool) = true
		return nil
	}}}

	u, err := NewUserRepository(db).FindUserByEmail(context.Background(), "guide@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	assert.Equal(t, auth.RoleAdmin, u.Role)
	assert.True(t, u.IsActive)
	assert.Equal(t, []any{"guide@example.com"}, db.lastArgs)
}

// ------------------------------------------------------------
// NOT FOUND / DB ERROR
// ------------------------------------------------------------

func TestUserRepository_NotFound(t *testing.T) {
	db := &fakeDB{row: fakeRow{ScanFn: func(...any) error { return sql.ErrNoRows }}}

	_, err := NewUserRepository(db).FindUserByEmail(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, auth.ErrUserNotFound)
}

func TestUserRepository_Error(t *testing.T) {
	boom := errors.New("conn reset")
	db := &fakeDB{row: fakeRow{ScanFn: func(...any) error { return boom }}}

	_, err := NewUserRepository(db).FindUserByEmail(context.Background(), "x@example.com")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, auth.ErrUserNotFound)
}

func TestSQLDB_FindUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("tourist@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "is_active"}).
			AddRow(int64(7), "tourist@example.com", "Tourist", "user", false))

	u, err := NewUserRepository(NewSQLDB(db)).FindUserByEmail(context.Background(), "tourist@example.com")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleUser, u.Role)
	assert.False(t, u.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}
