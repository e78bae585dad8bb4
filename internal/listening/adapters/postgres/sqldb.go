package postgres

import (
	"context"
	"database/sql"
)

type sqlListeningDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &sqlListeningDB{db: db}
}

func (s *sqlListeningDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}
