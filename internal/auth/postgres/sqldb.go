package postgres

import (
	"context"
	"database/sql"
)

type sqlUserDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &sqlUserDB{db: db}
}

func (s *sqlUserDB) QueryRowContext(ctx context.Context, query string, args ...any) Row {
	return s.db.QueryRowContext(ctx, query, args...)
}
