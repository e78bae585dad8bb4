package postgres

import (
	"context"
	"database/sql"
)

// sqlStatsDB adapts *sql.DB to the narrow DB interface the repository needs.
type sqlStatsDB struct {
	db *sql.DB
}

func NewSQLDB(db *sql.DB) DB {
	return &sqlStatsDB{db: db}
}

func (s *sqlStatsDB) QueryRowContext(ctx context.Context, query string, args ...any) Row {
	return s.db.QueryRowContext(ctx, query, args...)
}

func (s *sqlStatsDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	// *sql.Rows already satisfies RowScanner
	return rows, nil
}
