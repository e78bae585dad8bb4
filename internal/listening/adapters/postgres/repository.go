package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"audio-tour-service/internal/listening/core/domain"
	"audio-tour-service/internal/listening/core/ports"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type ListeningRepository struct {
	db DB
}

func NewListeningRepository(db DB) *ListeningRepository {
	return &ListeningRepository{db: db}
}

var _ ports.ListeningRepositoryPort = (*ListeningRepository)(nil)

const foreignKeyViolation = pq.ErrorCode("23503")

const insertListeningSQL = `
INSERT INTO listening (
    user_id,
    excursion_point_id,
    date_listening,
    dedupe_key
) VALUES ($1, $2, $3, $4)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *ListeningRepository) InsertListening(ctx context.Context, l *domain.Listening) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertListeningSQL,
		l.UserID,
		l.ExcursionPointID,
		l.ListenedAt,
		l.DedupeKey,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return false, fmt.Errorf("insert listening: %w", domain.ErrUnknownExcursionPoint)
		}
		return false, fmt.Errorf("insert listening: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert listening: %w", err)
	}

	// rows == 0 -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}
