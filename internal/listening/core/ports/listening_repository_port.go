package ports

import (
	"context"

	"audio-tour-service/internal/listening/core/domain"
)

type ListeningRepositoryPort interface {
	// InsertListening:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (idempotent)
	//   created = false, err != nil -> DB error
	InsertListening(ctx context.Context, l *domain.Listening) (created bool, err error)
}
