package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"audio-tour-service/internal/listening/core/domain"
	"audio-tour-service/internal/listening/core/ports"
)

var (
	ErrInvalidListening = errors.New("invalid listening")
	ErrFutureTime       = errors.New("timestamp cannot be in the future")

	ErrUnknownExcursionPoint = domain.ErrUnknownExcursionPoint
)

type RecordListeningUseCase struct {
	repo ports.ListeningRepositoryPort
	now  func() time.Time
}

func NewRecordListeningUseCase(repo ports.ListeningRepositoryPort) *RecordListeningUseCase {
	return &RecordListeningUseCase{repo: repo, now: time.Now}
}

// WithClock replaces time.Now; tests only.
func (uc *RecordListeningUseCase) WithClock(now func() time.Time) *RecordListeningUseCase {
	uc.now = now
	return uc
}

type RecordListeningInput struct {
	UserID           int64
	ExcursionPointID int64
	// Timestamp is unix seconds; zero means now.
	Timestamp int64
}

func (uc *RecordListeningUseCase) Execute(ctx context.Context, in RecordListeningInput) (bool, error) {
	now := uc.now()
	if err := validateInput(in, now); err != nil {
		return false, err
	}

	listenedAt := now.UTC().Truncate(time.Second)
	if in.Timestamp != 0 {
		listenedAt = time.Unix(in.Timestamp, 0).UTC()
	}

	l := &domain.Listening{
		UserID:           in.UserID,
		ExcursionPointID: in.ExcursionPointID,
		ListenedAt:       listenedAt,
		DedupeKey:        buildDedupeKey(in.UserID, in.ExcursionPointID, listenedAt),
	}

	created, err := uc.repo.InsertListening(ctx, l)
	if err != nil {
		return false, err
	}
	return created, nil
}

func buildDedupeKey(userID, pointID int64, t time.Time) string {
	// user_id + excursion_point_id + unix_timestamp
	return fmt.Sprintf("%d|%d|%d", userID, pointID, t.Unix())
}

type BulkRecordInput struct {
	Listenings []RecordListeningInput
}

type BulkRecordResult struct {
	Created    int
	Duplicates int
}

// BulkRecord validates every item before inserting any of them.
func (uc *RecordListeningUseCase) BulkRecord(ctx context.Context, in BulkRecordInput) (BulkRecordResult, error) {
	var res BulkRecordResult

	now := uc.now()
	for i, l := range in.Listenings {
		if err := validateInput(l, now); err != nil {
			return res, fmt.Errorf("item %d: %w", i, err)
		}
	}

	for _, l := range in.Listenings {
		ok, err := uc.Execute(ctx, l)
		if err != nil {
			return res, err
		}
		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}
	return res, nil
}

func validateInput(in RecordListeningInput, now time.Time) error {
	if in.UserID <= 0 || in.ExcursionPointID <= 0 || in.Timestamp < 0 {
		return ErrInvalidListening
	}
	if in.Timestamp > now.Unix() {
		return ErrFutureTime
	}
	return nil
}
