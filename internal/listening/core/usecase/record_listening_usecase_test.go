package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"audio-tour-service/internal/listening/core/domain"
	"audio-tour-service/internal/listening/core/usecase"
)

// Fake repository implementing ListeningRepositoryPort
type fakeListeningRepo struct {
	InsertFn func(ctx context.Context, l *domain.Listening) (bool, error)
	calls    []*domain.Listening
}

func (f *fakeListeningRepo) InsertListening(ctx context.Context, l *domain.Listening) (bool, error) {
	f.calls = append(f.calls, l)
	if f.InsertFn != nil {
		return f.InsertFn(ctx, l)
	}
	return true, nil
}

var fixedNow = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func newUseCase(repo *fakeListeningRepo) *usecase.RecordListeningUseCase {
	return usecase.NewRecordListeningUseCase(repo).WithClock(func() time.Time { return fixedNow })
}

// ------------------------------------------------------------
// SUCCESS
// ------------------------------------------------------------
func TestRecordListening_Success(t *testing.T) {
	repo := &fakeListeningRepo{}
	uc := newUseCase(repo)

	ts := fixedNow.Add(-time.Minute).Unix()
	created, err := uc.Execute(context.Background(), usecase.RecordListeningInput{
		UserID:           7,
		ExcursionPointID: 31,
		Timestamp:        ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}
	if len(repo.calls) != 1 {
		t.Fatalf("expected 1 insert, got %d", len(repo.calls))
	}

	got := repo.calls[0]
	if got.DedupeKey != "7|31|1710071940" {
		t.Fatalf("unexpected dedupe key %q", got.DedupeKey)
	}
	if !got.ListenedAt.Equal(time.Unix(ts, 0)) {
		t.Fatalf("unexpected listened_at %v", got.ListenedAt)
	}
}

func TestRecordListening_DefaultsToNow(t *testing.T) {
	repo := &fakeListeningRepo{}
	uc := newUseCase(repo)

	if _, err := uc.Execute(context.Background(), usecase.RecordListeningInput{UserID: 1, ExcursionPointID: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.calls[0].ListenedAt.Equal(fixedNow) {
		t.Fatalf("expected now, got %v", repo.calls[0].ListenedAt)
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------
func TestRecordListening_Invalid(t *testing.T) {
	uc := newUseCase(&fakeListeningRepo{
		InsertFn: func(ctx context.Context, l *domain.Listening) (bool, error) {
			t.Fatalf("repository must not be called for invalid input")
			return false, nil
		},
	})

	tests := []usecase.RecordListeningInput{
		{UserID: 0, ExcursionPointID: 1},
		{UserID: 1, ExcursionPointID: 0},
		{UserID: 1, ExcursionPointID: 1, Timestamp: -5},
	}
	for _, in := range tests {
		created, err := uc.Execute(context.Background(), in)
		if !errors.Is(err, usecase.ErrInvalidListening) {
			t.Fatalf("expected ErrInvalidListening for %+v, got %v", in, err)
		}
		if created {
			t.Fatalf("expected created=false")
		}
	}
}

func TestRecordListening_FutureTimestamp(t *testing.T) {
	uc := newUseCase(&fakeListeningRepo{})

	_, err := uc.Execute(context.Background(), usecase.RecordListeningInput{
		UserID:           1,
		ExcursionPointID: 1,
		Timestamp:        fixedNow.Add(time.Hour).Unix(),
	})
	if !errors.Is(err, usecase.ErrFutureTime) {
		t.Fatalf("expected ErrFutureTime, got %v", err)
	}
}

// ------------------------------------------------------------
// REPOSITORY ERROR
// ------------------------------------------------------------
func TestRecordListening_RepoError(t *testing.T) {
	uc := newUseCase(&fakeListeningRepo{
		InsertFn: func(ctx context.Context, l *domain.Listening) (bool, error) {
			return false, errors.New("db down")
		},
	})

	created, err := uc.Execute(context.Background(), usecase.RecordListeningInput{UserID: 1, ExcursionPointID: 1})
	if err == nil || created {
		t.Fatalf("expected error and created=false, got %v / %v", err, created)
	}
}

// ------------------------------------------------------------
// BULK
// ------------------------------------------------------------
func TestBulkRecord_MixedCreatedAndDuplicate(t *testing.T) {
	results := []bool{true, false, true}
	repo := &fakeListeningRepo{}
	repo.InsertFn = func(ctx context.Context, l *domain.Listening) (bool, error) {
		r := results[0]
		results = results[1:]
		return r, nil
	}
	uc := newUseCase(repo)

	ts := fixedNow.Add(-time.Minute).Unix()
	res, err := uc.BulkRecord(context.Background(), usecase.BulkRecordInput{
		Listenings: []usecase.RecordListeningInput{
			{UserID: 1, ExcursionPointID: 10, Timestamp: ts},
			{UserID: 1, ExcursionPointID: 10, Timestamp: ts},
			{UserID: 1, ExcursionPointID: 11, Timestamp: ts},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 1 {
		t.Fatalf("expected 2 created / 1 duplicate, got %+v", res)
	}
}

func TestBulkRecord_ValidatesBeforeInsert(t *testing.T) {
	repo := &fakeListeningRepo{}
	uc := newUseCase(repo)

	_, err := uc.BulkRecord(context.Background(), usecase.BulkRecordInput{
		Listenings: []usecase.RecordListeningInput{
			{UserID: 1, ExcursionPointID: 10},
			{UserID: 1, ExcursionPointID: 0},
		},
	})
	if !errors.Is(err, usecase.ErrInvalidListening) {
		t.Fatalf("expected ErrInvalidListening, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.calls))
	}
}
