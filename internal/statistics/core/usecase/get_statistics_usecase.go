package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"audio-tour-service/internal/statistics/core/domain"
	"audio-tour-service/internal/statistics/core/ports"
)

var (
	ErrInvalidStatisticsKind = errors.New("invalid statistics kind")
	ErrInvalidTimeInterval   = domain.ErrUnsegmentableRange
)

// Recorder receives one observation per successfully aggregated statistic.
type Recorder interface {
	ObserveStatistics(kind, granularity string, segments int, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStatistics(string, string, int, time.Duration) {}

type GetStatisticsInput struct {
	Kind  domain.Kind
	Start *time.Time // optional
	End   *time.Time // optional
}

type GetStatisticsUseCase struct {
	reader      ports.StatisticsReaderPort
	now         func() time.Time
	loc         *time.Location
	concurrency int
	recorder    Recorder
}

type Option func(*GetStatisticsUseCase)

func WithClock(now func() time.Time) Option {
	return func(uc *GetStatisticsUseCase) { uc.now = now }
}

// WithLocation sets the zone used for week defaults, day alignment and
// calendar months.
func WithLocation(loc *time.Location) Option {
	return func(uc *GetStatisticsUseCase) { uc.loc = loc }
}

// WithConcurrency bounds how many segment queries run at once. Values below 2
// keep the queries sequential.
func WithConcurrency(n int) Option {
	return func(uc *GetStatisticsUseCase) { uc.concurrency = n }
}

func WithRecorder(r Recorder) Option {
	return func(uc *GetStatisticsUseCase) { uc.recorder = r }
}

func NewGetStatisticsUseCase(reader ports.StatisticsReaderPort, opts ...Option) *GetStatisticsUseCase {
	uc := &GetStatisticsUseCase{
		reader:      reader,
		now:         time.Now,
		loc:         time.UTC,
		concurrency: 1,
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

type segmentQuery func(ctx context.Context, from, to time.Time) (float64, error)

// Execute resolves the period, splits it into segments and asks the reader for
// one value per segment. No query is issued when the period cannot be split.
func (uc *GetStatisticsUseCase) Execute(ctx context.Context, in GetStatisticsInput) (*domain.Statistics, error) {
	query, ok := uc.queryFor(in.Kind)
	if !ok {
		return nil, ErrInvalidStatisticsKind
	}

	started := time.Now()

	period := domain.ResolvePeriod(uc.inLocation(in.Start), uc.inLocation(in.End), uc.now().In(uc.loc))

	granularity, segments, err := domain.SegmentRange(period)
	if err != nil {
		return nil, err
	}

	values := make([]float64, len(segments))
	if err := uc.collect(ctx, granularity, segments, query, values); err != nil {
		return nil, err
	}

	uc.recorder.ObserveStatistics(string(in.Kind), string(granularity), len(segments), time.Since(started))

	return &domain.Statistics{
		Kind:        in.Kind,
		Granularity: granularity,
		Period:      period,
		Segments:    segments,
		Values:      values,
	}, nil
}

// collect runs query over every segment's half-open window and stores the
// results by index.
func (uc *GetStatisticsUseCase) collect(ctx context.Context, g domain.Granularity, segments domain.Segments, query segmentQuery, values []float64) error {
	if uc.concurrency < 2 {
		for i, seg := range segments {
			from, to := g.Window(seg)
			v, err := query(ctx, from, to)
			if err != nil {
				return err
			}
			values[i] = v
		}
		return nil
	}

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)
	for i, seg := range segments {
		i := i
		from, to := g.Window(seg)
		eg.Go(func() error {
			v, err := query(gctx, from, to)
			if err != nil {
				return err
			}
			values[i] = v
			return nil
		})
	}
	return eg.Wait()
}

func (uc *GetStatisticsUseCase) queryFor(kind domain.Kind) (segmentQuery, bool) {
	switch kind {
	case domain.KindUsers:
		return countQuery(uc.reader.CountActiveUsers), true
	case domain.KindExcursions:
		return countQuery(uc.reader.CountPurchases), true
	case domain.KindListening:
		return countQuery(uc.reader.CountListenings), true
	case domain.KindSales:
		return uc.salesQuery, true
	default:
		return nil, false
	}
}

func countQuery(count func(ctx context.Context, from, to time.Time) (int64, error)) segmentQuery {
	return func(ctx context.Context, from, to time.Time) (float64, error) {
		n, err := count(ctx, from, to)
		if err != nil {
			return 0, err
		}
		return float64(n), nil
	}
}

func (uc *GetStatisticsUseCase) salesQuery(ctx context.Context, from, to time.Time) (float64, error) {
	sales, err := uc.reader.PurchasesByExcursion(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if len(sales) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(sales))
	for _, s := range sales {
		ids = append(ids, s.ExcursionID)
	}

	prices, err := uc.reader.ExcursionPrices(ctx, ids)
	if err != nil {
		return 0, err
	}

	return domain.SalesTotal(sales, prices).InexactFloat64(), nil
}

func (uc *GetStatisticsUseCase) inLocation(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(uc.loc)
	return &local
}
