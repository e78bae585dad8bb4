package domain_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-tour-service/internal/statistics/core/domain"
)

func utc(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.UTC)
}

func endOfDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 23, 59, 59, 999999000, time.UTC)
}

func TestSegmentRange_Minutes(t *testing.T) {
	end := utc(2024, 3, 10, 12, 0)
	r := domain.DateRange{Start: end.Add(-50 * time.Minute), End: end}

	g, segs, err := domain.SegmentRange(r)
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMinutes, g)
	require.Len(t, segs, 4)

	first, _ := segs.At(1)
	last, _ := segs.At(4)
	assert.Equal(t, end.Add(-50*time.Minute), first.Start)
	assert.Equal(t, end.Add(-35*time.Minute), first.End)
	assert.Equal(t, end.Add(-5*time.Minute), last.Start)
	assert.Equal(t, end, last.End)
}

func TestSegmentRange_ExactQuarterHour(t *testing.T) {
	start := utc(2024, 3, 10, 9, 0)
	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: start.Add(15 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMinutes, g)
	require.Len(t, segs, 1)
	assert.Equal(t, start.Add(15*time.Minute), segs[0].End)
}

func TestSegmentRange_SixtyMinutesStaysInMinutes(t *testing.T) {
	start := utc(2024, 3, 10, 9, 0)
	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: start.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMinutes, g)
	assert.Len(t, segs, 4)
	assert.Equal(t, start.Add(time.Hour), segs.Last().End)
}

func TestSegmentRange_Hours(t *testing.T) {
	start := utc(2024, 3, 10, 6, 30)
	end := start.Add(7 * time.Hour)

	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityHours, g)
	require.Len(t, segs, 7)

	seventh, ok := segs.At(7)
	require.True(t, ok)
	assert.Equal(t, end, seventh.End)
	assert.Equal(t, start, segs[0].Start)
}

func TestSegmentRange_HoursPartialLastBucket(t *testing.T) {
	start := utc(2024, 3, 10, 6, 0)
	end := start.Add(61 * time.Minute)

	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityHours, g)
	require.Len(t, segs, 2)
	assert.Equal(t, start.Add(time.Hour), segs[0].End)
	assert.Equal(t, start.Add(time.Hour), segs[1].Start)
	assert.Equal(t, end, segs[1].End)
}

func TestSegmentRange_FullDayIsHours(t *testing.T) {
	start := utc(2024, 3, 10, 0, 0)
	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: start.Add(24 * time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityHours, g)
	assert.Len(t, segs, 24)
}

func TestSegmentRange_Days(t *testing.T) {
	start := utc(2024, 3, 4, 10, 0)
	end := utc(2024, 3, 7, 12, 0)

	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityDays, g)
	require.Len(t, segs, 4)

	assert.Equal(t, utc(2024, 3, 4, 0, 0), segs[0].Start)
	assert.Equal(t, utc(2024, 3, 5, 0, 0), segs[0].End)
	assert.Equal(t, utc(2024, 3, 7, 0, 0), segs[3].Start)
	assert.Equal(t, end, segs[3].End)
}

func TestSegmentRange_Weeks(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		count int
	}{
		{"ten days", utc(2024, 3, 1, 0, 0), utc(2024, 3, 11, 0, 0), 2},
		{"exact two weeks", utc(2024, 3, 1, 0, 0), utc(2024, 3, 15, 0, 0), 2},
		{"eight days", utc(2024, 3, 1, 0, 0), utc(2024, 3, 9, 0, 0), 2},
		{"unaligned start", utc(2024, 3, 1, 18, 0), utc(2024, 3, 30, 6, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, segs, err := domain.SegmentRange(domain.DateRange{Start: tt.start, End: tt.end})
			require.NoError(t, err)
			assert.Equal(t, domain.GranularityWeeks, g)
			require.Len(t, segs, tt.count)

			y, m, d := tt.start.Date()
			assert.Equal(t, time.Date(y, m, d, 0, 0, 0, 0, time.UTC), segs[0].Start)
			assert.Equal(t, segs[0].Start.AddDate(0, 0, 7), segs[0].End)
			assert.Equal(t, tt.end, segs.Last().End)
		})
	}
}

func TestSegmentRange_Months(t *testing.T) {
	r := domain.DateRange{Start: utc(2019, 5, 1, 0, 0), End: utc(2020, 4, 30, 0, 0)}

	g, segs, err := domain.SegmentRange(r)
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityMonths, g)
	require.Len(t, segs, 12)

	first, _ := segs.At(1)
	last, _ := segs.At(12)
	assert.Equal(t, utc(2019, 5, 1, 0, 0), first.Start)
	assert.Equal(t, endOfDay(2019, 5, 31), first.End)
	assert.Equal(t, utc(2020, 4, 1, 0, 0), last.Start)
	assert.Equal(t, endOfDay(2020, 4, 30), last.End)
	assert.Equal(t, r.End.AddDate(0, 0, 1).Add(-time.Microsecond), last.End)

	feb, _ := segs.At(10)
	assert.Equal(t, utc(2020, 2, 1, 0, 0), feb.Start)
	assert.Equal(t, endOfDay(2020, 2, 29), feb.End)
}

func TestSegmentRange_MonthsYearWrap(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantFirst time.Time
		wantLast  time.Time
		febIndex  int
		febEnd    time.Time
	}{
		{
			name:      "starts in november",
			start:     utc(2019, 11, 1, 0, 0),
			end:       utc(2020, 10, 31, 0, 0),
			wantFirst: utc(2019, 11, 1, 0, 0),
			wantLast:  endOfDay(2020, 10, 31),
			febIndex:  4,
			febEnd:    endOfDay(2020, 2, 29),
		},
		{
			name:      "starts in december",
			start:     utc(2022, 12, 1, 0, 0),
			end:       utc(2023, 11, 30, 0, 0),
			wantFirst: utc(2022, 12, 1, 0, 0),
			wantLast:  endOfDay(2023, 11, 30),
			febIndex:  3,
			febEnd:    endOfDay(2023, 2, 28),
		},
		{
			name:      "december before a leap year",
			start:     utc(2023, 12, 1, 0, 0),
			end:       utc(2024, 11, 30, 0, 0),
			wantFirst: utc(2023, 12, 1, 0, 0),
			wantLast:  endOfDay(2024, 11, 30),
			febIndex:  3,
			febEnd:    endOfDay(2024, 2, 29),
		},
		{
			name:      "starts in january without wrap",
			start:     utc(2021, 1, 1, 0, 0),
			end:       utc(2021, 12, 31, 0, 0),
			wantFirst: utc(2021, 1, 1, 0, 0),
			wantLast:  endOfDay(2021, 12, 31),
			febIndex:  2,
			febEnd:    endOfDay(2021, 2, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, segs, err := domain.SegmentRange(domain.DateRange{Start: tt.start, End: tt.end})
			require.NoError(t, err)
			assert.Equal(t, domain.GranularityMonths, g)
			require.Len(t, segs, 12)
			assert.Equal(t, tt.wantFirst, segs[0].Start)
			assert.Equal(t, tt.wantLast, segs.Last().End)

			feb, ok := segs.At(tt.febIndex)
			require.True(t, ok)
			assert.Equal(t, time.February, feb.Start.Month())
			assert.Equal(t, tt.febEnd, feb.End)

			for i := 1; i < len(segs); i++ {
				assert.Equal(t, segs[i-1].End.Add(time.Microsecond), segs[i].Start, "bucket %d", i+1)
			}
		})
	}
}

func TestSegmentRange_Unsegmentable(t *testing.T) {
	base := utc(2024, 3, 10, 12, 0)

	tests := []struct {
		name string
		r    domain.DateRange
	}{
		{"fourteen minutes", domain.DateRange{Start: base, End: base.Add(14 * time.Minute)}},
		{"four hundred days", domain.DateRange{Start: base, End: base.AddDate(0, 0, 400)}},
		{"exactly 367 days", domain.DateRange{Start: utc(2019, 5, 1, 0, 0), End: utc(2019, 5, 1, 0, 0).Add(367 * 24 * time.Hour)}},
		{"months not starting on the first", domain.DateRange{Start: utc(2019, 5, 15, 0, 0), End: utc(2019, 5, 15, 0, 0).AddDate(0, 0, 300)}},
		{"reversed", domain.DateRange{Start: base, End: base.Add(-time.Hour)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, segs, err := domain.SegmentRange(tt.r)
			require.ErrorIs(t, err, domain.ErrUnsegmentableRange)
			assert.Empty(t, g)
			assert.Nil(t, segs)
		})
	}
}

func TestSegmentRange_LinearBucketsAreContiguous(t *testing.T) {
	start := time.Date(2024, 1, 30, 17, 42, 13, 250000000, time.UTC)
	durations := []time.Duration{
		15 * time.Minute,
		37 * time.Minute,
		60*time.Minute + 59*time.Second,
		3*time.Hour + 7*time.Minute,
		24*time.Hour + time.Minute,
		5*24*time.Hour + 3*time.Hour,
		8 * 24 * time.Hour,
		20*24*time.Hour + 11*time.Hour,
		35*24*time.Hour + 23*time.Hour,
	}

	for _, d := range durations {
		end := start.Add(d)
		g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: end})
		require.NoError(t, err, d.String())
		require.NotEqual(t, domain.GranularityMonths, g)
		require.NotEmpty(t, segs)

		assert.False(t, segs[0].Start.After(start), d.String())
		assert.Equal(t, end, segs.Last().End, d.String())
		for i := 1; i < len(segs); i++ {
			assert.Equal(t, segs[i-1].End, segs[i].Start, "%s bucket %d", d, i+1)
			assert.True(t, segs[i].End.After(segs[i].Start), "%s bucket %d", d, i+1)
		}
	}
}

func TestSegments_At(t *testing.T) {
	segs := domain.Segments{{Start: utc(2024, 1, 1, 0, 0), End: utc(2024, 1, 2, 0, 0)}}

	_, ok := segs.At(0)
	assert.False(t, ok)
	_, ok = segs.At(2)
	assert.False(t, ok)
	s, ok := segs.At(1)
	assert.True(t, ok)
	assert.Equal(t, utc(2024, 1, 1, 0, 0), s.Start)
	assert.Equal(t, domain.Segment{}, domain.Segments(nil).Last())
}

func TestMonthBounds(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	s, e := domain.MonthBounds(2024, time.February, loc)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, loc), s)
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, loc), e)

	for year := 1999; year <= 2101; year++ {
		for m := time.January; m <= time.December; m++ {
			_, end := domain.MonthBounds(year, m, time.UTC)
			next := time.Date(year, m+1, 1, 0, 0, 0, 0, time.UTC)
			require.Equal(t, next.Add(-time.Microsecond), end, "%d-%02d", year, m)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, domain.IsLeapYear(2000))
	assert.True(t, domain.IsLeapYear(2024))
	assert.False(t, domain.IsLeapYear(1900))
	assert.False(t, domain.IsLeapYear(2100))
	assert.False(t, domain.IsLeapYear(2019))
}

func TestSegmentRange_MonthsLastBucketEnd(t *testing.T) {
	tests := []struct {
		name     string
		end      time.Time
		wantLast time.Time
	}{
		{"end inside twelfth month", utc(2020, 4, 15, 0, 0), endOfDay(2020, 4, 15)},
		{"end late in the day", utc(2020, 4, 15, 18, 30), endOfDay(2020, 4, 15)},
		{"end on the first of twelfth month", utc(2020, 4, 1, 0, 0), endOfDay(2020, 4, 1)},
		{"end past twelfth month", utc(2020, 5, 1, 0, 0), endOfDay(2020, 4, 30)},
		{"end before twelfth month", utc(2019, 9, 1, 0, 0), endOfDay(2020, 4, 30)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, segs, err := domain.SegmentRange(domain.DateRange{Start: utc(2019, 5, 1, 0, 0), End: tt.end})
			require.NoError(t, err)
			assert.Equal(t, domain.GranularityMonths, g)
			require.Len(t, segs, 12)

			last, _ := segs.At(12)
			assert.Equal(t, utc(2020, 4, 1, 0, 0), last.Start)
			assert.Equal(t, tt.wantLast, last.End)

			// the other eleven stay whole calendar months
			prev, _ := segs.At(11)
			assert.Equal(t, endOfDay(2020, 3, 31), prev.End)
		})
	}
}

func TestSegmentRange_DaysNearEightDayLimit(t *testing.T) {
	start := utc(2024, 3, 4, 23, 0)
	end := start.Add(8*24*time.Hour - time.Microsecond)

	g, segs, err := domain.SegmentRange(domain.DateRange{Start: start, End: end})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityDays, g)
	// every calendar day touched from 2024-03-04 through 2024-03-12
	require.Len(t, segs, 9)
	assert.Equal(t, utc(2024, 3, 4, 0, 0), segs[0].Start)
	assert.Equal(t, utc(2024, 3, 12, 0, 0), segs.Last().Start)
	assert.Equal(t, end, segs.Last().End)

	// one more microsecond leaves the days branch
	g, _, err = domain.SegmentRange(domain.DateRange{Start: start, End: end.Add(time.Microsecond)})
	require.NoError(t, err)
	assert.Equal(t, domain.GranularityWeeks, g)
}

func TestGranularity_Window(t *testing.T) {
	seg := domain.Segment{Start: utc(2024, 2, 1, 0, 0), End: endOfDay(2024, 2, 29)}

	from, to := domain.GranularityMonths.Window(seg)
	assert.Equal(t, seg.Start, from)
	assert.Equal(t, utc(2024, 3, 1, 0, 0), to)

	hour := domain.Segment{Start: utc(2024, 2, 1, 0, 0), End: utc(2024, 2, 1, 1, 0)}
	from, to = domain.GranularityHours.Window(hour)
	assert.Equal(t, hour.Start, from)
	assert.Equal(t, hour.End, to)
}
