package domain

import (
	"errors"
	"math"
	"time"
)

// ErrUnsegmentableRange is returned for ranges that are too short, too long or,
// for month granularity, do not start on the first day of a month.
var ErrUnsegmentableRange = errors.New("invalid time interval")

type Granularity string

const (
	GranularityMinutes Granularity = "minutes"
	GranularityHours   Granularity = "hours"
	GranularityDays    Granularity = "days"
	GranularityWeeks   Granularity = "weeks"
	GranularityMonths  Granularity = "months"
)

const (
	day  = 24 * time.Hour
	week = 7 * day

	minSegmentable = 15 * time.Minute
	maxMinutes     = 61 * time.Minute
	maxHours       = day + time.Minute
	maxDays        = 8 * day
	maxWeeks       = 36 * day
	maxMonths      = 367 * day

	monthsPerRun = 12
)

// Segment is one bucket of a partitioned range. Start is inclusive, End is
// exclusive except for month buckets, whose End is the last microsecond of the
// month (or of the range end's day, for the final bucket).
type Segment struct {
	Start time.Time
	End   time.Time
}

// Segments is ordered; bucket numbers are 1-based.
type Segments []Segment

// At returns bucket number i (1-based).
func (s Segments) At(i int) (Segment, bool) {
	if i < 1 || i > len(s) {
		return Segment{}, false
	}
	return s[i-1], true
}

// Last returns the final bucket, or the zero Segment when s is empty.
func (s Segments) Last() Segment {
	if len(s) == 0 {
		return Segment{}
	}
	return s[len(s)-1]
}

// SegmentRange classifies r by its duration and splits it into buckets.
func SegmentRange(r DateRange) (Granularity, Segments, error) {
	start := r.Start.Truncate(time.Microsecond)
	end := r.End.Truncate(time.Microsecond)
	d := end.Sub(start)

	switch {
	case d < minSegmentable:
		return "", nil, ErrUnsegmentableRange

	case d < maxMinutes:
		n := round3(float64(d) / float64(15*time.Minute))
		return GranularityMinutes, linearSegments(start, end, 15*time.Minute, n), nil

	case d < maxHours:
		n := round3(float64(d) / float64(time.Hour))
		return GranularityHours, linearSegments(start, end, time.Hour, n), nil

	case d < maxDays:
		aligned := midnight(start)
		// whole calendar days touched, counted from the aligned midnight
		n := math.Ceil(round3(float64(end.Sub(aligned)) / float64(day)))
		return GranularityDays, linearSegments(aligned, end, day, n), nil

	case d < maxWeeks:
		n := math.Ceil(round3(float64(d) / float64(week)))
		return GranularityWeeks, linearSegments(midnight(start), end, week, n), nil

	case d < maxMonths:
		if start.Day() != 1 {
			return "", nil, ErrUnsegmentableRange
		}
		segs := monthSegments(start)
		// an end inside the last month cuts it at the end of that day
		if last := &segs[len(segs)-1]; !end.Before(last.Start) && !end.After(last.End) {
			last.End = midnight(end).AddDate(0, 0, 1).Add(-time.Microsecond)
		}
		return GranularityMonths, segs, nil

	default:
		return "", nil, ErrUnsegmentableRange
	}
}

// linearSegments emits fixed-width buckets from start while n > 0. The bucket
// emitted when less than one unit remains ends at rangeEnd, and the final
// bucket always does.
func linearSegments(start, rangeEnd time.Time, width time.Duration, n float64) Segments {
	var segs Segments
	for i := 0; n > 0; i, n = i+1, n-1 {
		s := start.Add(time.Duration(i) * width)
		e := s.Add(width)
		if n < 1 {
			e = rangeEnd
		}
		segs = append(segs, Segment{Start: s, End: e})
	}
	if len(segs) > 0 {
		segs[len(segs)-1].End = rangeEnd
	}
	return segs
}

// monthSegments builds the twelve calendar months beginning with start's month.
// The year advances once, on the first wrap past December.
func monthSegments(start time.Time) Segments {
	loc := start.Location()
	first := int(start.Month())
	year := start.Year()
	wrapped := false

	segs := make(Segments, 0, monthsPerRun)
	for i := 0; i < monthsPerRun; i++ {
		m := first + i
		if m > 12 {
			m -= 12
			if !wrapped {
				year++
				wrapped = true
			}
		}
		s, e := MonthBounds(year, time.Month(m), loc)
		segs = append(segs, Segment{Start: s, End: e})
	}
	return segs
}

var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthBounds returns midnight of the first day and the last microsecond of the
// last day of the given month.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	last := DaysInMonth(year, month)
	return time.Date(year, month, 1, 0, 0, 0, 0, loc),
		time.Date(year, month, last, 23, 59, 59, int(time.Second-time.Microsecond), loc)
}

func DaysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysInMonth[month-1]
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Window returns the half-open interval [from, to) that s covers. Month
// bucket ends are inclusive, so to is moved one microsecond past them.
func (g Granularity) Window(s Segment) (from, to time.Time) {
	if g == GranularityMonths {
		return s.Start, s.End.Add(time.Microsecond)
	}
	return s.Start, s.End
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
