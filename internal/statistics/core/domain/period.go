package domain

import "time"

// DateRange is the window a statistic is computed over. Start and End are kept
// exactly as supplied; nothing here reorders them.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// ResolvePeriod fills in a missing start or end relative to the ISO week that
// contains now. It never fails.
func ResolvePeriod(start, end *time.Time, now time.Time) DateRange {
	monday := startOfISOWeek(now)

	switch {
	case start == nil && end == nil:
		return DateRange{
			Start: monday,
			End:   monday.AddDate(0, 0, 7).Add(-time.Microsecond),
		}
	case start == nil:
		return DateRange{Start: monday, End: *end}
	case end == nil:
		return DateRange{Start: *start, End: now}
	default:
		return DateRange{Start: *start, End: *end}
	}
}

func startOfISOWeek(t time.Time) time.Time {
	// Monday = 0 ... Sunday = 6
	delta := (int(t.Weekday()) + 6) % 7
	return midnight(t).AddDate(0, 0, -delta)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
