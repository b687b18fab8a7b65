// Package analytics holds the pure aggregation functions behind every
// dashboard, budget, goal and report view. Nothing here performs I/O or keeps
// state; callers fetch records, pass a clock reading and render the result.
package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// Period keys accepted by ResolvePeriod.
const (
	PeriodCurrentMonth = "current-month"
	PeriodLastMonth    = "last-month"
	PeriodLast3Months  = "last-3-months"
	PeriodLast6Months  = "last-6-months"
	PeriodLastYear     = "last-year"
	PeriodCurrentYear  = "current-year"
)

// DateLayout is the calendar-day layout used for keys and query parameters.
const DateLayout = "2006-01-02"

// Period is a closed range of calendar days. Both Start and End are inclusive.
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod converts a symbolic key or a day count ("30 days", "30d", "30")
// into a concrete period ending today.
func ResolvePeriod(key string, now time.Time) (Period, error) {
	today := TruncateDay(now)
	key = strings.ToLower(strings.TrimSpace(key))

	switch key {
	case PeriodCurrentMonth:
		return Period{Start: time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	case PeriodLastMonth:
		return Period{Start: today.AddDate(0, -1, 0), End: today}, nil
	case PeriodLast3Months:
		return Period{Start: today.AddDate(0, -3, 0), End: today}, nil
	case PeriodLast6Months:
		return Period{Start: today.AddDate(0, -6, 0), End: today}, nil
	case PeriodLastYear:
		return Period{Start: today.AddDate(-1, 0, 0), End: today}, nil
	case PeriodCurrentYear:
		return Period{Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), End: today}, nil
	}

	days, ok := parseDayCount(key)
	if !ok {
		return Period{}, fmt.Errorf("%w: unknown key %q", domainerror.ErrInvalidPeriod, key)
	}
	return ResolveDays(days, now)
}

// ResolveDays returns the last n calendar days, today included.
func ResolveDays(n int, now time.Time) (Period, error) {
	if n <= 0 {
		return Period{}, fmt.Errorf("%w: day count must be positive, got %d", domainerror.ErrInvalidPeriod, n)
	}
	today := TruncateDay(now)
	return Period{Start: today.AddDate(0, 0, -(n - 1)), End: today}, nil
}

// NewPeriod builds an explicit period. Times are truncated to calendar days.
func NewPeriod(start, end time.Time) (Period, error) {
	p := Period{Start: TruncateDay(start), End: TruncateDay(end)}
	if p.Start.After(p.End) {
		return Period{}, fmt.Errorf("%w: start %s is after end %s",
			domainerror.ErrInvalidPeriod, p.Start.Format(DateLayout), p.End.Format(DateLayout))
	}
	return p, nil
}

// MonthWindow returns the n calendar months ending with the month of now,
// from the first day of the oldest month through today.
func MonthWindow(n int, now time.Time) (Period, error) {
	if n <= 0 {
		return Period{}, fmt.Errorf("%w: month count must be positive, got %d", domainerror.ErrInvalidPeriod, n)
	}
	today := TruncateDay(now)
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{Start: first.AddDate(0, -(n - 1), 0), End: today}, nil
}

// Contains reports whether t falls on a day inside the period.
func (p Period) Contains(t time.Time) bool {
	d := TruncateDay(t)
	return !d.Before(p.Start) && !d.After(p.End)
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Days returns the number of calendar days in the period.
func (p Period) Days() int {
	if p.IsZero() {
		return 0
	}
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// Months returns the number of calendar months the period touches.
func (p Period) Months() int {
	if p.IsZero() {
		return 0
	}
	return (p.End.Year()-p.Start.Year())*12 + int(p.End.Month()-p.Start.Month()) + 1
}

// TruncateDay returns midnight UTC of the calendar day t falls on in its own location.
func TruncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDayCount(key string) (int, bool) {
	s := strings.TrimSpace(key)
	switch {
	case strings.HasSuffix(s, "days"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "days"))
	case strings.HasSuffix(s, "day"):
		s = strings.TrimSpace(strings.TrimSuffix(s, "day"))
	case strings.HasSuffix(s, "d"):
		s = strings.TrimSuffix(s, "d")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
