package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// Granularity is the size of one series bucket.
type Granularity string

const (
	GranularityDay     Granularity = "day"
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// IsValid reports whether g is a supported granularity.
func (g Granularity) IsValid() bool {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityQuarter:
		return true
	}
	return false
}

// monthAbbreviations maps months to pt-BR short names.
var monthAbbreviations = map[time.Month]string{
	time.January:   "jan",
	time.February:  "fev",
	time.March:     "mar",
	time.April:     "abr",
	time.May:       "mai",
	time.June:      "jun",
	time.July:      "jul",
	time.August:    "ago",
	time.September: "set",
	time.October:   "out",
	time.November:  "nov",
	time.December:  "dez",
}

// SeriesPoint is one bucket of a time series.
type SeriesPoint struct {
	Key                string
	Label              string
	Start              time.Time
	End                time.Time
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	Net                decimal.Decimal
	CumulativeIncome   decimal.Decimal
	CumulativeExpenses decimal.Decimal
	Balance            decimal.Decimal // CumulativeIncome - CumulativeExpenses
}

// BuildSeries groups transactions into ascending buckets covering every
// calendar unit of the period. Buckets without transactions are zero valued.
// Records outside the period are ignored.
func BuildSeries(txns []TransactionRecord, period Period, g Granularity) ([]SeriesPoint, error) {
	if !g.IsValid() {
		return []SeriesPoint{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidGranularity, g)
	}
	if period.IsZero() || period.Start.After(period.End) {
		return []SeriesPoint{}, fmt.Errorf("%w: empty or inverted range", domainerror.ErrInvalidPeriod)
	}

	points := make([]SeriesPoint, 0, BucketCount(period, g))
	index := make(map[string]int)
	for current := BucketStart(period.Start, g); !current.After(period.End); current = nextBucket(current, g) {
		key := BucketKey(current, g)
		index[key] = len(points)
		points = append(points, SeriesPoint{
			Key:                key,
			Label:              BucketLabel(current, g),
			Start:              current,
			End:                nextBucket(current, g).AddDate(0, 0, -1),
			Income:             decimal.Zero,
			Expenses:           decimal.Zero,
			Net:                decimal.Zero,
			CumulativeIncome:   decimal.Zero,
			CumulativeExpenses: decimal.Zero,
			Balance:            decimal.Zero,
		})
	}

	for _, t := range txns {
		if !period.Contains(t.Date) {
			continue
		}
		i, ok := index[BucketKey(t.Date, g)]
		if !ok {
			continue
		}
		switch t.Type {
		case entity.TransactionTypeIncome:
			points[i].Income = points[i].Income.Add(t.Amount)
		case entity.TransactionTypeExpense:
			points[i].Expenses = points[i].Expenses.Add(t.Amount)
		}
	}

	cumIncome, cumExpenses := decimal.Zero, decimal.Zero
	for i := range points {
		cumIncome = cumIncome.Add(points[i].Income)
		cumExpenses = cumExpenses.Add(points[i].Expenses)
		points[i].Net = points[i].Income.Sub(points[i].Expenses)
		points[i].CumulativeIncome = cumIncome
		points[i].CumulativeExpenses = cumExpenses
		points[i].Balance = cumIncome.Sub(cumExpenses)
	}

	return points, nil
}

// BucketCount returns the number of buckets BuildSeries emits for the period.
func BucketCount(period Period, g Granularity) int {
	if !g.IsValid() || period.IsZero() || period.Start.After(period.End) {
		return 0
	}
	switch g {
	case GranularityDay:
		return period.Days()
	case GranularityWeek:
		first := BucketStart(period.Start, g)
		last := BucketStart(period.End, g)
		return int(last.Sub(first).Hours()/24)/7 + 1
	case GranularityMonth:
		return period.Months()
	default:
		startQ := period.Start.Year()*4 + (int(period.Start.Month())-1)/3
		endQ := period.End.Year()*4 + (int(period.End.Month())-1)/3
		return endQ - startQ + 1
	}
}

// BucketStart returns the first day of the bucket containing date.
// Weeks start on Monday.
func BucketStart(date time.Time, g Granularity) time.Time {
	d := TruncateDay(date)
	switch g {
	case GranularityWeek:
		weekday := int(d.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		return d.AddDate(0, 0, -(weekday - 1))
	case GranularityMonth:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case GranularityQuarter:
		quarter := (int(d.Month()) - 1) / 3
		return time.Date(d.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// BucketKey returns a stable, sortable key for the bucket containing date.
func BucketKey(date time.Time, g Granularity) string {
	start := BucketStart(date, g)
	switch g {
	case GranularityMonth:
		return start.Format("2006-01")
	case GranularityQuarter:
		return fmt.Sprintf("%d-Q%d", start.Year(), (int(start.Month())-1)/3+1)
	default:
		return start.Format(DateLayout)
	}
}

// BucketLabel returns the pt-BR display label for the bucket containing date.
// Formats: day "05/01", week "S12 2025", month "jan 2024", quarter "T1 2025".
func BucketLabel(date time.Time, g Granularity) string {
	start := BucketStart(date, g)
	switch g {
	case GranularityWeek:
		_, week := start.ISOWeek()
		return fmt.Sprintf("S%d %d", week, start.Year())
	case GranularityMonth:
		return fmt.Sprintf("%s %d", monthAbbreviations[start.Month()], start.Year())
	case GranularityQuarter:
		return fmt.Sprintf("T%d %d", (int(start.Month())-1)/3+1, start.Year())
	default:
		return start.Format("02/01")
	}
}

func nextBucket(start time.Time, g Granularity) time.Time {
	switch g {
	case GranularityWeek:
		return start.AddDate(0, 0, 7)
	case GranularityMonth:
		return start.AddDate(0, 1, 0)
	case GranularityQuarter:
		return start.AddDate(0, 3, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}
