package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
)

// UncategorizedLabel groups transactions without a category or with a missing join.
const UncategorizedLabel = "Sem categoria"

// UncategorizedColor is the chart color used for UncategorizedLabel.
const UncategorizedColor = "#6B7280"

var hundred = decimal.NewFromInt(100)

// TransactionRecord is the flattened row every calculator consumes.
type TransactionRecord struct {
	ID            uuid.UUID
	Amount        decimal.Decimal
	Type          entity.TransactionType
	Date          time.Time
	CategoryID    *uuid.UUID
	CategoryName  string
	CategoryColor string
}

// RecordFromTransaction flattens a transaction and its optional category.
func RecordFromTransaction(t *entity.TransactionWithCategory) TransactionRecord {
	rec := TransactionRecord{
		ID:         t.Transaction.ID,
		Amount:     t.Transaction.Amount,
		Type:       t.Transaction.Type,
		Date:       t.Transaction.Date,
		CategoryID: t.Transaction.CategoryID,
	}
	if t.Category != nil {
		rec.CategoryName = t.Category.Name
		rec.CategoryColor = t.Category.Color
	}
	return rec
}

// RecordsFromTransactions flattens a slice of transactions.
func RecordsFromTransactions(txns []*entity.TransactionWithCategory) []TransactionRecord {
	records := make([]TransactionRecord, 0, len(txns))
	for _, t := range txns {
		if t == nil || t.Transaction == nil {
			continue
		}
		records = append(records, RecordFromTransaction(t))
	}
	return records
}

// CategoryTotal is the sum of one category inside the grouped subset.
type CategoryTotal struct {
	Name       string
	Color      string
	CategoryID *uuid.UUID
	Amount     decimal.Decimal
	Percentage float64 // Share of the grouped subset total, 0-100
	Count      int
}

// AggregateOptions tunes the category grouping pass.
type AggregateOptions struct {
	// CategoryType selects which subset is grouped by category. Defaults to expense.
	CategoryType entity.TransactionType
	// ExcludeUncategorizedFromTop keeps the uncategorized bucket out of TopCategory.
	ExcludeUncategorizedFromTop bool
}

// Summary is the aggregate of a list of transactions.
type Summary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetIncome        decimal.Decimal
	SavingsRate      float64
	CategoryTotals   []CategoryTotal // First-encountered order
	TopCategory      *CategoryTotal
	TransactionCount int
}

// CategoryTotalsByName returns the category sums keyed by resolved name.
func (s Summary) CategoryTotalsByName() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.CategoryTotals))
	for _, ct := range s.CategoryTotals {
		m[ct.Name] = ct.Amount
	}
	return m
}

// Aggregate computes totals by type, net income, savings rate and per-category sums.
// Records are expected to be already filtered to one user and one period.
func Aggregate(txns []TransactionRecord, opts AggregateOptions) Summary {
	groupType := opts.CategoryType
	if groupType == "" {
		groupType = entity.TransactionTypeExpense
	}

	summary := Summary{
		TotalIncome:    decimal.Zero,
		TotalExpenses:  decimal.Zero,
		CategoryTotals: []CategoryTotal{},
	}

	index := make(map[string]int)
	groupTotal := decimal.Zero

	for _, t := range txns {
		switch t.Type {
		case entity.TransactionTypeIncome:
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		case entity.TransactionTypeExpense:
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
		default:
			continue
		}
		summary.TransactionCount++

		if t.Type != groupType {
			continue
		}

		name, color := resolveCategory(t)
		i, ok := index[name]
		if !ok {
			i = len(summary.CategoryTotals)
			index[name] = i
			summary.CategoryTotals = append(summary.CategoryTotals, CategoryTotal{
				Name:       name,
				Color:      color,
				CategoryID: categoryIDFor(t),
				Amount:     decimal.Zero,
			})
		}
		summary.CategoryTotals[i].Amount = summary.CategoryTotals[i].Amount.Add(t.Amount)
		summary.CategoryTotals[i].Count++
		groupTotal = groupTotal.Add(t.Amount)
	}

	summary.NetIncome = summary.TotalIncome.Sub(summary.TotalExpenses)
	summary.SavingsRate = SavingsRate(summary.NetIncome, summary.TotalIncome)

	for i := range summary.CategoryTotals {
		summary.CategoryTotals[i].Percentage = Percentage(summary.CategoryTotals[i].Amount, groupTotal)
	}
	summary.TopCategory = topCategory(summary.CategoryTotals, opts.ExcludeUncategorizedFromTop)

	return summary
}

// SavingsRate returns net as a percentage of income, or 0 when there is no income.
func SavingsRate(net, income decimal.Decimal) float64 {
	if !income.IsPositive() {
		return 0
	}
	rate, _ := net.Div(income).Mul(hundred).Round(2).Float64()
	return rate
}

// Percentage returns part/total*100 rounded to two places, or 0 when total is not positive.
func Percentage(part, total decimal.Decimal) float64 {
	if !total.IsPositive() {
		return 0
	}
	pct, _ := part.Div(total).Mul(hundred).Round(2).Float64()
	return pct
}

// SortCategoryTotals returns a copy ordered by amount descending.
// Ties keep their first-encountered order.
func SortCategoryTotals(totals []CategoryTotal) []CategoryTotal {
	sorted := make([]CategoryTotal, len(totals))
	copy(sorted, totals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Amount.GreaterThan(sorted[j].Amount)
	})
	return sorted
}

// topCategory keeps the first entry on ties; only a strictly greater amount replaces it.
func topCategory(totals []CategoryTotal, skipUncategorized bool) *CategoryTotal {
	var top *CategoryTotal
	for i := range totals {
		if skipUncategorized && totals[i].CategoryID == nil {
			continue
		}
		if top == nil || totals[i].Amount.GreaterThan(top.Amount) {
			ct := totals[i]
			top = &ct
		}
	}
	return top
}

func resolveCategory(t TransactionRecord) (name, color string) {
	if t.CategoryID == nil || t.CategoryName == "" {
		return UncategorizedLabel, UncategorizedColor
	}
	color = t.CategoryColor
	if color == "" {
		color = UncategorizedColor
	}
	return t.CategoryName, color
}

func categoryIDFor(t TransactionRecord) *uuid.UUID {
	if t.CategoryID == nil || t.CategoryName == "" {
		return nil
	}
	id := *t.CategoryID
	return &id
}
