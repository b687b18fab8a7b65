package analytics

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
)

var foodID = uuid.MustParse("8f4a1d2e-0000-4000-8000-000000000001")

func income(amount int64, d int) TransactionRecord {
	return TransactionRecord{ID: uuid.New(), Amount: decimal.NewFromInt(amount), Type: entity.TransactionTypeIncome, Date: date(2024, 1, d)}
}

func expense(amount int64, d int, categoryID *uuid.UUID, name string) TransactionRecord {
	return TransactionRecord{
		ID:           uuid.New(),
		Amount:       decimal.NewFromInt(amount),
		Type:         entity.TransactionTypeExpense,
		Date:         date(2024, 1, d),
		CategoryID:   categoryID,
		CategoryName: name,
	}
}

func scenarioTransactions() []TransactionRecord {
	return []TransactionRecord{
		income(1000, 5),
		expense(300, 10, &foodID, "Food"),
		expense(200, 20, &foodID, "Food"),
	}
}

func TestAggregate_JanuaryScenario(t *testing.T) {
	summary := Aggregate(scenarioTransactions(), AggregateOptions{})

	if !summary.TotalIncome.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected total income 1000, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected total expenses 500, got %s", summary.TotalExpenses)
	}
	if !summary.NetIncome.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected net income 500, got %s", summary.NetIncome)
	}
	if summary.SavingsRate != 50 {
		t.Errorf("expected savings rate 50, got %v", summary.SavingsRate)
	}

	byName := summary.CategoryTotalsByName()
	if len(byName) != 1 || !byName["Food"].Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected category totals {Food: 500}, got %v", byName)
	}
	if summary.TopCategory == nil {
		t.Fatal("expected a top category")
	}
	if summary.TopCategory.Name != "Food" || !summary.TopCategory.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected top category Food/500, got %s/%s", summary.TopCategory.Name, summary.TopCategory.Amount)
	}
	if summary.TopCategory.Percentage != 100 {
		t.Errorf("expected Food share 100, got %v", summary.TopCategory.Percentage)
	}
	if summary.TransactionCount != 3 {
		t.Errorf("expected 3 transactions, got %d", summary.TransactionCount)
	}
}

func TestAggregate_TotalsArePartitionedByType(t *testing.T) {
	txns := []TransactionRecord{
		income(100, 1),
		income(250, 2),
		expense(40, 3, nil, ""),
		expense(60, 4, &foodID, "Food"),
		{Amount: decimal.NewFromInt(999), Type: "transfer", Date: date(2024, 1, 5)},
	}

	summary := Aggregate(txns, AggregateOptions{})

	if !summary.TotalIncome.Equal(decimal.NewFromInt(350)) {
		t.Errorf("expected income 350, got %s", summary.TotalIncome)
	}
	if !summary.TotalExpenses.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected expenses 100, got %s", summary.TotalExpenses)
	}
	if !summary.NetIncome.Equal(summary.TotalIncome.Sub(summary.TotalExpenses)) {
		t.Errorf("expected net = income - expenses, got %s", summary.NetIncome)
	}
	if summary.TransactionCount != 4 {
		t.Errorf("unknown types must be skipped, got count %d", summary.TransactionCount)
	}
}

func TestAggregate_SavingsRateWithoutIncome(t *testing.T) {
	tests := []struct {
		name string
		txns []TransactionRecord
	}{
		{name: "no transactions", txns: nil},
		{name: "only expenses", txns: []TransactionRecord{expense(500, 1, nil, "")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := Aggregate(tt.txns, AggregateOptions{})
			if summary.SavingsRate != 0 {
				t.Errorf("expected savings rate 0, got %v", summary.SavingsRate)
			}
			if !summary.NetIncome.Equal(summary.TotalExpenses.Neg()) {
				t.Errorf("expected net = -expenses, got %s", summary.NetIncome)
			}
			if summary.CategoryTotals == nil {
				t.Error("expected non-nil category totals")
			}
		})
	}
}

func TestAggregate_NegativeSavingsRate(t *testing.T) {
	summary := Aggregate([]TransactionRecord{income(100, 1), expense(150, 2, nil, "")}, AggregateOptions{})
	if summary.SavingsRate != -50 {
		t.Errorf("expected savings rate -50, got %v", summary.SavingsRate)
	}
}

func TestAggregate_UncategorizedFallback(t *testing.T) {
	orphan := uuid.New()
	txns := []TransactionRecord{
		expense(10, 1, nil, ""),
		expense(15, 2, &orphan, ""), // category join missing
	}

	summary := Aggregate(txns, AggregateOptions{})

	if len(summary.CategoryTotals) != 1 {
		t.Fatalf("expected a single uncategorized bucket, got %d", len(summary.CategoryTotals))
	}
	got := summary.CategoryTotals[0]
	if got.Name != UncategorizedLabel || got.Color != UncategorizedColor {
		t.Errorf("expected %s/%s, got %s/%s", UncategorizedLabel, UncategorizedColor, got.Name, got.Color)
	}
	if got.CategoryID != nil {
		t.Error("expected no category id on the uncategorized bucket")
	}
	if !got.Amount.Equal(decimal.NewFromInt(25)) || got.Count != 2 {
		t.Errorf("expected 25 over 2 transactions, got %s over %d", got.Amount, got.Count)
	}
}

func TestAggregate_TopCategory(t *testing.T) {
	rentID := uuid.New()

	t.Run("ties keep the first encountered", func(t *testing.T) {
		txns := []TransactionRecord{
			expense(100, 1, &rentID, "Rent"),
			expense(100, 2, &foodID, "Food"),
		}
		summary := Aggregate(txns, AggregateOptions{})
		if summary.TopCategory == nil || summary.TopCategory.Name != "Rent" {
			t.Errorf("expected Rent, got %+v", summary.TopCategory)
		}
	})

	t.Run("strictly greater replaces", func(t *testing.T) {
		txns := []TransactionRecord{
			expense(100, 1, &rentID, "Rent"),
			expense(101, 2, &foodID, "Food"),
		}
		summary := Aggregate(txns, AggregateOptions{})
		if summary.TopCategory == nil || summary.TopCategory.Name != "Food" {
			t.Errorf("expected Food, got %+v", summary.TopCategory)
		}
	})

	t.Run("uncategorized can be excluded", func(t *testing.T) {
		txns := []TransactionRecord{
			expense(900, 1, nil, ""),
			expense(100, 2, &foodID, "Food"),
		}
		summary := Aggregate(txns, AggregateOptions{ExcludeUncategorizedFromTop: true})
		if summary.TopCategory == nil || summary.TopCategory.Name != "Food" {
			t.Errorf("expected Food, got %+v", summary.TopCategory)
		}
	})

	t.Run("no expenses means no top category", func(t *testing.T) {
		summary := Aggregate([]TransactionRecord{income(100, 1)}, AggregateOptions{})
		if summary.TopCategory != nil {
			t.Errorf("expected nil, got %+v", summary.TopCategory)
		}
	})
}

func TestAggregate_IncomeGrouping(t *testing.T) {
	salaryID := uuid.New()
	salary := income(3000, 1)
	salary.CategoryID = &salaryID
	salary.CategoryName = "Salary"

	summary := Aggregate([]TransactionRecord{salary, income(1000, 2), expense(50, 3, &foodID, "Food")},
		AggregateOptions{CategoryType: entity.TransactionTypeIncome})

	if len(summary.CategoryTotals) != 2 {
		t.Fatalf("expected 2 income buckets, got %d", len(summary.CategoryTotals))
	}
	if summary.CategoryTotals[0].Name != "Salary" || summary.CategoryTotals[0].Percentage != 75 {
		t.Errorf("expected Salary at 75%%, got %s at %v", summary.CategoryTotals[0].Name, summary.CategoryTotals[0].Percentage)
	}
	if summary.CategoryTotals[1].Percentage != 25 {
		t.Errorf("expected uncategorized income at 25%%, got %v", summary.CategoryTotals[1].Percentage)
	}
}

func TestSortCategoryTotals(t *testing.T) {
	totals := []CategoryTotal{
		{Name: "A", Amount: decimal.NewFromInt(10)},
		{Name: "B", Amount: decimal.NewFromInt(30)},
		{Name: "C", Amount: decimal.NewFromInt(10)},
	}

	sorted := SortCategoryTotals(totals)

	expected := []string{"B", "A", "C"}
	for i, name := range expected {
		if sorted[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, sorted[i].Name)
		}
	}
	if totals[0].Name != "A" {
		t.Error("expected the input slice to be left untouched")
	}
}

func TestRecordsFromTransactions(t *testing.T) {
	category := &entity.Category{ID: foodID, Name: "Food", Color: "#FF0000"}
	txn := entity.NewTransaction(uuid.New(), "Lunch", "", decimal.NewFromInt(30), entity.TransactionTypeExpense, date(2024, 1, 2), &foodID)

	records := RecordsFromTransactions([]*entity.TransactionWithCategory{
		{Transaction: txn, Category: category},
		nil,
		{Transaction: nil},
	})

	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].CategoryName != "Food" || records[0].CategoryColor != "#FF0000" {
		t.Errorf("expected category fields to be flattened, got %+v", records[0])
	}
}
