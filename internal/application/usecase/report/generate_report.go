// Package report contains report generation use cases.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// ReportType selects how the report window is chosen.
type ReportType string

const (
	ReportTypeMonthly ReportType = "monthly"
	ReportTypeYearly  ReportType = "yearly"
	ReportTypeCustom  ReportType = "custom"
)

// IsValid reports whether t is a known report type.
func (t ReportType) IsValid() bool {
	switch t {
	case ReportTypeMonthly, ReportTypeYearly, ReportTypeCustom:
		return true
	}
	return false
}

// GenerateReportInput represents the input for generating a report.
type GenerateReportInput struct {
	UserID     uuid.UUID
	ReportType ReportType
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *uuid.UUID
}

// ReportSummary holds the totals of the report window.
type ReportSummary struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// ReportCategory is one line of the expense breakdown.
type ReportCategory struct {
	CategoryID *uuid.UUID
	Name       string
	Color      string
	Amount     decimal.Decimal
	Percentage float64
}

// ReportTransaction is one transaction listed in the report.
type ReportTransaction struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Amount       decimal.Decimal
	Type         entity.TransactionType
	Date         time.Time
	CategoryID   *uuid.UUID
	CategoryName string
}

// GenerateReportOutput represents a generated report.
type GenerateReportOutput struct {
	ReportType        ReportType
	StartDate         time.Time
	EndDate           time.Time
	Category          *entity.Category
	Summary           ReportSummary
	CategoryBreakdown []ReportCategory
	Transactions      []ReportTransaction
	GeneratedAt       time.Time
}

// GenerateReportUseCase handles report generation.
type GenerateReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute resolves the report window and aggregates the matching transactions.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	now := uc.clock.Now()

	period, err := reportPeriod(input, now)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	if input.CategoryID != nil {
		category, err = uc.findCategory(ctx, *input.CategoryID, input.UserID)
		if err != nil {
			return nil, err
		}
	}

	filter := adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &period.Start,
		EndDate:   &period.End,
	}
	if input.CategoryID != nil {
		filter.CategoryIDs = []uuid.UUID{*input.CategoryID}
	}

	txns, err := uc.transactionRepo.FindAllByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report transactions: %w", err)
	}

	summary := analytics.Aggregate(analytics.RecordsFromTransactions(txns), analytics.AggregateOptions{
		CategoryType: entity.TransactionTypeExpense,
	})

	breakdown := make([]ReportCategory, 0, len(summary.CategoryTotals))
	for _, ct := range analytics.SortCategoryTotals(summary.CategoryTotals) {
		breakdown = append(breakdown, ReportCategory{
			CategoryID: ct.CategoryID,
			Name:       ct.Name,
			Color:      ct.Color,
			Amount:     ct.Amount,
			Percentage: ct.Percentage,
		})
	}

	return &GenerateReportOutput{
		ReportType: input.ReportType,
		StartDate:  period.Start,
		EndDate:    period.End,
		Category:   category,
		Summary: ReportSummary{
			TotalIncome:      summary.TotalIncome,
			TotalExpenses:    summary.TotalExpenses,
			Balance:          summary.NetIncome,
			TransactionCount: summary.TransactionCount,
		},
		CategoryBreakdown: breakdown,
		Transactions:      toReportTransactions(txns),
		GeneratedAt:       now,
	}, nil
}

// reportPeriod picks the window. Monthly and yearly reports default to the
// calendar month or year of now; custom reports require both dates.
func reportPeriod(input GenerateReportInput, now time.Time) (analytics.Period, error) {
	if !input.ReportType.IsValid() {
		return analytics.Period{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportType,
			"report_type must be 'monthly', 'yearly' or 'custom'",
			domainerror.ErrInvalidReportType,
		)
	}

	hasStart, hasEnd := input.StartDate != nil, input.EndDate != nil

	if !hasStart && !hasEnd {
		today := analytics.TruncateDay(now)
		switch input.ReportType {
		case ReportTypeMonthly:
			start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
			return analytics.Period{Start: start, End: start.AddDate(0, 1, -1)}, nil
		case ReportTypeYearly:
			return analytics.Period{
				Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC),
			}, nil
		}
	}

	if !hasStart || !hasEnd {
		if input.ReportType == ReportTypeCustom {
			return analytics.Period{}, domainerror.NewReportError(
				domainerror.ErrCodeCustomDatesRequired,
				"custom reports require start_date and end_date",
				domainerror.ErrCustomReportDatesRequired,
			)
		}
		return analytics.Period{}, domainerror.NewReportError(
			domainerror.ErrCodeMissingReportFields,
			"start_date and end_date must be given together",
			nil,
		)
	}

	period, err := analytics.NewPeriod(*input.StartDate, *input.EndDate)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidPeriod) {
			return analytics.Period{}, domainerror.NewReportError(
				domainerror.ErrCodeInvalidReportRange,
				"end_date must not be before start_date",
				err,
			)
		}
		return analytics.Period{}, err
	}
	return period, nil
}

func (uc *GenerateReportUseCase) findCategory(ctx context.Context, id, userID uuid.UUID) (*entity.Category, error) {
	category, err := uc.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrCategoryNotFound) {
			return nil, domainerror.NewReportError(
				domainerror.ErrCodeReportCategoryNotFound,
				"category not found",
				domainerror.ErrCategoryNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	if category.UserID != userID {
		return nil, domainerror.NewReportError(
			domainerror.ErrCodeReportCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	return category, nil
}

func toReportTransactions(txns []*entity.TransactionWithCategory) []ReportTransaction {
	out := make([]ReportTransaction, 0, len(txns))
	for _, t := range txns {
		if t == nil || t.Transaction == nil {
			continue
		}
		item := ReportTransaction{
			ID:           t.Transaction.ID,
			Title:        t.Transaction.Title,
			Description:  t.Transaction.Description,
			Amount:       t.Transaction.Amount,
			Type:         t.Transaction.Type,
			Date:         t.Transaction.Date,
			CategoryID:   t.Transaction.CategoryID,
			CategoryName: analytics.UncategorizedLabel,
		}
		if t.Category != nil {
			item.CategoryName = t.Category.Name
		}
		out = append(out, item)
	}
	return out
}
