// Package transaction contains transaction-related use cases.
package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/application/usecase/alert"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

const (
	// MaxTitleLength is the maximum allowed length for transaction titles.
	MaxTitleLength = 255
	// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
	MaxDescriptionLength = 1000
)

// BudgetAlertChecker re-evaluates budgets after an expense is created.
type BudgetAlertChecker interface {
	Execute(ctx context.Context, input alert.CheckBudgetAlertsInput) (*alert.CheckBudgetAlertsOutput, error)
}

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID      uuid.UUID
	UserEmail   string
	Title       string
	Description string
	Amount      decimal.Decimal
	Type        entity.TransactionType
	Date        time.Time
	CategoryID  *uuid.UUID
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *TransactionOutput
}

// CreateTransactionUseCase handles transaction creation logic.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	alertChecker    BudgetAlertChecker
	cache           adapter.AnalyticsCache
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	alertChecker BudgetAlertChecker,
	cache adapter.AnalyticsCache,
) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		alertChecker:    alertChecker,
		cache:           cache,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	title := strings.TrimSpace(input.Title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(input.Description); err != nil {
		return nil, err
	}
	if err := validateAmount(input.Amount); err != nil {
		return nil, err
	}
	if err := validateType(input.Type); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required (YYYY-MM-DD)",
			domainerror.ErrInvalidTransactionDate,
		)
	}

	var category *entity.Category
	if input.CategoryID != nil {
		cat, err := findUserCategory(ctx, uc.categoryRepo, *input.CategoryID, input.UserID)
		if err != nil {
			return nil, err
		}
		category = cat
	}

	transaction := entity.NewTransaction(
		input.UserID,
		title,
		input.Description,
		input.Amount,
		input.Type,
		input.Date,
		input.CategoryID,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	invalidateCache(ctx, uc.cache, input.UserID)

	if transaction.IsExpense() && uc.alertChecker != nil {
		_, err := uc.alertChecker.Execute(ctx, alert.CheckBudgetAlertsInput{
			UserID:     input.UserID,
			UserEmail:  input.UserEmail,
			CategoryID: transaction.CategoryID,
			Date:       transaction.Date,
			Amount:     transaction.Amount,
		})
		if err != nil {
			slog.WarnContext(ctx, "budget alert check failed",
				"userID", input.UserID,
				"transactionID", transaction.ID,
				"error", err,
			)
		}
	}

	return &CreateTransactionOutput{
		Transaction: toTransactionOutput(transaction, category),
	}, nil
}

func validateTitle(title string) error {
	if title == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTitleRequired,
			"title is required",
			domainerror.ErrTitleRequired,
		)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeTitleTooLong,
			fmt.Sprintf("title must not exceed %d characters", MaxTitleLength),
			domainerror.ErrTitleTooLong,
		)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength),
			domainerror.ErrDescriptionTooLong,
		)
	}
	return nil
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

func validateType(transactionType entity.TransactionType) error {
	if !transactionType.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"transaction type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}
	return nil
}

// findUserCategory loads a category and checks it belongs to userID.
func findUserCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID, userID uuid.UUID) (*entity.Category, error) {
	category, err := repo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFoundForTransaction,
		)
	}
	if !category.IsOwnedBy(userID) {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeTxnCategoryNotOwned,
			"category does not belong to user",
			domainerror.ErrCategoryNotOwnedByUser,
		)
	}
	return category, nil
}

func invalidateCache(ctx context.Context, cache adapter.AnalyticsCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate analytics cache", "userID", userID, "error", err)
	}
}
