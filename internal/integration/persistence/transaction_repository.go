// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/persistence/model"
)

// transactionRepository implements the adapter.TransactionRepository interface.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance.
func NewTransactionRepository(db *gorm.DB) adapter.TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

// Create creates a new transaction in the database.
func (r *transactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Create(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a transaction by its ID.
func (r *transactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntity(), nil
}

// FindByIDWithCategory retrieves a transaction with its category by ID.
func (r *transactionRepository) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	var transactionModel model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&transactionModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrTransactionNotFound
		}
		return nil, result.Error
	}
	return transactionModel.ToEntityWithCategory(), nil
}

// applyFilter adds the filter conditions to a query on the transactions table.
func applyFilter(query *gorm.DB, filter adapter.TransactionFilter) *gorm.DB {
	query = query.Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if len(filter.CategoryIDs) > 0 {
		query = query.Where("category_id IN ?", filter.CategoryIDs)
	}
	if filter.Type != nil {
		query = query.Where("type = ?", string(*filter.Type))
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", searchPattern, searchPattern)
	}
	return query
}

// FindByFilter retrieves transactions based on filter criteria with pagination.
func (r *transactionRepository) FindByFilter(ctx context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	offset := (pagination.Page - 1) * pagination.Limit
	totalPages := int((total + int64(pagination.Limit) - 1) / int64(pagination.Limit))
	if totalPages == 0 {
		totalPages = 1
	}

	var transactionModels []model.TransactionModel
	result := query.
		Preload("Category").
		Order("date DESC, created_at DESC").
		Offset(offset).
		Limit(pagination.Limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return &adapter.TransactionListResult{
		Transactions: toEntitiesWithCategory(transactionModels),
		Total:        total,
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

// FindAllByFilter retrieves every transaction matching the filter with its category.
func (r *transactionRepository) FindAllByFilter(ctx context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter).
		Preload("Category").
		Order("date DESC, created_at DESC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntitiesWithCategory(transactionModels), nil
}

// FindRecent retrieves the user's latest transactions.
func (r *transactionRepository) FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("date DESC, created_at DESC").
		Limit(limit).
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toEntitiesWithCategory(transactionModels), nil
}

// GetTotals calculates totals for transactions based on filter criteria.
func (r *transactionRepository) GetTotals(ctx context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&model.TransactionModel{}), filter)

	sumByType := func(t entity.TransactionType) (decimal.Decimal, error) {
		var row struct {
			Total decimal.Decimal
		}
		err := query.Session(&gorm.Session{}).
			Where("type = ?", string(t)).
			Select("COALESCE(SUM(amount), 0) AS total").
			Scan(&row).Error
		return row.Total, err
	}

	incomeTotal, err := sumByType(entity.TransactionTypeIncome)
	if err != nil {
		return nil, err
	}
	expenseTotal, err := sumByType(entity.TransactionTypeExpense)
	if err != nil {
		return nil, err
	}

	return &adapter.TransactionTotals{
		IncomeTotal:  incomeTotal,
		ExpenseTotal: expenseTotal,
		NetTotal:     incomeTotal.Sub(expenseTotal),
	}, nil
}

// GetDataRange returns the oldest and newest transaction dates for a user.
func (r *transactionRepository) GetDataRange(ctx context.Context, userID uuid.UUID) (*adapter.TransactionDataRange, error) {
	base := r.db.WithContext(ctx).Model(&model.TransactionModel{}).Where("user_id = ?", userID)

	var count int64
	if err := base.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return &adapter.TransactionDataRange{}, nil
	}

	var oldest, newest model.TransactionModel
	if err := base.Session(&gorm.Session{}).Select("date").Order("date ASC").Take(&oldest).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Select("date").Order("date DESC").Take(&newest).Error; err != nil {
		return nil, err
	}

	return &adapter.TransactionDataRange{
		OldestDate:      &oldest.Date,
		NewestDate:      &newest.Date,
		TotalCount:      count,
		HasTransactions: true,
	}, nil
}

// Update updates an existing transaction in the database.
func (r *transactionRepository) Update(ctx context.Context, transaction *entity.Transaction) error {
	transactionModel := model.TransactionFromEntity(transaction)
	result := r.db.WithContext(ctx).Save(transactionModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a transaction from the database.
func (r *transactionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// BulkDelete soft-deletes multiple transactions by their IDs.
func (r *transactionRepository) BulkDelete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	var deletedCount int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id IN ? AND user_id = ?", ids, userID).Delete(&model.TransactionModel{})
		if result.Error != nil {
			return result.Error
		}
		deletedCount = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deletedCount, nil
}

// ExistsAllByIDsAndUser checks if all transactions exist for the given IDs and user.
func (r *transactionRepository) ExistsAllByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count == int64(len(ids)), nil
}

// SumExpenses sums the user's expenses in [startDate, endDate], optionally for one category.
func (r *transactionRepository) SumExpenses(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	query := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("user_id = ? AND type = ?", userID, string(entity.TransactionTypeExpense)).
		Where("date >= ? AND date <= ?", startDate, endDate)
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var row struct {
		Total decimal.Decimal
	}
	if err := query.Select("COALESCE(SUM(amount), 0) AS total").Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

func toEntitiesWithCategory(models []model.TransactionModel) []*entity.TransactionWithCategory {
	transactions := make([]*entity.TransactionWithCategory, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntityWithCategory()
	}
	return transactions
}
