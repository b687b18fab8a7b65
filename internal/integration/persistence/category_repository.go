// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// Create creates a new category in the database.
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Create(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByID retrieves a category by its ID.
func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// FindByUser retrieves the user's categories ordered by name, optionally filtered by type.
func (r *categoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if categoryType != nil {
		query = query.Where("type = ?", string(*categoryType))
	}

	var categoryModels []model.CategoryModel
	if err := query.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	return model.CategoriesToEntities(categoryModels), nil
}

// FindByIDs retrieves the user's categories with the given IDs.
func (r *categoryRepository) FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Category, error) {
	if len(ids) == 0 {
		return []*entity.Category{}, nil
	}

	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	return model.CategoriesToEntities(categoryModels), nil
}

// ExistsByNameAndUser checks if a category with the given name exists for the user.
// The comparison ignores case.
func (r *categoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.CategoryModel{}).
		Where("user_id = ? AND LOWER(name) = LOWER(?)", userID, name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// Update updates an existing category in the database.
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	categoryModel := model.CategoryFromEntity(category)
	result := r.db.WithContext(ctx).Save(categoryModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete soft-deletes a category and detaches every row that references it.
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.TransactionModel{}, &model.BudgetModel{}, &model.GoalModel{}} {
			if err := tx.Model(m).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.CategoryModel{}, "id = ?", id).Error
	})
}

// GetTransactionStats retrieves transaction statistics for categories within a date range.
// Every requested category is present in the result, with zero stats when it has no transactions.
func (r *categoryRepository) GetTransactionStats(ctx context.Context, categoryIDs []uuid.UUID, startDate, endDate time.Time) (map[uuid.UUID]*adapter.CategoryStats, error) {
	stats := make(map[uuid.UUID]*adapter.CategoryStats, len(categoryIDs))
	for _, id := range categoryIDs {
		stats[id] = &adapter.CategoryStats{PeriodTotal: decimal.Zero}
	}
	if len(categoryIDs) == 0 {
		return stats, nil
	}

	var rows []struct {
		CategoryID       uuid.UUID
		TransactionCount int
		PeriodTotal      decimal.Decimal
	}
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category_id, COUNT(*) AS transaction_count, COALESCE(SUM(amount), 0) AS period_total").
		Where("category_id IN ?", categoryIDs).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Group("category_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		if st, ok := stats[row.CategoryID]; ok {
			st.TransactionCount = row.TransactionCount
			st.PeriodTotal = row.PeriodTotal
		}
	}
	return stats, nil
}
