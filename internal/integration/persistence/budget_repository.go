// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create creates a new budget in the database.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Create(model.BudgetFromEntity(budget)).Error
}

// FindByID retrieves a budget by its ID.
func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUserID retrieves all budgets for a user with their categories, newest first.
func (r *budgetRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Preload("Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.BudgetWithCategory, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntityWithCategory()
	}
	return budgets, nil
}

// FindCovering retrieves the user's budgets that count an expense of categoryID on date.
func (r *budgetRepository) FindCovering(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, date time.Time) ([]*entity.Budget, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("start_date <= ? AND end_date >= ?", date, date)
	if categoryID != nil {
		query = query.Where("(category_id IS NULL OR category_id = ?)", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}

	var budgetModels []model.BudgetModel
	if err := query.Order("name ASC").Find(&budgetModels).Error; err != nil {
		return nil, err
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i := range budgetModels {
		budgets[i] = budgetModels[i].ToEntity()
	}
	return budgets, nil
}

// Update updates an existing budget in the database.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Save(model.BudgetFromEntity(budget)).Error
}

// Delete removes a budget from the database (soft delete).
func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id).Error
}
