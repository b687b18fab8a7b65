// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Name       string          `gorm:"type:varchar(100);not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Period     string          `gorm:"type:varchar(20);not null;default:'monthly'"`
	StartDate  time.Time       `gorm:"type:date;not null"`
	EndDate    time.Time       `gorm:"type:date;not null"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	deletedAt := deletedAtTime(m.DeletedAt)

	return &entity.Budget{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Amount:     m.Amount,
		Period:     entity.BudgetPeriod(m.Period),
		CategoryID: m.CategoryID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// ToEntityWithCategory converts a BudgetModel with its preloaded Category.
func (m *BudgetModel) ToEntityWithCategory() *entity.BudgetWithCategory {
	result := &entity.BudgetWithCategory{Budget: m.ToEntity()}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	deletedAt := deletedAtColumn(budget.DeletedAt)

	return &BudgetModel{
		ID:         budget.ID,
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Name:       budget.Name,
		Amount:     budget.Amount,
		Period:     string(budget.Period),
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}
