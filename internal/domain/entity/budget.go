// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetPeriod represents the recurrence label of a budget.
type BudgetPeriod string

const (
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// IsValid reports whether p is a known budget period.
func (p BudgetPeriod) IsValid() bool {
	return p == BudgetPeriodMonthly || p == BudgetPeriodYearly
}

// Budget is a spending limit over [StartDate, EndDate], optionally scoped to one category.
type Budget struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Period     BudgetPeriod
	CategoryID *uuid.UUID // nil means all categories
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewBudget creates a new Budget entity.
func NewBudget(
	userID uuid.UUID,
	name string,
	amount decimal.Decimal,
	period BudgetPeriod,
	categoryID *uuid.UUID,
	startDate, endDate time.Time,
) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		Amount:     amount,
		Period:     period,
		CategoryID: categoryID,
		StartDate:  startDate,
		EndDate:    endDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Covers reports whether an expense with the given category and date counts toward the budget.
func (b *Budget) Covers(categoryID *uuid.UUID, date time.Time) bool {
	if b.CategoryID != nil {
		if categoryID == nil || *categoryID != *b.CategoryID {
			return false
		}
	}
	return !date.Before(b.StartDate) && !date.After(b.EndDate)
}

// BudgetWithCategory represents a budget with its associated category.
type BudgetWithCategory struct {
	Budget   *Budget
	Category *Category
}
