// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalType distinguishes savings goals from expense-reduction goals.
type GoalType string

const (
	// GoalTypeSavings rises toward the target.
	GoalTypeSavings GoalType = "savings"
	// GoalTypeExpense tracks staying under the target.
	GoalTypeExpense GoalType = "expense"
)

// IsValid reports whether t is a known goal type.
func (t GoalType) IsValid() bool {
	return t == GoalTypeSavings || t == GoalTypeExpense
}

// Goal represents a target financial milestone.
type Goal struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Title      string
	Target     decimal.Decimal
	Current    decimal.Decimal
	Deadline   time.Time
	Type       GoalType
	CategoryID *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time // Soft-delete support
}

// NewGoal creates a new Goal entity.
func NewGoal(
	userID uuid.UUID,
	title string,
	target, current decimal.Decimal,
	deadline time.Time,
	goalType GoalType,
	categoryID *uuid.UUID,
) *Goal {
	now := time.Now().UTC()

	return &Goal{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      title,
		Target:     target,
		Current:    current,
		Deadline:   deadline,
		Type:       goalType,
		CategoryID: categoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// GoalWithCategory represents a goal with its associated category.
type GoalWithCategory struct {
	Goal     *Goal
	Category *Category
}
