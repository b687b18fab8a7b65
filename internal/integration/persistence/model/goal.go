// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/domain/entity"
)

// GoalModel represents the goals table in the database.
type GoalModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Title      string          `gorm:"type:varchar(255);not null"`
	Target     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Current    decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0"`
	Deadline   time.Time       `gorm:"type:date;not null"`
	Type       string          `gorm:"type:varchar(20);not null;default:'savings'"`
	CreatedAt  time.Time       `gorm:"not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
	DeletedAt  gorm.DeletedAt  `gorm:"index"` // Soft-delete support

	Category *CategoryModel `gorm:"foreignKey:CategoryID;references:ID"`
}

// TableName returns the table name for the GoalModel.
func (GoalModel) TableName() string {
	return "goals"
}

// ToEntity converts a GoalModel to a domain Goal entity.
func (m *GoalModel) ToEntity() *entity.Goal {
	deletedAt := deletedAtTime(m.DeletedAt)

	return &entity.Goal{
		ID:         m.ID,
		UserID:     m.UserID,
		Title:      m.Title,
		Target:     m.Target,
		Current:    m.Current,
		Deadline:   m.Deadline,
		Type:       entity.GoalType(m.Type),
		CategoryID: m.CategoryID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}

// ToEntityWithCategory converts a GoalModel with its preloaded Category.
func (m *GoalModel) ToEntityWithCategory() *entity.GoalWithCategory {
	result := &entity.GoalWithCategory{Goal: m.ToEntity()}
	if m.Category != nil {
		result.Category = m.Category.ToEntity()
	}
	return result
}

// GoalFromEntity creates a GoalModel from a domain Goal entity.
func GoalFromEntity(goal *entity.Goal) *GoalModel {
	deletedAt := deletedAtColumn(goal.DeletedAt)

	return &GoalModel{
		ID:         goal.ID,
		UserID:     goal.UserID,
		CategoryID: goal.CategoryID,
		Title:      goal.Title,
		Target:     goal.Target,
		Current:    goal.Current,
		Deadline:   goal.Deadline,
		Type:       string(goal.Type),
		CreatedAt:  goal.CreatedAt,
		UpdatedAt:  goal.UpdatedAt,
		DeletedAt:  deletedAt,
	}
}
