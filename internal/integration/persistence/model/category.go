// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
// Listing filters on (user_id, type); the duplicate-name check and the
// analytics joins filter on (user_id, name).
type CategoryModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index:idx_categories_user_type,priority:1;index:idx_categories_user_name,priority:1"`
	Name      string         `gorm:"type:varchar(50);not null;index:idx_categories_user_name,priority:2"`
	Color     string         `gorm:"type:varchar(7);not null;default:'#6366F1'"`
	Icon      string         `gorm:"type:varchar(50);not null;default:'folder'"`
	Type      string         `gorm:"type:varchar(10);not null;index:idx_categories_user_type,priority:2"`
	CreatedAt time.Time      `gorm:"not null"`
	UpdatedAt time.Time      `gorm:"not null"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts the row, filling color and icon left blank by older rows.
func (m *CategoryModel) ToEntity() *entity.Category {
	category := &entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Color:     m.Color,
		Icon:      m.Icon,
		Type:      entity.CategoryType(m.Type),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAtTime(m.DeletedAt),
	}
	if category.Color == "" {
		category.Color = entity.DefaultCategoryColor
	}
	if category.Icon == "" {
		category.Icon = entity.DefaultCategoryIcon
	}
	return category
}

// CategoriesToEntities converts a result set in order.
func CategoriesToEntities(models []CategoryModel) []*entity.Category {
	categories := make([]*entity.Category, len(models))
	for i := range models {
		categories[i] = models[i].ToEntity()
	}
	return categories
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Name:      category.Name,
		Color:     category.Color,
		Icon:      category.Icon,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
		DeletedAt: deletedAtColumn(category.DeletedAt),
	}
}
