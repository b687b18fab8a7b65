package model

import (
	"time"

	"gorm.io/gorm"
)

// deletedAtTime maps gorm's soft-delete column onto the entities' optional timestamp.
func deletedAtTime(d gorm.DeletedAt) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func deletedAtColumn(t *time.Time) gorm.DeletedAt {
	if t == nil {
		return gorm.DeletedAt{}
	}
	return gorm.DeletedAt{Time: *t, Valid: true}
}
