package db

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDatabase_MigrateAndHealth(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	database := NewDatabase(gdb)

	if err := database.AutoMigrate(); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	for _, table := range []string{"categories", "transactions", "budgets", "goals", "email_queue"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("expected table %s", table)
		}
	}

	if !database.HealthCheck(context.Background()) {
		t.Error("expected healthy database")
	}
	if err := database.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if database.HealthCheck(context.Background()) {
		t.Error("expected closed database to be unhealthy")
	}
}
