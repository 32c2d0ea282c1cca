// Package testhelpers - общие помощники для тестов, production-код его не импортирует.
package testhelpers

import (
	"fmt"
	"net/url"
	"testing"

	"hrportal_backend/internal/database"

	"gorm.io/gorm"
)

// NewTestDB создает именованную in-memory SQLite базу с примененной схемой.
// Имя берется из t.Name(), поэтому параллельные тесты не видят данные друг друга.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)",
		url.PathEscape(t.Name()))

	db, err := database.Connect(database.Options{Driver: "sqlite", DSN: dsn, MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
