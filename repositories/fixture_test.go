package repositories_test

import (
	"context"
	"strings"
	"testing"

	"gorm.io/gorm"

	"tellsapi/config"
	"tellsapi/database"
	"tellsapi/logger"
	"tellsapi/models"
	"tellsapi/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open(config.DBConfig{
		Driver:       "sqlite",
		DSN:          "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}, logger.Discard())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db.DB
}

func mustCreateUser(t *testing.T, users repositories.UserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{
		Email:    name + "@example.com",
		UserName: name,
		Password: "hash-" + name,
	}
	if err := users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}
