package service

import (
	"BiuBiuStar/internal/model"
	"BiuBiuStar/internal/pkg/security"
	"BiuBiuStar/internal/repository"
	"context"
	"os"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	if err := security.Setup("test-secret", "biubiustar-test", 1); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{},
		&model.UserFollow{},
		&model.Post{},
		&model.PostComment{},
		&model.Like{},
		&model.Event{},
		&model.EventParticipant{},
		&model.PostModerationHistory{},
		&model.ContactForm{},
	)
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

type testRepos struct {
	user       repository.UserRepo
	follow     repository.UserFollowRepo
	post       repository.PostRepo
	action     repository.PostActionRepo
	event      repository.EventRepo
	moderation repository.ModerationRepo
	contact    repository.ContactRepo
}

func newTestRepos(db *gorm.DB) *testRepos {
	return &testRepos{
		user:       repository.NewUserRepo(db),
		follow:     repository.NewUserFollowRepo(db),
		post:       repository.NewPostRepo(db),
		action:     repository.NewPostActionRepo(db),
		event:      repository.NewEventRepo(db),
		moderation: repository.NewModerationRepo(db),
		contact:    repository.NewContactRepo(db),
	}
}

func createTestUserWithRepos(t *testing.T, repos *testRepos, username string) *model.User {
	t.Helper()
	hash, err := security.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &model.User{
		Email:    username + "@example.com",
		Username: username,
		Password: hash,
		Role:     "user",
	}
	if err = repos.user.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
