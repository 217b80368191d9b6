package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"film-vault/internal/infra/database"
	"film-vault/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB 为每个测试创建独立的内存 sqlite 库并完成迁移
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s-%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), database.GormConfig(gormlogger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.All()...); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

// CreateMovie 插入一部测试电影
func CreateMovie(t *testing.T, db *gorm.DB, name string, opts ...func(*model.Movie)) *model.Movie {
	t.Helper()

	movie := &model.Movie{Name: name, UploadedAt: time.Now().UTC()}
	for _, opt := range opts {
		opt(movie)
	}
	if err := db.Create(movie).Error; err != nil {
		t.Fatalf("failed to create movie: %v", err)
	}
	return movie
}

// CreateGenre 插入一个类型
func CreateGenre(t *testing.T, db *gorm.DB, name string) *model.Genre {
	t.Helper()

	genre := &model.Genre{Name: name}
	if err := db.Create(genre).Error; err != nil {
		t.Fatalf("failed to create genre: %v", err)
	}
	return genre
}

// CreateUser 插入一个用户
func CreateUser(t *testing.T, db *gorm.DB, name, role string) *model.User {
	t.Helper()

	user := &model.User{UserName: name, UserRole: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}
