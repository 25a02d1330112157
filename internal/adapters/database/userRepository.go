package database

import (
	"context"
	"socialgraph/internal/core/user"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepositoryDatabase پیاده‌سازی UserRepository برای دیتابیس
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase سازنده UserRepositoryDatabase
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := conn(ctx, repo.db).Omit(clause.Associations).Create(u).Error; err != nil {
		return nil, translate(err, "create user")
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var u user.User
	if err := conn(ctx, repo.db).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, translate(err, "find user")
	}
	return &u, nil
}

// PostCounts تعداد پست هر کاربر (کاربران بدون پست با صفر) در یک کوئری
func (repo *UserRepositoryDatabase) PostCounts(ctx context.Context) ([]*userPort.PostCountDTO, error) {
	var rows []struct {
		UserName  string
		PostCount int64
	}
	err := conn(ctx, repo.db).
		Table("users").
		Select("users.name AS user_name, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.user_id = users.id").
		Group("users.id, users.name, users.created_at").
		Order("users.created_at, users.id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err, "count posts per user")
	}

	counts := make([]*userPort.PostCountDTO, 0, len(rows))
	for _, r := range rows {
		counts = append(counts, &userPort.PostCountDTO{User: r.UserName, PostCount: r.PostCount})
	}
	return counts, nil
}
