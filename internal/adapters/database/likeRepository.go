package database

import (
	"context"

	"socialgraph/internal/core/like"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepositoryDatabase struct {
	db *gorm.DB
}

func NewLikeRepositoryDatabase(db *gorm.DB) *LikeRepositoryDatabase {
	return &LikeRepositoryDatabase{db: db}
}

// Create لایک تکراری با ایندکس uniq_like_user_post رد می‌شود
func (repo *LikeRepositoryDatabase) Create(ctx context.Context, l *like.Like) (*like.Like, error) {
	if err := conn(ctx, repo.db).Omit(clause.Associations).Create(l).Error; err != nil {
		return nil, translate(err, "create like")
	}
	return l, nil
}

func (repo *LikeRepositoryDatabase) LikerNames(ctx context.Context, postID uuid.UUID) ([]string, error) {
	names := []string{}
	if err := conn(ctx, repo.db).
		Model(&like.Like{}).
		Joins("JOIN users ON users.id = likes.user_id").
		Where("likes.post_id = ?", postID).
		Order("likes.created_at, likes.id").
		Pluck("users.name", &names).Error; err != nil {
		return nil, translate(err, "find likers")
	}
	return names, nil
}
