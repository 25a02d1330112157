package database

import (
	"context"
	"fmt"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/tag"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TagRepositoryDatabase پیاده‌سازی TagRepository برای دیتابیس
type TagRepositoryDatabase struct {
	db *gorm.DB
}

func NewTagRepositoryDatabase(db *gorm.DB) *TagRepositoryDatabase {
	return &TagRepositoryDatabase{db: db}
}

// Create تکراری بودن نام توسط uniq_tag_name تشخیص داده می‌شود
func (repo *TagRepositoryDatabase) Create(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	if err := conn(ctx, repo.db).Create(t).Error; err != nil {
		return nil, translate(err, "create tag")
	}
	return t, nil
}

func (repo *TagRepositoryDatabase) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	var tags []*tag.Tag
	if err := conn(ctx, repo.db).Order("created_at, id").Find(&tags).Error; err != nil {
		return nil, translate(err, "list tags")
	}
	return tags, nil
}

func (repo *TagRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	var t tag.Tag
	if err := conn(ctx, repo.db).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err, "find tag")
	}
	return &t, nil
}

func (repo *TagRepositoryDatabase) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*tag.Tag, error) {
	if len(ids) == 0 {
		return []*tag.Tag{}, nil
	}
	var tags []*tag.Tag
	if err := conn(ctx, repo.db).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, translate(err, "find tags")
	}
	return tags, nil
}

// Delete باید داخل تراکنش صدا زده شود
func (repo *TagRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, repo.db)
	if err := db.Where("tag_id = ?", id).Delete(&post.PostTag{}).Error; err != nil {
		return translate(err, "delete tag links")
	}
	res := db.Where("id = ?", id).Delete(&tag.Tag{})
	if res.Error != nil {
		return translate(res.Error, "delete tag")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete tag %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}
