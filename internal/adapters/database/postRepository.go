package database

import (
	"context"
	"fmt"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/comment"
	"socialgraph/internal/core/like"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/tag"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase پیاده‌سازی PostRepository برای دیتابیس
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase سازنده PostRepositoryDatabase
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := conn(ctx, repo.db).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, translate(err, "create post")
	}
	return p, nil
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	var p post.Post
	if err := conn(ctx, repo.db).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, translate(err, "find post")
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*post.Post, error) {
	var posts []*post.Post
	if err := conn(ctx, repo.db).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&posts).Error; err != nil {
		return nil, translate(err, "find posts by user")
	}
	return posts, nil
}

// FindByAuthors پست‌های نویسندگان همراه با نام نویسنده (join روی users)، جدیدترین اول
func (repo *PostRepositoryDatabase) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*post.Post, error) {
	if len(authorIDs) == 0 {
		return []*post.Post{}, nil
	}
	var posts []*post.Post
	if err := conn(ctx, repo.db).
		Joins("User").
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, translate(err, "find posts by authors")
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByTagID(ctx context.Context, tagID uuid.UUID) ([]*post.Post, error) {
	var posts []*post.Post
	if err := conn(ctx, repo.db).
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id = ?", tagID).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, translate(err, "find posts by tag")
	}
	return posts, nil
}

// Delete باید داخل تراکنش صدا زده شود؛ ردیف‌های وابسته قبل از خود پست حذف می‌شوند
func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, repo.db)
	if err := db.Where("post_id = ?", id).Delete(&post.PostTag{}).Error; err != nil {
		return translate(err, "delete post tags")
	}
	if err := db.Where("post_id = ?", id).Delete(&comment.Comment{}).Error; err != nil {
		return translate(err, "delete post comments")
	}
	if err := db.Where("post_id = ?", id).Delete(&like.Like{}).Error; err != nil {
		return translate(err, "delete post likes")
	}
	res := db.Where("id = ?", id).Delete(&post.Post{})
	if res.Error != nil {
		return translate(res.Error, "delete post")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete post %s: %w", id, apperr.ErrNotFound)
	}
	return nil
}

func (repo *PostRepositoryDatabase) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := conn(ctx, repo.db).
		Model(&post.PostTag{}).
		Where("post_id = ?", postID).
		Pluck("tag_id", &ids).Error; err != nil {
		return nil, translate(err, "find post tag ids")
	}
	return ids, nil
}

func (repo *PostRepositoryDatabase) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return nil
	}
	db := conn(ctx, repo.db)
	var existing int64
	if err := db.Model(&post.PostTag{}).Where("post_id = ?", postID).Count(&existing).Error; err != nil {
		return translate(err, "count post tags")
	}
	rows := make([]*post.PostTag, 0, len(tagIDs))
	for i, tid := range tagIDs {
		rows = append(rows, &post.PostTag{PostID: postID, TagID: tid, Position: int(existing) + i})
	}
	if err := db.
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error; err != nil {
		return translate(err, "attach tags")
	}
	return nil
}

func (repo *PostRepositoryDatabase) Tags(ctx context.Context, postID uuid.UUID) ([]*tag.Tag, error) {
	var tags []*tag.Tag
	if err := conn(ctx, repo.db).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("post_tags.position, post_tags.created_at, tags.id").
		Find(&tags).Error; err != nil {
		return nil, translate(err, "find post tags")
	}
	return tags, nil
}
