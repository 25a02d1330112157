package tagapp

import (
	"context"
	"strings"

	"socialgraph/internal/core/apperr"
	tagEntity "socialgraph/internal/core/tag"
	postPort "socialgraph/internal/ports/post"
	tagPort "socialgraph/internal/ports/tag"
	"socialgraph/internal/ports/uow"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type TagService struct {
	TagRepository  tagPort.TagRepository
	PostRepository postPort.PostRepository
	Tx             uow.Transactor
	Logger         *zap.Logger
}

func NewTagService(tagRepo tagPort.TagRepository, postRepo postPort.PostRepository, tx uow.Transactor, logger *zap.Logger) *TagService {
	return &TagService{
		TagRepository:  tagRepo,
		PostRepository: postRepo,
		Tx:             tx,
		Logger:         logger,
	}
}

// CreateTag نام تکراری (حساس به حروف) با ایندکس یکتا رد می‌شود، نه با خواندن قبلی
func (s *TagService) CreateTag(ctx context.Context, name string) (*tagPort.TagDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("name is required")
	}

	t, err := s.TagRepository.Create(ctx, &tagEntity.Tag{
		ID:   uuid.Must(uuid.NewV4()),
		Name: name,
	})
	if apperr.KindOf(err) == apperr.ErrConflict {
		return nil, apperr.Conflict("Tag with this name already exists")
	}
	if err != nil {
		return nil, err
	}

	s.Logger.Info("✅ Tag created", zap.String("tagID", t.ID.String()), zap.String("name", t.Name))
	return tagPort.ToDTO(t), nil
}

func (s *TagService) ListTags(ctx context.Context) ([]*tagPort.TagDTO, error) {
	tags, err := s.TagRepository.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return tagPort.ToDTOs(tags), nil
}

func (s *TagService) GetPostsByTag(ctx context.Context, tagID string) ([]*postPort.PostDTO, error) {
	id, err := apperr.ParseID("tag", tagID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findTag(ctx, id); err != nil {
		return nil, err
	}
	posts, err := s.PostRepository.FindByTagID(ctx, id)
	if err != nil {
		return nil, err
	}
	return postPort.ToDTOs(posts), nil
}

// DeleteTag اتصال‌های post_tags هم در همان تراکنش حذف می‌شوند
func (s *TagService) DeleteTag(ctx context.Context, tagID string) error {
	id, err := apperr.ParseID("tag", tagID)
	if err != nil {
		return err
	}
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.findTag(ctx, id); err != nil {
			return err
		}
		err := s.TagRepository.Delete(ctx, id)
		if apperr.KindOf(err) == apperr.ErrNotFound {
			return apperr.NotFound("Tag not found")
		}
		return err
	})
	if err != nil {
		return err
	}
	s.Logger.Info("🗑️ Tag deleted", zap.String("tagID", tagID))
	return nil
}

func (s *TagService) findTag(ctx context.Context, id uuid.UUID) (*tagEntity.Tag, error) {
	t, err := s.TagRepository.FindByID(ctx, id)
	if apperr.KindOf(err) == apperr.ErrNotFound {
		return nil, apperr.NotFound("Tag not found")
	}
	return t, err
}
