package commentapp

import (
	"context"

	"socialgraph/internal/core/apperr"
	commentEntity "socialgraph/internal/core/comment"
	postapp "socialgraph/internal/core/post/service"
	commentPort "socialgraph/internal/ports/comment"
	postPort "socialgraph/internal/ports/post"
	"socialgraph/internal/ports/uow"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type CommentService struct {
	CommentRepository commentPort.CommentRepository
	PostRepository    postPort.PostRepository
	Tx                uow.Transactor
	Logger            *zap.Logger
}

func NewCommentService(commentRepo commentPort.CommentRepository, postRepo postPort.PostRepository, tx uow.Transactor, logger *zap.Logger) *CommentService {
	return &CommentService{
		CommentRepository: commentRepo,
		PostRepository:    postRepo,
		Tx:                tx,
		Logger:            logger,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, content, postID string) (*commentPort.CommentDTO, error) {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return nil, err
	}

	var created *commentEntity.Comment
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := postapp.FindPost(ctx, s.PostRepository, pid); err != nil {
			return err
		}
		c, err := s.CommentRepository.Create(ctx, &commentEntity.Comment{
			ID:      uuid.Must(uuid.NewV4()),
			Content: content,
			PostID:  pid,
		})
		if apperr.KindOf(err) == apperr.ErrNotFound {
			return apperr.NotFound("Post not found")
		}
		created = c
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("💬 Comment created", zap.String("commentID", created.ID.String()), zap.String("postID", postID))
	return commentPort.ToDTO(created), nil
}

// GetCommentsByPost به ترتیب ذخیره‌سازی
func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error) {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return nil, err
	}
	if _, err := postapp.FindPost(ctx, s.PostRepository, pid); err != nil {
		return nil, err
	}

	comments, err := s.CommentRepository.FindByPostID(ctx, pid)
	if err != nil {
		return nil, err
	}
	out := make([]*commentPort.CommentDTO, 0, len(comments))
	for _, c := range comments {
		out = append(out, commentPort.ToDTO(c))
	}
	return out, nil
}
