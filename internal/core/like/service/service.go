package likeapp

import (
	"context"

	"socialgraph/internal/core/apperr"
	likeEntity "socialgraph/internal/core/like"
	postapp "socialgraph/internal/core/post/service"
	userapp "socialgraph/internal/core/user/service"
	likePort "socialgraph/internal/ports/like"
	postPort "socialgraph/internal/ports/post"
	"socialgraph/internal/ports/uow"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type LikeService struct {
	LikeRepository likePort.LikeRepository
	PostRepository postPort.PostRepository
	UserRepository userPort.UserRepository
	Tx             uow.Transactor
	Logger         *zap.Logger
}

func NewLikeService(
	likeRepo likePort.LikeRepository,
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	tx uow.Transactor,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		LikeRepository: likeRepo,
		PostRepository: postRepo,
		UserRepository: userRepo,
		Tx:             tx,
		Logger:         logger,
	}
}

// LikePost لایک تکراری توسط ایندکس uniq_like_user_post به Conflict تبدیل می‌شود
func (s *LikeService) LikePost(ctx context.Context, postID, userID string) error {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return err
	}
	uid, err := apperr.ParseID("user", userID)
	if err != nil {
		return err
	}

	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := postapp.FindPost(ctx, s.PostRepository, pid); err != nil {
			return err
		}
		if _, err := userapp.FindUser(ctx, s.UserRepository, uid); err != nil {
			return err
		}

		_, err := s.LikeRepository.Create(ctx, &likeEntity.Like{
			ID:     uuid.Must(uuid.NewV4()),
			UserID: uid,
			PostID: pid,
		})
		switch apperr.KindOf(err) {
		case apperr.ErrConflict:
			return apperr.Conflict("User already liked this post")
		case apperr.ErrNotFound:
			return apperr.NotFound("Post not found")
		}
		return err
	})
	if err != nil {
		return err
	}

	s.Logger.Info("👍 Post liked", zap.String("postID", postID), zap.String("userID", userID))
	return nil
}

// GetPostLikes تعداد از روی ردیف‌ها شمرده می‌شود؛ شمارنده جداگانه‌ای نگه داشته نمی‌شود
func (s *LikeService) GetPostLikes(ctx context.Context, postID string) (*likePort.PostLikesDTO, error) {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return nil, err
	}
	if _, err := postapp.FindPost(ctx, s.PostRepository, pid); err != nil {
		return nil, err
	}

	names, err := s.LikeRepository.LikerNames(ctx, pid)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return &likePort.PostLikesDTO{
		PostID: pid.String(),
		Likes:  len(names),
		Users:  names,
	}, nil
}
