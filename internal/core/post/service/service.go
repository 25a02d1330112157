package postapp

import (
	"context"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/fanoutqueue"
	fanoutqueueapp "socialgraph/internal/core/fanoutqueue/service"
	postEntity "socialgraph/internal/core/post"
	userapp "socialgraph/internal/core/user/service"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	postPort "socialgraph/internal/ports/post"
	tagPort "socialgraph/internal/ports/tag"
	"socialgraph/internal/ports/uow"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

type PostService struct {
	PostRepository   postPort.PostRepository
	UserRepository   userPort.UserRepository
	TagRepository    tagPort.TagRepository
	FanoutRepository fanoutPort.FanoutRepository
	Fanout           *fanoutqueueapp.FanoutService
	Tx               uow.Transactor
	Logger           *zap.Logger
}

func NewPostService(
	postRepo postPort.PostRepository,
	userRepo userPort.UserRepository,
	tagRepo tagPort.TagRepository,
	fanoutRepo fanoutPort.FanoutRepository,
	fanout *fanoutqueueapp.FanoutService,
	tx uow.Transactor,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		PostRepository:   postRepo,
		UserRepository:   userRepo,
		TagRepository:    tagRepo,
		FanoutRepository: fanoutRepo,
		Fanout:           fanout,
		Tx:               tx,
		Logger:           logger,
	}
}

// CreatePost ایجاد پست و رکورد FanoutQueue در یک تراکنش
func (s *PostService) CreatePost(ctx context.Context, title, content, userID string) (*postPort.PostDTO, error) {
	uid, err := apperr.ParseID("user", userID)
	if err != nil {
		return nil, err
	}

	var created *postEntity.Post
	var record *fanoutqueue.FanoutQueue
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := userapp.FindUser(ctx, s.UserRepository, uid); err != nil {
			return err
		}

		p, err := s.PostRepository.Create(ctx, &postEntity.Post{
			ID:      uuid.Must(uuid.NewV4()),
			Title:   title,
			Content: content,
			UserID:  uid,
		})
		if err != nil {
			return notFoundAs(err, "User not found")
		}
		created = p

		record, err = s.FanoutRepository.Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
		return err
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("✅ Created post", zap.String("postID", created.ID.String()), zap.String("userID", userID))
	s.Fanout.Dispatch(ctx, record)
	return postPort.ToDTO(created), nil
}

// AttachTags همه یا هیچ: اگر یکی از تگ‌ها نباشد هیچ تگی اضافه نمی‌شود
func (s *PostService) AttachTags(ctx context.Context, postID string, tagIDs []string) (*postPort.PostDTO, error) {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return nil, err
	}

	// حذف شناسه‌های تکراری ورودی با حفظ ترتیب
	requested := make([]uuid.UUID, 0, len(tagIDs))
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	for _, raw := range tagIDs {
		id, err := apperr.ParseID("tag", raw)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			requested = append(requested, id)
		}
	}

	var result *postPort.PostDTO
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := FindPost(ctx, s.PostRepository, pid)
		if err != nil {
			return err
		}

		found, err := s.TagRepository.FindByIDs(ctx, requested)
		if err != nil {
			return err
		}
		if len(found) != len(requested) {
			return apperr.NotFound("Some tags not found")
		}

		attached, err := s.PostRepository.TagIDs(ctx, pid)
		if err != nil {
			return err
		}
		already := make(map[uuid.UUID]bool, len(attached))
		for _, id := range attached {
			already[id] = true
		}
		var missing []uuid.UUID
		for _, id := range requested {
			if !already[id] {
				missing = append(missing, id)
			}
		}
		if err := s.PostRepository.AttachTags(ctx, pid, missing); err != nil {
			return notFoundAs(err, "Some tags not found")
		}

		tags, err := s.PostRepository.Tags(ctx, pid)
		if err != nil {
			return err
		}
		result = postPort.ToDTO(p)
		result.Tags = tagPort.ToDTOs(tags)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostService) GetPostTags(ctx context.Context, postID string) ([]*tagPort.TagDTO, error) {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return nil, err
	}
	if _, err := FindPost(ctx, s.PostRepository, pid); err != nil {
		return nil, err
	}
	tags, err := s.PostRepository.Tags(ctx, pid)
	if err != nil {
		return nil, err
	}
	return tagPort.ToDTOs(tags), nil
}

// DeletePost حذف پست به همراه تگ‌ها، کامنت‌ها و لایک‌هایش
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	pid, err := apperr.ParseID("post", postID)
	if err != nil {
		return err
	}

	var record *fanoutqueue.FanoutQueue
	err = s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		p, err := FindPost(ctx, s.PostRepository, pid)
		if err != nil {
			return err
		}
		if err := s.PostRepository.Delete(ctx, pid); err != nil {
			return notFoundAs(err, "Post not found")
		}
		record, err = s.FanoutRepository.Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostDeleted, p))
		return err
	})
	if err != nil {
		return err
	}

	s.Logger.Info("🗑️ Deleted post", zap.String("postID", postID))
	s.Fanout.Dispatch(ctx, record)
	return nil
}

// FindPost پست را می‌خواند و نبودنش را به NotFound با پیام "Post not found" تبدیل می‌کند
func FindPost(ctx context.Context, repo postPort.PostRepository, id uuid.UUID) (*postEntity.Post, error) {
	p, err := repo.FindByID(ctx, id)
	if apperr.KindOf(err) == apperr.ErrNotFound {
		return nil, apperr.NotFound("Post not found")
	}
	return p, err
}

// notFoundAs یک NotFound از لایه ذخیره‌سازی (مثلاً نقض foreign key) را با پیام کاربر جایگزین می‌کند
func notFoundAs(err error, msg string) error {
	if apperr.KindOf(err) == apperr.ErrNotFound {
		return apperr.NotFound("%s", msg)
	}
	return err
}
