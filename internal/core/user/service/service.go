package userapp

import (
	"context"
	"strings"

	"socialgraph/internal/core/apperr"
	userEntity "socialgraph/internal/core/user"
	postPort "socialgraph/internal/ports/post"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// UserService سرویس مدیریت کاربران
type UserService struct {
	UserRepository userPort.UserRepository
	PostRepository postPort.PostRepository
	Logger         *zap.Logger
}

func NewUserService(userRepo userPort.UserRepository, postRepo postPort.PostRepository, logger *zap.Logger) *UserService {
	return &UserService{
		UserRepository: userRepo,
		PostRepository: postRepo,
		Logger:         logger,
	}
}

// CreateUser نام تکراری مجاز است
func (s *UserService) CreateUser(ctx context.Context, name string) (*userPort.UserDTO, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperr.InvalidArgument("name is required")
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:   uuid.Must(uuid.NewV4()),
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("✅ User created", zap.String("userID", u.ID.String()))
	return userPort.ToDTO(u), nil
}

// GetUserPosts عنوان پست‌های یک کاربر
func (s *UserService) GetUserPosts(ctx context.Context, userID string) (*userPort.UserPostsDTO, error) {
	u, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts, err := s.PostRepository.FindByUserID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(posts))
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	return &userPort.UserPostsDTO{User: u.Name, Posts: titles}, nil
}

func (s *UserService) GetPostCounts(ctx context.Context) ([]*userPort.PostCountDTO, error) {
	counts, err := s.UserRepository.PostCounts(ctx)
	if err != nil {
		return nil, err
	}
	if counts == nil {
		counts = []*userPort.PostCountDTO{}
	}
	return counts, nil
}

func (s *UserService) findUser(ctx context.Context, rawID string) (*userEntity.User, error) {
	id, err := apperr.ParseID("user", rawID)
	if err != nil {
		return nil, err
	}
	return FindUser(ctx, s.UserRepository, id)
}

// FindUser کاربر را می‌خواند و نبودنش را به NotFound با پیام "User not found" تبدیل می‌کند
func FindUser(ctx context.Context, repo userPort.UserRepository, id uuid.UUID) (*userEntity.User, error) {
	u, err := repo.FindByID(ctx, id)
	if apperr.KindOf(err) == apperr.ErrNotFound {
		return nil, apperr.NotFound("User not found")
	}
	return u, err
}
