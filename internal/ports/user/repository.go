package user

import (
	"context"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

// UserRepository پورت برای ذخیره‌سازی و بازیابی کاربران
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	PostCounts(ctx context.Context) ([]*PostCountDTO, error)
}

// DTOها برای UseCase
type UserDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserPostsDTO struct {
	User  string   `json:"user"`
	Posts []string `json:"posts"`
}

type PostCountDTO struct {
	User      string `json:"user"`
	PostCount int64  `json:"post_count"`
}

func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{ID: u.ID.String(), Name: u.Name}
}
