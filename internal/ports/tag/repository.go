package tag

import (
	"context"
	"socialgraph/internal/core/tag"

	"github.com/gofrs/uuid"
)

// TagRepository پورت برای ذخیره‌سازی و بازیابی تگ‌ها
type TagRepository interface {
	Create(ctx context.Context, tag *tag.Tag) (*tag.Tag, error)
	FindAll(ctx context.Context) ([]*tag.Tag, error)
	FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*tag.Tag, error)
	// Delete ردیف‌های post_tags مربوط را هم حذف می‌کند
	Delete(ctx context.Context, id uuid.UUID) error
}

type TagDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToDTO(t *tag.Tag) *TagDTO {
	return &TagDTO{ID: t.ID.String(), Name: t.Name}
}

func ToDTOs(tags []*tag.Tag) []*TagDTO {
	out := make([]*TagDTO, 0, len(tags))
	for _, t := range tags {
		out = append(out, ToDTO(t))
	}
	return out
}
