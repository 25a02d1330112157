package feed

import (
	"context"
)

// FeedCache کش خوانی فید هر کاربر.
// هر Invalidate نسخه (generation) کلید را یکی زیاد می‌کند و Set فقط وقتی می‌نویسد
// که نسخه از زمان Get تغییر نکرده باشد؛ پس فیدی که قبل از باطل شدن ساخته شده کش نمی‌شود.
type FeedCache interface {
	// Get اگر کلید وجود نداشته باشد ok=false؛ gen در هر حالت نسخه فعلی است
	Get(ctx context.Context, userID string) (items []*FeedItemDTO, gen int64, ok bool, err error)
	Set(ctx context.Context, userID string, gen int64, items []*FeedItemDTO) error
	Invalidate(ctx context.Context, userIDs ...string) error
}

type FeedItemDTO struct {
	Author  string `json:"author"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type FeedDTO struct {
	User string         `json:"user"`
	Feed []*FeedItemDTO `json:"feed"`
}
