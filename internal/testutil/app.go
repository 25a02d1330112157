// Package testutil wires every service over the in-memory store for tests.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"socialgraph/internal/adapters/memory"
	commentapp "socialgraph/internal/core/comment/service"
	fanoutqueueapp "socialgraph/internal/core/fanoutqueue/service"
	feedapp "socialgraph/internal/core/feed/service"
	likeapp "socialgraph/internal/core/like/service"
	postapp "socialgraph/internal/core/post/service"
	subscriptionapp "socialgraph/internal/core/subscription/service"
	tagapp "socialgraph/internal/core/tag/service"
	userapp "socialgraph/internal/core/user/service"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	feedPort "socialgraph/internal/ports/feed"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type App struct {
	Store     *memory.Store
	Cache     *FakeCache
	Publisher *FakePublisher

	Fanout        *fanoutqueueapp.FanoutService
	Users         *userapp.UserService
	Posts         *postapp.PostService
	Tags          *tagapp.TagService
	Comments      *commentapp.CommentService
	Likes         *likeapp.LikeService
	Subscriptions *subscriptionapp.SubscriptionService
	Feed          *feedapp.FeedService
}

// NewApp همه سرویس‌ها روی memory.Store با کش و publisher جعلی
func NewApp(t *testing.T) *App {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	cache := NewFakeCache()
	publisher := &FakePublisher{}

	fanout := fanoutqueueapp.NewFanoutService(store.Fanout(), store.Subscriptions(), cache, publisher, 2, logger)
	return &App{
		Store:         store,
		Cache:         cache,
		Publisher:     publisher,
		Fanout:        fanout,
		Users:         userapp.NewUserService(store.Users(), store.Posts(), logger),
		Posts:         postapp.NewPostService(store.Posts(), store.Users(), store.Tags(), store.Fanout(), fanout, store, logger),
		Tags:          tagapp.NewTagService(store.Tags(), store.Posts(), store, logger),
		Comments:      commentapp.NewCommentService(store.Comments(), store.Posts(), store, logger),
		Likes:         likeapp.NewLikeService(store.Likes(), store.Posts(), store.Users(), store, logger),
		Subscriptions: subscriptionapp.NewSubscriptionService(store.Subscriptions(), store.Users(), store.Fanout(), fanout, cache, store, logger),
		Feed:          feedapp.NewFeedService(store.Users(), store.Subscriptions(), store.Posts(), cache, logger),
	}
}

// MustUser ساخت کاربر و برگرداندن شناسه
func (a *App) MustUser(t *testing.T, name string) string {
	t.Helper()
	u, err := a.Users.CreateUser(context.Background(), name)
	require.NoError(t, err)
	return u.ID
}

func (a *App) MustPost(t *testing.T, userID, title, content string) string {
	t.Helper()
	p, err := a.Posts.CreatePost(context.Background(), title, content, userID)
	require.NoError(t, err)
	return p.ID
}

func (a *App) MustTag(t *testing.T, name string) string {
	t.Helper()
	tg, err := a.Tags.CreateTag(context.Background(), name)
	require.NoError(t, err)
	return tg.ID
}

func (a *App) MustFollow(t *testing.T, userID, targetID string) {
	t.Helper()
	_, err := a.Subscriptions.Follow(context.Background(), userID, targetID)
	require.NoError(t, err)
}

var _ feedPort.FeedCache = (*FakeCache)(nil)

// FakeCache کش فید درون‌حافظه‌ای با نسخه‌بندی که کلیدهای باطل‌شده را ثبت می‌کند
type FakeCache struct {
	mu          sync.Mutex
	items       map[string][]*feedPort.FeedItemDTO
	gens        map[string]int64
	Invalidated []string
	Err         error
	// FailInvalidate تعداد Invalidateهای بعدی که شکست می‌خورند؛
	// passInvalidate تعداد Invalidateهای موفقی که پیش از آن‌ها اجرا می‌شوند
	FailInvalidate int
	passInvalidate int
	// AfterGet بعد از هر Get و بیرون از قفل اجرا می‌شود
	AfterGet func(userID string)
}

func NewFakeCache() *FakeCache {
	return &FakeCache{
		items: map[string][]*feedPort.FeedItemDTO{},
		gens:  map[string]int64{},
	}
}

func (c *FakeCache) Get(_ context.Context, userID string) ([]*feedPort.FeedItemDTO, int64, bool, error) {
	c.mu.Lock()
	if c.Err != nil {
		c.mu.Unlock()
		return nil, 0, false, c.Err
	}
	items, ok := c.items[userID]
	gen := c.gens[userID]
	hook := c.AfterGet
	c.mu.Unlock()

	if hook != nil {
		hook(userID)
	}
	return items, gen, ok, nil
}

func (c *FakeCache) Set(_ context.Context, userID string, gen int64, items []*feedPort.FeedItemDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.gens[userID] != gen {
		return nil
	}
	c.items[userID] = items
	return nil
}

func (c *FakeCache) Invalidate(_ context.Context, userIDs ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.passInvalidate > 0 {
		c.passInvalidate--
	} else if c.FailInvalidate > 0 {
		c.FailInvalidate--
		return ErrInvalidate
	}
	for _, id := range userIDs {
		delete(c.items, id)
		c.gens[id]++
		c.Invalidated = append(c.Invalidated, id)
	}
	return nil
}

// ErrInvalidate خطای FakeCache وقتی FailInvalidate مثبت است
var ErrInvalidate = errors.New("cache unavailable")

// Has گزارش می‌دهد فید userID در کش هست یا نه
func (c *FakeCache) Has(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[userID]
	return ok
}

// SetFailInvalidate تعداد شکست‌های بعدی Invalidate را تنظیم می‌کند
func (c *FakeCache) SetFailInvalidate(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passInvalidate = 0
	c.FailInvalidate = n
}

// SetFailInvalidateAfter بعد از pass فراخوانی موفق، n فراخوانی شکست می‌خورد
func (c *FakeCache) SetFailInvalidateAfter(pass, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.passInvalidate = pass
	c.FailInvalidate = n
}

var _ fanoutPort.EventPublisher = (*FakePublisher)(nil)

// ErrPublish خطای پیش‌فرض FakePublisher وقتی FailNext مثبت است
var ErrPublish = errors.New("broker unavailable")

type FakePublisher struct {
	mu       sync.Mutex
	Messages []fanoutPort.FanoutMessage
	FailNext int // تعداد فراخوانی‌های بعدی که شکست می‌خورند
}

func (p *FakePublisher) Publish(_ context.Context, msg fanoutPort.FanoutMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailNext > 0 {
		p.FailNext--
		return ErrPublish
	}
	p.Messages = append(p.Messages, msg)
	return nil
}

func (p *FakePublisher) Published() []fanoutPort.FanoutMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]fanoutPort.FanoutMessage(nil), p.Messages...)
}

// SetFailNext تعداد شکست‌های بعدی را تنظیم می‌کند
func (p *FakePublisher) SetFailNext(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.FailNext = n
}
