package feedapp_test

import (
	"context"
	"errors"
	"testing"

	"socialgraph/internal/core/apperr"
	feedPort "socialgraph/internal/ports/feed"
	"socialgraph/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeedEmpty(t *testing.T) {
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")

	feed, err := app.Feed.GetFeed(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, "a", feed.User)
	assert.NotNil(t, feed.Feed)
	assert.Empty(t, feed.Feed)
}

func TestGetFeedFollowedAuthorsNewestFirst(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	c := app.MustUser(t, "c")
	d := app.MustUser(t, "d")
	app.MustFollow(t, a, b)
	app.MustFollow(t, a, c)

	app.MustPost(t, b, "P1", "one")
	app.MustPost(t, c, "P2", "two")
	app.MustPost(t, d, "P3", "three")

	feed, err := app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []*feedPort.FeedItemDTO{
		{Author: "c", Title: "P2", Content: "two"},
		{Author: "b", Title: "P1", Content: "one"},
	}, feed.Feed)
}

func TestGetFeedCacheInvalidatedByNewPost(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	app.MustFollow(t, a, b)
	app.MustPost(t, b, "P1", "one")

	feed, err := app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 1)
	assert.True(t, app.Cache.Has(a))

	app.MustPost(t, b, "P2", "two")
	assert.False(t, app.Cache.Has(a))

	feed, err = app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 2)
	assert.Equal(t, "P2", feed.Feed[0].Title)
}

func TestGetFeedFallsBackWhenCacheFails(t *testing.T) {
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	app.MustFollow(t, a, b)
	app.MustPost(t, b, "P1", "one")
	app.Cache.Err = errors.New("redis down")

	feed, err := app.Feed.GetFeed(context.Background(), a)
	require.NoError(t, err)
	assert.Len(t, feed.Feed, 1)
}

func TestGetFeedUnknownUser(t *testing.T) {
	app := testutil.NewApp(t)

	_, err := app.Feed.GetFeed(context.Background(), uuid.Must(uuid.NewV4()).String())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.EqualError(t, err, "User not found")
}

func TestGetFeedDoesNotCacheFeedBuiltBeforeInvalidation(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	app.MustFollow(t, a, b)
	app.MustPost(t, b, "P1", "one")

	// پست جدید بین Get و Set کش می‌رسد و فید a را باطل می‌کند
	app.Cache.AfterGet = func(userID string) {
		app.Cache.AfterGet = nil
		app.MustPost(t, b, "P2", "two")
	}

	_, err := app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	assert.False(t, app.Cache.Has(a))

	feed, err := app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 2)
	assert.Equal(t, "P2", feed.Feed[0].Title)
	assert.True(t, app.Cache.Has(a))
}

func TestGetFeedAfterFailedFollowInvalidation(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	app.MustPost(t, b, "P1", "one")

	feed, err := app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	require.Empty(t, feed.Feed)
	require.True(t, app.Cache.Has(a))

	app.Cache.SetFailInvalidate(1)
	_, err = app.Subscriptions.Follow(ctx, a, b)
	require.ErrorIs(t, err, testutil.ErrInvalidate)

	// دنبال کردن انجام نشده پس فید کش‌شده خالی هنوز درست است
	feed, err = app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, feed.Feed)

	app.MustFollow(t, a, b)
	feed, err = app.Feed.GetFeed(ctx, a)
	require.NoError(t, err)
	require.Len(t, feed.Feed, 1)
	assert.Equal(t, "P1", feed.Feed[0].Title)
}
