package subscriptionapp_test

import (
	"context"
	"testing"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/fanoutqueue"
	"socialgraph/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollow(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")

	msg, err := app.Subscriptions.Follow(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, "User "+a+" now follows user "+b, msg)
	assert.Contains(t, app.Cache.Invalidated, a)

	_, err = app.Subscriptions.Follow(ctx, a, b)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "Already following this user")

	followers, err := app.Subscriptions.GetFollowers(ctx, b)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, a, followers[0].ID)
	assert.Equal(t, "a", followers[0].Name)

	following, err := app.Subscriptions.GetFollowing(ctx, a)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, b, following[0].ID)

	// یال جهت‌دار است
	following, err = app.Subscriptions.GetFollowing(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, following)
}

func TestFollowSelf(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")

	_, err := app.Subscriptions.Follow(ctx, a, a)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
	assert.EqualError(t, err, "Cannot follow yourself")

	ghost := uuid.Must(uuid.NewV4()).String()
	_, err = app.Subscriptions.Follow(ctx, ghost, ghost)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestFollowUnknownUsers(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	ghost := uuid.Must(uuid.NewV4()).String()

	_, err := app.Subscriptions.Follow(ctx, a, ghost)
	assert.EqualError(t, err, "User not found")
	_, err = app.Subscriptions.Follow(ctx, ghost, a)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = app.Subscriptions.GetFollowers(ctx, ghost)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	_, err = app.Subscriptions.GetFollowing(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestFollowFailsWhenCacheInvalidationFails(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")

	app.Cache.SetFailInvalidate(1)
	_, err := app.Subscriptions.Follow(ctx, a, b)
	require.ErrorIs(t, err, testutil.ErrInvalidate)

	// یال و رکورد outbox هر دو برگشت خورده‌اند
	followers, err := app.Subscriptions.GetFollowers(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, followers)
	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	_, err = app.Subscriptions.Follow(ctx, a, b)
	require.NoError(t, err)
	followers, err = app.Subscriptions.GetFollowers(ctx, b)
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestFollowRecordsSubscriptionEvent(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")
	app.Cache.Invalidated = nil

	app.MustFollow(t, a, b)

	// یک بار داخل تراکنش و یک بار بعد از commit با dispatch
	assert.Equal(t, []string{a, a}, app.Cache.Invalidated)
	assert.Empty(t, app.Publisher.Published())
	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestFollowKeepsOutboxRecordWhenDispatchFails(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	a := app.MustUser(t, "a")
	b := app.MustUser(t, "b")

	// Invalidate داخل تراکنش موفق است و Invalidate بعد از commit شکست می‌خورد
	app.Cache.SetFailInvalidateAfter(1, 1)

	app.MustFollow(t, a, b)

	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, fanoutqueue.EventSubscriptionCreated, pending[0].Event)
	assert.Equal(t, a, pending[0].UserID.String())
	assert.Equal(t, b, pending[0].PostID.String())
	assert.Equal(t, 1, pending[0].Attempts)

	require.NoError(t, app.Fanout.Retry(ctx, pending[0]))
	pending, err = app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
