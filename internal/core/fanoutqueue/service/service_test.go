package fanoutqueueapp_test

import (
	"context"
	"testing"
	"time"

	"socialgraph/internal/core/fanoutqueue"
	fanoutqueueapp "socialgraph/internal/core/fanoutqueue/service"
	"socialgraph/internal/core/post"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	"socialgraph/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessInvalidatesFollowersInBatches(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	author := app.MustUser(t, "author")
	var followers []string
	for _, name := range []string{"f1", "f2", "f3", "f4", "f5"} {
		id := app.MustUser(t, name)
		app.MustFollow(t, id, author)
		followers = append(followers, id)
	}
	app.Cache.Invalidated = nil

	p := &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.FromStringOrNil(author)}
	rec, err := app.Store.Fanout().Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
	require.NoError(t, err)

	require.NoError(t, app.Fanout.Process(ctx, rec))
	assert.ElementsMatch(t, followers, app.Cache.Invalidated)

	msgs := app.Publisher.Published()
	require.Len(t, msgs, 1)
	assert.Equal(t, p.ID.String(), msgs[0].PostID)

	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessRejectsInvalidRecord(t *testing.T) {
	app := testutil.NewApp(t)
	assert.Error(t, app.Fanout.Process(context.Background(), &fanoutqueue.FanoutQueue{}))
	assert.Error(t, app.Fanout.Process(context.Background(), nil))
}

func TestRetryRecordsAttempt(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	author := app.MustUser(t, "author")
	app.Publisher.SetFailNext(1)

	p := &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.FromStringOrNil(author)}
	rec, err := app.Store.Fanout().Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
	require.NoError(t, err)

	assert.ErrorIs(t, app.Fanout.Retry(ctx, rec), testutil.ErrPublish)
	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)

	require.NoError(t, app.Fanout.Retry(ctx, rec))
	pending, err = app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessSkipsClaimedRecord(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	author := app.MustUser(t, "author")

	p := &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.FromStringOrNil(author)}
	rec, err := app.Store.Fanout().Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
	require.NoError(t, err)

	ok, err := app.Store.Fanout().Claim(ctx, rec.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	assert.ErrorIs(t, app.Fanout.Process(ctx, rec), fanoutPort.ErrAlreadyClaimed)
	assert.Empty(t, app.Publisher.Published())

	// رکورد claim‌شده در GetPending نمی‌آید
	pending, err := app.Store.Fanout().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestProcessPublishesOnce(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	author := app.MustUser(t, "author")

	p := &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.FromStringOrNil(author)}
	rec, err := app.Store.Fanout().Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
	require.NoError(t, err)

	require.NoError(t, app.Fanout.Process(ctx, rec))
	assert.ErrorIs(t, app.Fanout.Process(ctx, rec), fanoutPort.ErrAlreadyClaimed)
	app.Fanout.Dispatch(ctx, rec)
	assert.Len(t, app.Publisher.Published(), 1)
}

func TestReleaseMakesRecordClaimableAgain(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	author := app.MustUser(t, "author")
	repo := app.Store.Fanout()

	p := &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.FromStringOrNil(author)}
	rec, err := repo.Create(ctx, fanoutqueueapp.NewRecord(fanoutqueue.EventPostCreated, p))
	require.NoError(t, err)

	ok, err := repo.Claim(ctx, rec.ID, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.Claim(ctx, rec.ID, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Release(ctx, rec.ID))
	pending, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].Attempts)
	assert.Nil(t, pending[0].ClaimedUntil)

	ok, err = repo.Claim(ctx, rec.ID, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSubscriptionRecordInvalidatesFollowerOnly(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	follower := app.MustUser(t, "follower")
	followed := app.MustUser(t, "followed")
	app.Cache.Invalidated = nil

	rec, err := app.Store.Fanout().Create(ctx, fanoutqueueapp.NewSubscriptionRecord(
		uuid.FromStringOrNil(follower), uuid.FromStringOrNil(followed)))
	require.NoError(t, err)

	require.NoError(t, app.Fanout.Process(ctx, rec))
	assert.Equal(t, []string{follower}, app.Cache.Invalidated)
	assert.Empty(t, app.Publisher.Published())
}
