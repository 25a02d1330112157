package memory

import (
	"context"
	"errors"
	"testing"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, s *Store, name string) *user.User {
	t.Helper()
	u, err := s.Users().Create(context.Background(), &user.User{ID: uuid.Must(uuid.NewV4()), Name: name})
	require.NoError(t, err)
	return u
}

func TestWithinTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := newUser(t, s, "alice")
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(ctx context.Context) error {
		_, err := s.Posts().Create(ctx, &post.Post{ID: uuid.Must(uuid.NewV4()), Title: "t", UserID: author.ID})
		require.NoError(t, err)
		_, err = s.Users().Create(ctx, &user.User{ID: uuid.Must(uuid.NewV4()), Name: "ghost"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	posts, err := s.Posts().FindByUserID(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, posts)
	counts, err := s.Users().PostCounts(ctx)
	require.NoError(t, err)
	assert.Len(t, counts, 1)
}

func TestConstraints(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	a := newUser(t, s, "a")
	b := newUser(t, s, "b")

	_, err := s.Posts().Create(ctx, &post.Post{ID: uuid.Must(uuid.NewV4()), UserID: uuid.Must(uuid.NewV4())})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = s.Users().Create(ctx, &user.User{Name: "no id"})
	assert.Error(t, err)

	edge := func() *subscription.Subscription {
		return &subscription.Subscription{ID: uuid.Must(uuid.NewV4()), FollowerID: a.ID, FollowedID: b.ID}
	}
	_, err = s.Subscriptions().Create(ctx, edge())
	require.NoError(t, err)
	_, err = s.Subscriptions().Create(ctx, edge())
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestReturnedRowsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	u := newUser(t, s, "alice")

	found, err := s.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	found.Name = "mallory"

	again, err := s.Users().FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", again.Name)
}
