package likeapp_test

import (
	"context"
	"testing"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/testutil"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePost(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	alice := app.MustUser(t, "alice")
	bob := app.MustUser(t, "bob")
	postID := app.MustPost(t, alice, "t", "c")

	require.NoError(t, app.Likes.LikePost(ctx, postID, bob))
	require.NoError(t, app.Likes.LikePost(ctx, postID, alice))

	err := app.Likes.LikePost(ctx, postID, bob)
	assert.ErrorIs(t, err, apperr.ErrConflict)
	assert.EqualError(t, err, "User already liked this post")

	likes, err := app.Likes.GetPostLikes(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, postID, likes.PostID)
	assert.Equal(t, 2, likes.Likes)
	assert.Equal(t, []string{"bob", "alice"}, likes.Users)
}

func TestLikePostMissingReferences(t *testing.T) {
	ctx := context.Background()
	app := testutil.NewApp(t)
	alice := app.MustUser(t, "alice")
	postID := app.MustPost(t, alice, "t", "c")
	unknown := uuid.Must(uuid.NewV4()).String()

	err := app.Likes.LikePost(ctx, unknown, alice)
	assert.EqualError(t, err, "Post not found")

	err = app.Likes.LikePost(ctx, postID, unknown)
	assert.EqualError(t, err, "User not found")

	_, err = app.Likes.GetPostLikes(ctx, unknown)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGetPostLikesEmpty(t *testing.T) {
	app := testutil.NewApp(t)
	alice := app.MustUser(t, "alice")
	postID := app.MustPost(t, alice, "t", "c")

	likes, err := app.Likes.GetPostLikes(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, 0, likes.Likes)
	assert.NotNil(t, likes.Users)
	assert.Empty(t, likes.Users)
}
