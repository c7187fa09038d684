package social

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
)

func TestListFeedPostsEmptyFollowees(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	author := mustCreateTestProfile(t, conn, "author", nil)
	mustCreateTestPost(t, conn, author.ID, "unseen")

	posts, err := repo.ListFeedPosts(ctx, nil, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestDeleteFollowReportsRemoval(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	a := mustCreateTestProfile(t, conn, "a", nil)
	b := mustCreateTestProfile(t, conn, "b", nil)
	require.NoError(t, repo.CreateFollow(ctx, &models.Follow{FollowerID: a.ID, FolloweeID: b.ID}))

	removed, err := repo.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.DeleteFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestDeletePostRemovesDependents(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	author := mustCreateTestProfile(t, conn, "author", nil)
	fan := mustCreateTestProfile(t, conn, "fan", nil)

	post, err := repo.CreatePost(ctx, &models.Post{
		ProfileID: author.ID,
		Caption:   "c",
		Photos:    []models.Photo{{ImageURL: "https://cdn.example.com/p.jpg"}},
	})
	require.NoError(t, err)
	require.NoError(t, repo.CreateLike(ctx, &models.Like{ProfileID: fan.ID, PostID: post.ID}))
	_, err = repo.CreateComment(ctx, &models.Comment{ProfileID: fan.ID, PostID: post.ID, Text: "t"})
	require.NoError(t, err)

	require.NoError(t, repo.DeletePost(ctx, post.ID))

	for _, table := range []string{"photos", "likes", "comments", "posts"} {
		var count int64
		require.NoError(t, conn.Table(table).Count(&count).Error)
		assert.Zero(t, count, table)
	}
}
