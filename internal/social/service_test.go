package social

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := newTestDB(t)
	svc, err := NewService(NewRepository(conn), db.NewWithConn(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestResolveActor(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	userID := uuid.New()
	owned := mustCreateTestProfile(t, conn, "ada", &userID)
	mustCreateTestProfile(t, conn, "orphan", nil)

	actor, err := svc.ResolveActor(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, actor)
	assert.Equal(t, owned.ID, actor.ID)

	// A user without a profile resolves to nil, not an error.
	actor, err = svc.ResolveActor(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, actor)
}

func TestMutationsRequireActor(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	target := mustCreateTestProfile(t, conn, "target", nil)
	post := mustCreateTestPost(t, conn, target.ID, "hello")

	_, createErr := svc.CreatePost(ctx, nil, CreatePostInput{Caption: "x"})
	_, commentErr := svc.Comment(ctx, nil, post.ID, "hi")
	calls := []error{
		svc.Follow(ctx, nil, target.ID),
		svc.Unfollow(ctx, nil, target.ID),
		svc.Like(ctx, nil, post.ID),
		svc.Unlike(ctx, nil, post.ID),
		svc.DeletePost(ctx, nil, post.ID),
		createErr,
		commentErr,
	}

	for _, err := range calls {
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	}
}

func TestCreatePostWithPhotos(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	userID := uuid.New()
	actor := mustCreateTestProfile(t, conn, "ada", &userID)

	post, err := svc.CreatePost(ctx, actor, CreatePostInput{
		Caption:   "morning walk",
		PhotoURLs: []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
	})
	require.NoError(t, err)
	require.Len(t, post.Photos, 2)

	detail, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "morning walk", detail.Post.Caption)
	assert.Len(t, detail.Post.Photos, 2)
}

func TestDeletePostOwnership(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	owner := mustCreateTestProfile(t, conn, "owner", nil)
	other := mustCreateTestProfile(t, conn, "other", nil)
	post := mustCreateTestPost(t, conn, owner.ID, "mine")

	err := svc.DeletePost(ctx, other, post.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	require.NoError(t, svc.DeletePost(ctx, owner, post.ID))

	_, err = svc.GetPost(ctx, post.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestFollowRules(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := mustCreateTestProfile(t, conn, "actor", nil)
	target := mustCreateTestProfile(t, conn, "target", nil)

	t.Run("selfFollowRefused", func(t *testing.T) {
		err := svc.Follow(ctx, actor, actor.ID)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	})

	t.Run("followThenDuplicate", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, actor, target.ID))

		err := svc.Follow(ctx, actor, target.ID)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
	})

	t.Run("unfollow", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, actor, target.ID))

		err := svc.Unfollow(ctx, actor, target.ID)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	})
}

func TestLikeAndComment(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	author := mustCreateTestProfile(t, conn, "author", nil)
	fan := mustCreateTestProfile(t, conn, "fan", nil)
	post := mustCreateTestPost(t, conn, author.ID, "sunset")

	require.NoError(t, svc.Like(ctx, fan, post.ID))

	err := svc.Like(ctx, fan, post.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	_, err = svc.Comment(ctx, fan, post.ID, "  lovely  ")
	require.NoError(t, err)

	detail, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, detail.LikeCount)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "lovely", detail.Comments[0].Text)

	require.NoError(t, svc.Unlike(ctx, fan, post.ID))
	detail, err = svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.LikeCount)
}

func TestProfileDetailCounts(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	star := mustCreateTestProfile(t, conn, "star", nil)
	fan1 := mustCreateTestProfile(t, conn, "fan1", nil)
	fan2 := mustCreateTestProfile(t, conn, "fan2", nil)

	require.NoError(t, svc.Follow(ctx, fan1, star.ID))
	require.NoError(t, svc.Follow(ctx, fan2, star.ID))
	require.NoError(t, svc.Follow(ctx, star, fan1.ID))

	mustCreateTestPost(t, conn, star.ID, "first")
	mustCreateTestPost(t, conn, star.ID, "second")

	detail, err := svc.GetProfile(ctx, star.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, detail.Followers)
	assert.EqualValues(t, 1, detail.Following)
	assert.Len(t, detail.Posts, 2)
}

func TestFeedReturnsFollowedPostsNewestFirst(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	reader := mustCreateTestProfile(t, conn, "reader", nil)
	followed := mustCreateTestProfile(t, conn, "followed", nil)
	stranger := mustCreateTestProfile(t, conn, "stranger", nil)

	require.NoError(t, svc.Follow(ctx, reader, followed.ID))

	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	for i, caption := range []string{"oldest", "middle", "newest"} {
		post := &models.Post{
			ID:        uuid.New(),
			ProfileID: followed.ID,
			Caption:   caption,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, conn.Create(post).Error)
	}
	mustCreateTestPost(t, conn, stranger.ID, "not in feed")

	feed, err := svc.Feed(ctx, reader, pagination.Params{PerPage: 2}, "")
	require.NoError(t, err)
	require.Len(t, feed.Posts, 2)
	assert.Equal(t, "newest", feed.Posts[0].Caption)
	assert.Equal(t, "middle", feed.Posts[1].Caption)
	require.NotEmpty(t, feed.NextCursor)

	feed, err = svc.Feed(ctx, reader, pagination.Params{PerPage: 2}, feed.NextCursor)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "oldest", feed.Posts[0].Caption)
	assert.Empty(t, feed.NextCursor)
}

func TestCreateProfileUniqueUsername(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	ctx := context.Background()

	userA, userB := uuid.New(), uuid.New()
	_, err := svc.CreateProfile(ctx, userA, CreateProfileInput{Username: "taken"})
	require.NoError(t, err)

	_, err = svc.CreateProfile(ctx, userB, CreateProfileInput{Username: "taken"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestFeedRejectsMalformedCursor(t *testing.T) {
	t.Parallel()

	svc, conn := newTestService(t)
	ctx := context.Background()

	actor := mustCreateTestProfile(t, conn, "reader", nil)

	_, err := svc.Feed(ctx, actor, pagination.Params{PerPage: 10}, "not-base64!!")
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
