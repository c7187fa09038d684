package jokes

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()

	dsn := "file:jokes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS jokes (
  id TEXT PRIMARY KEY,
  text TEXT NOT NULL,
  contributor TEXT NOT NULL,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS pictures (
  id TEXT PRIMARY KEY,
  image_url TEXT NOT NULL,
  contributor TEXT NOT NULL,
  created_at DATETIME
);`}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	svc, err := NewService(NewRepository(db))
	require.NoError(t, err)
	return svc
}

func TestJokeRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateJoke(ctx, CreateJokeInput{
		Text:        "  Why did the scarecrow win an award? He was outstanding in his field.  ",
		Contributor: "pat",
	})
	require.NoError(t, err)
	assert.Equal(t, "Why did the scarecrow win an award? He was outstanding in his field.", created.Text)

	found, err := svc.GetJoke(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	all, err := svc.ListJokes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCreateJokeValidation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateJoke(ctx, CreateJokeInput{Text: "   ", Contributor: "pat"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.CreateJoke(ctx, CreateJokeInput{Text: "a joke", Contributor: ""})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRandomJokeEmptyTable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.RandomJoke(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Contains(t, typed.Error(), "no jokes available")
}

func TestRandomJokeReturnsExistingRow(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	ids := map[uuid.UUID]bool{}
	for _, text := range []string{"one", "two", "three"} {
		joke, err := svc.CreateJoke(ctx, CreateJokeInput{Text: text, Contributor: "pat"})
		require.NoError(t, err)
		ids[joke.ID] = true
	}

	for i := 0; i < 10; i++ {
		joke, err := svc.RandomJoke(ctx)
		require.NoError(t, err)
		assert.True(t, ids[joke.ID])
	}
}

func TestPictureRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePicture(ctx, CreatePictureInput{
		ImageURL:    "https://cdn.example.com/dog.gif",
		Contributor: "sam",
	})
	require.NoError(t, err)

	found, err := svc.GetPicture(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/dog.gif", found.ImageURL)

	random, err := svc.RandomPicture(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, random.ID)
}

func TestRandomPictureEmptyTable(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.RandomPicture(context.Background())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
	assert.Contains(t, typed.Error(), "no pictures available")
}

func TestGetJokeNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	_, err := svc.GetJoke(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
