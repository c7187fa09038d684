package social

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:social_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	statements := []string{`
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  user_id TEXT,
  username TEXT NOT NULL UNIQUE,
  display_name TEXT NOT NULL DEFAULT '',
  profile_image_url TEXT NOT NULL DEFAULT '',
  bio_text TEXT NOT NULL DEFAULT '',
  join_date DATETIME
);`, `
CREATE TABLE IF NOT EXISTS posts (
  id TEXT PRIMARY KEY,
  profile_id TEXT NOT NULL,
  caption TEXT NOT NULL DEFAULT '',
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS photos (
  id TEXT PRIMARY KEY,
  post_id TEXT NOT NULL,
  image_url TEXT NOT NULL,
  created_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS follows (
  id TEXT PRIMARY KEY,
  follower_id TEXT NOT NULL,
  followee_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (follower_id, followee_id)
);`, `
CREATE TABLE IF NOT EXISTS likes (
  id TEXT PRIMARY KEY,
  profile_id TEXT NOT NULL,
  post_id TEXT NOT NULL,
  created_at DATETIME,
  UNIQUE (profile_id, post_id)
);`, `
CREATE TABLE IF NOT EXISTS comments (
  id TEXT PRIMARY KEY,
  profile_id TEXT NOT NULL,
  post_id TEXT NOT NULL,
  text TEXT NOT NULL,
  created_at DATETIME
);`}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	return db
}

func mustCreateTestProfile(t *testing.T, tx *gorm.DB, username string, userID *uuid.UUID) *models.Profile {
	t.Helper()
	profile := &models.Profile{
		ID:       uuid.New(),
		UserID:   userID,
		Username: username,
	}
	if err := tx.Create(profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func mustCreateTestPost(t *testing.T, tx *gorm.DB, profileID uuid.UUID, caption string) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        uuid.New(),
		ProfileID: profileID,
		Caption:   caption,
	}
	if err := tx.Create(post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return post
}
