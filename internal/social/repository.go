package social

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

// Repository wires together profile, post, and graph persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateProfile inserts a new profile row.
func (r *Repository) CreateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateProfile updates an existing profile row.
func (r *Repository) UpdateProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := r.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// FindProfileByID loads one profile.
func (r *Repository) FindProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// FindProfileByUserID returns the first profile owned by the user, ordered by
// join date so repeated lookups stay deterministic.
func (r *Repository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("join_date ASC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListProfiles returns all profiles ordered by username.
func (r *Repository) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	var rows []models.Profile
	err := r.db.WithContext(ctx).Order("username ASC").Find(&rows).Error
	return rows, err
}

// CreatePost inserts a post together with its photos.
func (r *Repository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.ID == uuid.Nil {
		post.ID = uuid.New()
	}
	for i := range post.Photos {
		if post.Photos[i].ID == uuid.Nil {
			post.Photos[i].ID = uuid.New()
		}
		post.Photos[i].PostID = post.ID
	}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// FindPostByID loads the post with its photos and author profile.
func (r *Repository) FindPostByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Preload("Profile").
		First(&post, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post with its photos, likes, and comments.
func (r *Repository) DeletePost(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("post_id = ?", id).Delete(&models.Photo{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Post{}).Error
}

// ListPostsByProfile returns a profile's posts newest first with photos.
func (r *Repository) ListPostsByProfile(ctx context.Context, profileID uuid.UUID) ([]models.Post, error) {
	var rows []models.Post
	err := r.db.WithContext(ctx).
		Preload("Photos").
		Where("profile_id = ?", profileID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// CreateFollow inserts one follow edge.
func (r *Repository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	if follow.ID == uuid.Nil {
		follow.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(follow).Error
}

// DeleteFollow removes the edge and reports whether one existed.
func (r *Repository) DeleteFollow(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	return result.RowsAffected > 0, result.Error
}

// FollowExists reports whether the edge is present.
func (r *Repository) FollowExists(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	return count > 0, err
}

// CountFollowers counts edges pointing at the profile.
func (r *Repository) CountFollowers(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("followee_id = ?", profileID).
		Count(&count).Error
	return count, err
}

// CountFollowing counts edges leaving the profile.
func (r *Repository) CountFollowing(ctx context.Context, profileID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", profileID).
		Count(&count).Error
	return count, err
}

// ListFolloweeIDs returns the IDs of every profile the follower follows.
func (r *Repository) ListFolloweeIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Pluck("followee_id", &ids).Error
	return ids, err
}

// CreateLike inserts one like.
func (r *Repository) CreateLike(ctx context.Context, like *models.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(like).Error
}

// DeleteLike removes the like and reports whether one existed.
func (r *Repository) DeleteLike(ctx context.Context, profileID, postID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND post_id = ?", profileID, postID).
		Delete(&models.Like{})
	return result.RowsAffected > 0, result.Error
}

// LikeExists reports whether the profile already liked the post.
func (r *Repository) LikeExists(ctx context.Context, profileID, postID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("profile_id = ? AND post_id = ?", profileID, postID).
		Count(&count).Error
	return count > 0, err
}

// CountLikes counts likes on the post.
func (r *Repository) CountLikes(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// CreateComment inserts one comment.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// ListCommentsByPost returns comments oldest first with author profiles.
func (r *Repository) ListCommentsByPost(ctx context.Context, postID uuid.UUID) ([]models.Comment, error) {
	var rows []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Profile").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

// CountComments counts comments on the post.
func (r *Repository) CountComments(ctx context.Context, postID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

// ListFeedPosts returns posts by the given profiles newest first, using the
// created-at/id cursor to detect the next page.
func (r *Repository) ListFeedPosts(ctx context.Context, profileIDs []uuid.UUID, cursor *pagination.Cursor, limit int) ([]models.Post, error) {
	if len(profileIDs) == 0 {
		return []models.Post{}, nil
	}

	qb := r.db.WithContext(ctx).
		Preload("Photos").
		Preload("Profile").
		Where("profile_id IN ?", profileIDs)

	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Post
	err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
