package social

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

// Service exposes the social graph operations. Reads are public; mutations
// require a resolved actor profile.
type Service interface {
	ResolveActor(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*models.Profile, error)
	UpdateProfile(ctx context.Context, actor *models.Profile, input UpdateProfileInput) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*ProfileDetail, error)

	CreatePost(ctx context.Context, actor *models.Profile, input CreatePostInput) (*models.Post, error)
	DeletePost(ctx context.Context, actor *models.Profile, postID uuid.UUID) error
	GetPost(ctx context.Context, postID uuid.UUID) (*PostDetail, error)

	Follow(ctx context.Context, actor *models.Profile, followeeID uuid.UUID) error
	Unfollow(ctx context.Context, actor *models.Profile, followeeID uuid.UUID) error
	Like(ctx context.Context, actor *models.Profile, postID uuid.UUID) error
	Unlike(ctx context.Context, actor *models.Profile, postID uuid.UUID) error
	Comment(ctx context.Context, actor *models.Profile, postID uuid.UUID, text string) (*models.Comment, error)

	Feed(ctx context.Context, actor *models.Profile, params pagination.Params, cursor string) (*FeedResult, error)
}

// CreateProfileInput holds the validated payload to create a profile.
type CreateProfileInput struct {
	Username        string
	DisplayName     string
	ProfileImageURL string
	BioText         string
}

// UpdateProfileInput holds optional mutation values for the actor's profile.
type UpdateProfileInput struct {
	DisplayName     *string
	ProfileImageURL *string
	BioText         *string
}

// CreatePostInput holds a post caption plus its photo URLs.
type CreatePostInput struct {
	Caption   string
	PhotoURLs []string
}

// ProfileDetail is a profile with its posts and follow counts.
type ProfileDetail struct {
	Profile   models.Profile `json:"profile"`
	Posts     []models.Post  `json:"posts"`
	Followers int64          `json:"followers"`
	Following int64          `json:"following"`
}

// PostDetail is a post with its photos, comments, and counts.
type PostDetail struct {
	Post         models.Post      `json:"post"`
	Comments     []models.Comment `json:"comments"`
	LikeCount    int64            `json:"like_count"`
	CommentCount int64            `json:"comment_count"`
}

// FeedResult is one cursor page of posts by followed profiles.
type FeedResult struct {
	Posts      []models.Post `json:"posts"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a social service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("social repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// ResolveActor maps the authenticated user to at most one owned profile. A
// nil profile with a nil error means the user has no profile yet; mutations
// treat that as unauthorized.
func (s *service) ResolveActor(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, nil
	}
	profile, err := s.repo.FindProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve actor profile")
	}
	return profile, nil
}

// CreateProfile creates the user's profile. Usernames are unique.
func (s *service) CreateProfile(ctx context.Context, userID uuid.UUID, input CreateProfileInput) (*models.Profile, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}

	profile := &models.Profile{
		UserID:          &userID,
		Username:        username,
		DisplayName:     strings.TrimSpace(input.DisplayName),
		ProfileImageURL: strings.TrimSpace(input.ProfileImageURL),
		BioText:         input.BioText,
	}
	created, err := s.repo.CreateProfile(ctx, profile)
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert profile")
	}
	return created, nil
}

// UpdateProfile applies the provided fields to the actor's own profile.
func (s *service) UpdateProfile(ctx context.Context, actor *models.Profile, input UpdateProfileInput) (*models.Profile, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		actor.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.ProfileImageURL != nil {
		actor.ProfileImageURL = strings.TrimSpace(*input.ProfileImageURL)
	}
	if input.BioText != nil {
		actor.BioText = *input.BioText
	}

	updated, err := s.repo.UpdateProfile(ctx, actor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update profile")
	}
	return updated, nil
}

// ListProfiles returns all profiles.
func (s *service) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := s.repo.ListProfiles(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list profiles")
	}
	return rows, nil
}

// GetProfile loads a profile with its posts newest first and follow counts.
func (s *service) GetProfile(ctx context.Context, profileID uuid.UUID) (*ProfileDetail, error) {
	profile, err := s.loadProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	posts, err := s.repo.ListPostsByProfile(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list posts")
	}
	followers, err := s.repo.CountFollowers(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count followers")
	}
	following, err := s.repo.CountFollowing(ctx, profileID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count following")
	}
	return &ProfileDetail{
		Profile:   *profile,
		Posts:     posts,
		Followers: followers,
		Following: following,
	}, nil
}

// CreatePost publishes a post with zero or more photos under the actor.
func (s *service) CreatePost(ctx context.Context, actor *models.Profile, input CreatePostInput) (*models.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	caption := strings.TrimSpace(input.Caption)
	if caption == "" && len(input.PhotoURLs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "post needs a caption or at least one photo")
	}

	post := &models.Post{
		ProfileID: actor.ID,
		Caption:   caption,
	}
	for _, rawURL := range input.PhotoURLs {
		imageURL := strings.TrimSpace(rawURL)
		if imageURL == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo url cannot be empty")
		}
		post.Photos = append(post.Photos, models.Photo{ImageURL: imageURL})
	}

	var created *models.Post
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		row, err := s.repo.WithTx(tx).CreatePost(ctx, post)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert post")
		}
		created = row
		return nil
	}); err != nil {
		return nil, err
	}
	return created, nil
}

// DeletePost removes the actor's own post along with its photos, likes, and
// comments.
func (s *service) DeletePost(ctx context.Context, actor *models.Profile, postID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.ProfileID != actor.ID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "post does not belong to profile")
	}
	return s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).DeletePost(ctx, postID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete post")
		}
		return nil
	})
}

// GetPost loads a post with its photos, comments, and counts.
func (s *service) GetPost(ctx context.Context, postID uuid.UUID) (*PostDetail, error) {
	post, err := s.loadPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.repo.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list comments")
	}
	likes, err := s.repo.CountLikes(ctx, postID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count likes")
	}
	return &PostDetail{
		Post:         *post,
		Comments:     comments,
		LikeCount:    likes,
		CommentCount: int64(len(comments)),
	}, nil
}

// Follow creates a follow edge. Self-follows and duplicates are refused.
func (s *service) Follow(ctx context.Context, actor *models.Profile, followeeID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if followeeID == actor.ID {
		return pkgerrors.New(pkgerrors.CodeValidation, "cannot follow yourself")
	}
	if _, err := s.loadProfile(ctx, followeeID); err != nil {
		return err
	}

	exists, err := s.repo.FollowExists(ctx, actor.ID, followeeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check follow")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "already following")
	}

	if err := s.repo.CreateFollow(ctx, &models.Follow{
		FollowerID: actor.ID,
		FolloweeID: followeeID,
	}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "already following")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert follow")
	}
	return nil
}

// Unfollow removes the follow edge if present.
func (s *service) Unfollow(ctx context.Context, actor *models.Profile, followeeID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	removed, err := s.repo.DeleteFollow(ctx, actor.ID, followeeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete follow")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not following")
	}
	return nil
}

// Like marks the post liked by the actor. One like per profile per post.
func (s *service) Like(ctx context.Context, actor *models.Profile, postID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if _, err := s.loadPost(ctx, postID); err != nil {
		return err
	}

	exists, err := s.repo.LikeExists(ctx, actor.ID, postID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check like")
	}
	if exists {
		return pkgerrors.New(pkgerrors.CodeConflict, "already liked")
	}

	if err := s.repo.CreateLike(ctx, &models.Like{
		ProfileID: actor.ID,
		PostID:    postID,
	}); err != nil {
		if db.IsUniqueViolation(err, "") {
			return pkgerrors.New(pkgerrors.CodeConflict, "already liked")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert like")
	}
	return nil
}

// Unlike removes the actor's like if present.
func (s *service) Unlike(ctx context.Context, actor *models.Profile, postID uuid.UUID) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	removed, err := s.repo.DeleteLike(ctx, actor.ID, postID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete like")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "like not found")
	}
	return nil
}

// Comment adds a text reply to the post.
func (s *service) Comment(ctx context.Context, actor *models.Profile, postID uuid.UUID, text string) (*models.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "text is required")
	}
	if _, err := s.loadPost(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.repo.CreateComment(ctx, &models.Comment{
		ProfileID: actor.ID,
		PostID:    postID,
		Text:      trimmed,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert comment")
	}
	return comment, nil
}

// Feed returns posts by profiles the actor follows, newest first, one cursor
// page at a time.
func (s *service) Feed(ctx context.Context, actor *models.Profile, params pagination.Params, cursor string) (*FeedResult, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	parsed, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	followees, err := s.repo.ListFolloweeIDs(ctx, actor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list followees")
	}

	pageSize := pagination.NormalizeLimit(params.PerPage)
	rows, err := s.repo.ListFeedPosts(ctx, followees, parsed, pagination.LimitWithBuffer(params.PerPage))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list feed")
	}

	next := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return &FeedResult{Posts: rows, NextCursor: next}, nil
}

func requireActor(actor *models.Profile) error {
	if actor == nil || actor.ID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "no profile for current user")
	}
	return nil
}

func (s *service) loadProfile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	profile, err := s.repo.FindProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "profile not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return profile, nil
}

func (s *service) loadPost(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	post, err := s.repo.FindPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "post not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load post")
	}
	return post, nil
}
