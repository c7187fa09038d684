package controllers

import (
	"net/http"
	"strings"

	"github.com/homeboardhq/homeboard-backend/api/middleware"
	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/api/validators"
	socialsvc "github.com/homeboardhq/homeboard-backend/internal/social"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

type createProfileRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=30"`
	DisplayName     string `json:"display_name"`
	ProfileImageURL string `json:"profile_image_url" validate:"omitempty,url"`
	BioText         string `json:"bio_text"`
}

type updateProfileRequest struct {
	DisplayName     *string `json:"display_name,omitempty"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,url"`
	BioText         *string `json:"bio_text,omitempty"`
}

type createPostRequest struct {
	Caption   string   `json:"caption"`
	PhotoURLs []string `json:"photo_urls,omitempty" validate:"omitempty,dive,url"`
}

type createCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// resolveActor loads the acting profile for the authenticated user. A user
// without a profile gets a nil actor; the service decides what that means.
func resolveActor(r *http.Request, svc socialsvc.Service) (*models.Profile, error) {
	userID := middleware.UserIDFromContext(r.Context())
	return svc.ResolveActor(r.Context(), userID)
}

func ProfileCreate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.CreateProfile(r.Context(), middleware.UserIDFromContext(r.Context()), socialsvc.CreateProfileInput{
			Username:        body.Username,
			DisplayName:     body.DisplayName,
			ProfileImageURL: body.ProfileImageURL,
			BioText:         body.BioText,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, profile)
	}
}

func ProfileUpdate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), actor, socialsvc.UpdateProfileInput{
			DisplayName:     body.DisplayName,
			ProfileImageURL: body.ProfileImageURL,
			BioText:         body.BioText,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

func ProfileList(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profiles, err := svc.ListProfiles(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profiles)
	}
}

func ProfileDetail(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "profileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetProfile(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func PostCreate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createPostRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		post, err := svc.CreatePost(r.Context(), actor, socialsvc.CreatePostInput{
			Caption:   body.Caption,
			PhotoURLs: body.PhotoURLs,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, post)
	}
}

func PostDetail(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetPost(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func PostDelete(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id, err := pathUUID(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePost(r.Context(), actor, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func FollowCreate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		followeeID, err := pathUUID(r, "profileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Follow(r.Context(), actor, followeeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "following"})
	}
}

func FollowDelete(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		followeeID, err := pathUUID(r, "profileId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Unfollow(r.Context(), actor, followeeID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "unfollowed"})
	}
}

func LikeCreate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		postID, err := pathUUID(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Like(r.Context(), actor, postID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "liked"})
	}
}

func LikeDelete(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		postID, err := pathUUID(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Unlike(r.Context(), actor, postID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "unliked"})
	}
}

func CommentCreate(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		postID, err := pathUUID(r, "postId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createCommentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		comment, err := svc.Comment(r.Context(), actor, postID, body.Text)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comment)
	}
}

// Feed returns posts by followed profiles, newest first, cursor-paginated
// via ?cursor= and ?limit=.
func Feed(svc socialsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, err := resolveActor(r, svc)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		cursor := strings.TrimSpace(r.URL.Query().Get("cursor"))

		feed, err := svc.Feed(r.Context(), actor, pagination.Params{PerPage: limit}, cursor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, feed)
	}
}
