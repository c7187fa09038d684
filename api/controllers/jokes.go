package controllers

import (
	"net/http"

	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/api/validators"
	jokesvc "github.com/homeboardhq/homeboard-backend/internal/jokes"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
)

func JokeList(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jokes, err := svc.ListJokes(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, jokes)
	}
}

func JokeCreate(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body jokesvc.CreateJokeInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		joke, err := svc.CreateJoke(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, joke)
	}
}

func JokeDetail(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "jokeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		joke, err := svc.GetJoke(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, joke)
	}
}

func JokeRandom(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		joke, err := svc.RandomJoke(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, joke)
	}
}

func PictureList(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pictures, err := svc.ListPictures(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pictures)
	}
}

func PictureCreate(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body jokesvc.CreatePictureInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		picture, err := svc.CreatePicture(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, picture)
	}
}

func PictureDetail(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "pictureId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		picture, err := svc.GetPicture(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, picture)
	}
}

func PictureRandom(svc jokesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		picture, err := svc.RandomPicture(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, picture)
	}
}
