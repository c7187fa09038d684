package jokes

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
)

// Service is the jokes board: list/create/detail plus random picks for
// jokes and pictures.
type Service interface {
	ListJokes(ctx context.Context) ([]models.Joke, error)
	GetJoke(ctx context.Context, id uuid.UUID) (*models.Joke, error)
	CreateJoke(ctx context.Context, input CreateJokeInput) (*models.Joke, error)
	RandomJoke(ctx context.Context) (*models.Joke, error)

	ListPictures(ctx context.Context) ([]models.Picture, error)
	GetPicture(ctx context.Context, id uuid.UUID) (*models.Picture, error)
	CreatePicture(ctx context.Context, input CreatePictureInput) (*models.Picture, error)
	RandomPicture(ctx context.Context) (*models.Picture, error)
}

type CreateJokeInput struct {
	Text        string `json:"text" validate:"required"`
	Contributor string `json:"contributor" validate:"required"`
}

type CreatePictureInput struct {
	ImageURL    string `json:"image_url" validate:"required,url"`
	Contributor string `json:"contributor" validate:"required"`
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, errors.New("jokes: repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListJokes(ctx context.Context) ([]models.Joke, error) {
	rows, err := s.repo.ListJokes(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list jokes")
	}
	return rows, nil
}

func (s *service) GetJoke(ctx context.Context, id uuid.UUID) (*models.Joke, error) {
	joke, err := s.repo.FindJokeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "joke not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find joke")
	}
	return joke, nil
}

func (s *service) CreateJoke(ctx context.Context, input CreateJokeInput) (*models.Joke, error) {
	text := strings.TrimSpace(input.Text)
	contributor := strings.TrimSpace(input.Contributor)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "joke text is required")
	}
	if contributor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contributor is required")
	}
	joke, err := s.repo.CreateJoke(ctx, &models.Joke{Text: text, Contributor: contributor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create joke")
	}
	return joke, nil
}

func (s *service) RandomJoke(ctx context.Context) (*models.Joke, error) {
	joke, err := s.repo.RandomJoke(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no jokes available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "random joke")
	}
	return joke, nil
}

func (s *service) ListPictures(ctx context.Context) ([]models.Picture, error) {
	rows, err := s.repo.ListPictures(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pictures")
	}
	return rows, nil
}

func (s *service) GetPicture(ctx context.Context, id uuid.UUID) (*models.Picture, error) {
	picture, err := s.repo.FindPictureByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "picture not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find picture")
	}
	return picture, nil
}

func (s *service) CreatePicture(ctx context.Context, input CreatePictureInput) (*models.Picture, error) {
	imageURL := strings.TrimSpace(input.ImageURL)
	contributor := strings.TrimSpace(input.Contributor)
	if imageURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "image_url is required")
	}
	if contributor == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contributor is required")
	}
	picture, err := s.repo.CreatePicture(ctx, &models.Picture{ImageURL: imageURL, Contributor: contributor})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create picture")
	}
	return picture, nil
}

func (s *service) RandomPicture(ctx context.Context) (*models.Picture, error) {
	picture, err := s.repo.RandomPicture(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no pictures available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "random picture")
	}
	return picture, nil
}
