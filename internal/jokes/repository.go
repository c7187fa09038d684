package jokes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
)

// Repository persists jokes and pictures.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateJoke(ctx context.Context, joke *models.Joke) (*models.Joke, error) {
	if joke.ID == uuid.Nil {
		joke.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(joke).Error; err != nil {
		return nil, err
	}
	return joke, nil
}

func (r *Repository) FindJokeByID(ctx context.Context, id uuid.UUID) (*models.Joke, error) {
	var joke models.Joke
	if err := r.db.WithContext(ctx).First(&joke, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &joke, nil
}

// ListJokes returns every joke newest first.
func (r *Repository) ListJokes(ctx context.Context) ([]models.Joke, error) {
	var rows []models.Joke
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// RandomJoke picks one row uniformly. gorm.ErrRecordNotFound on an empty table.
func (r *Repository) RandomJoke(ctx context.Context) (*models.Joke, error) {
	var joke models.Joke
	err := r.db.WithContext(ctx).Order("RANDOM()").First(&joke).Error
	if err != nil {
		return nil, err
	}
	return &joke, nil
}

func (r *Repository) CreatePicture(ctx context.Context, picture *models.Picture) (*models.Picture, error) {
	if picture.ID == uuid.Nil {
		picture.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(picture).Error; err != nil {
		return nil, err
	}
	return picture, nil
}

func (r *Repository) FindPictureByID(ctx context.Context, id uuid.UUID) (*models.Picture, error) {
	var picture models.Picture
	if err := r.db.WithContext(ctx).First(&picture, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &picture, nil
}

// ListPictures returns every picture newest first.
func (r *Repository) ListPictures(ctx context.Context) ([]models.Picture, error) {
	var rows []models.Picture
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// RandomPicture picks one row uniformly.
func (r *Repository) RandomPicture(ctx context.Context) (*models.Picture, error) {
	var picture models.Picture
	err := r.db.WithContext(ctx).Order("RANDOM()").First(&picture).Error
	if err != nil {
		return nil, err
	}
	return &picture, nil
}
