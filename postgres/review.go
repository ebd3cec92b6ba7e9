package postgres

import (
	"context"
	"errors"

	"moviecatalog/review"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewModel represents the database model for reviews
type ReviewModel struct {
	ID          string  `gorm:"primaryKey"`
	MovieInfoID int64   `gorm:"column:movie_info_id;not null;index"`
	Comment     string  `gorm:"not null;default:''"`
	Rating      float64 `gorm:"not null;default:0"`
}

// TableName specifies the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

func newReviewModel(r review.Review) ReviewModel {
	return ReviewModel{
		ID:          r.ID,
		MovieInfoID: r.MovieInfoID,
		Comment:     r.Comment,
		Rating:      r.Rating,
	}
}

func (model ReviewModel) toReview() review.Review {
	return review.Review{
		ID:          model.ID,
		MovieInfoID: model.MovieInfoID,
		Comment:     model.Comment,
		Rating:      model.Rating,
	}
}

// ReviewRepository implements review.Repository interface
type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) CreateReview(ctx context.Context, rv review.Review) (review.Review, error) {
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}

	model := newReviewModel(rv)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return review.Review{}, review.ErrAlreadyExists
		}
		return review.Review{}, err
	}
	return model.toReview(), nil
}

func (r *ReviewRepository) AllReviews(ctx context.Context) ([]review.Review, error) {
	var models []ReviewModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toReviews(models), nil
}

func (r *ReviewRepository) ReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]review.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).Where("movie_info_id = ?", movieInfoID).Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toReviews(models), nil
}

func (r *ReviewRepository) GetReview(ctx context.Context, id string) (review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return review.Review{}, review.ErrNotFound
		}
		return review.Review{}, err
	}
	return model.toReview(), nil
}

func (r *ReviewRepository) UpdateReview(ctx context.Context, id string, rv review.Review) (review.Review, error) {
	rv.ID = id
	model := newReviewModel(rv)

	result := r.db.WithContext(ctx).
		Model(&ReviewModel{}).
		Where("id = ?", id).
		Select("movie_info_id", "comment", "rating").
		Updates(&model)
	if result.Error != nil {
		return review.Review{}, result.Error
	}
	if result.RowsAffected == 0 {
		return review.Review{}, review.ErrNotFound
	}
	return model.toReview(), nil
}

func (r *ReviewRepository) DeleteReview(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ReviewModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return review.ErrNotFound
	}
	return nil
}

func toReviews(models []ReviewModel) []review.Review {
	reviews := make([]review.Review, len(models))
	for i, model := range models {
		reviews[i] = model.toReview()
	}
	return reviews
}
