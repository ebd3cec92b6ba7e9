package review

import "context"

type Service interface {
	AddReview(ctx context.Context, r Review) (Review, error)
	ListReviews(ctx context.Context) ([]Review, error)
	ListReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]Review, error)
	GetReview(ctx context.Context, id string) (Review, error)
	UpdateReview(ctx context.Context, id string, r Review) (Review, error)
	DeleteReview(ctx context.Context, id string) error
}

// Repository returns ErrNotFound when the addressed review does not exist.
type Repository interface {
	CreateReview(ctx context.Context, r Review) (Review, error)
	AllReviews(ctx context.Context) ([]Review, error)
	ReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]Review, error)
	GetReview(ctx context.Context, id string) (Review, error)
	UpdateReview(ctx context.Context, id string, r Review) (Review, error)
	DeleteReview(ctx context.Context, id string) error
}

type Usecase struct {
	r Repository
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{r: r}
}

func (uc *Usecase) AddReview(ctx context.Context, r Review) (Review, error) {
	if err := r.Validate(); err != nil {
		return Review{}, err
	}

	r.ID = ""
	return uc.r.CreateReview(ctx, r)
}

func (uc *Usecase) ListReviews(ctx context.Context) ([]Review, error) {
	return uc.r.AllReviews(ctx)
}

func (uc *Usecase) ListReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]Review, error) {
	return uc.r.ReviewsByMovieInfoID(ctx, movieInfoID)
}

func (uc *Usecase) GetReview(ctx context.Context, id string) (Review, error) {
	return uc.r.GetReview(ctx, id)
}

func (uc *Usecase) UpdateReview(ctx context.Context, id string, r Review) (Review, error) {
	if err := r.Validate(); err != nil {
		return Review{}, err
	}

	r.ID = id
	return uc.r.UpdateReview(ctx, id, r)
}

func (uc *Usecase) DeleteReview(ctx context.Context, id string) error {
	return uc.r.DeleteReview(ctx, id)
}
