package movie

import (
	"context"
	"log/slog"

	"moviecatalog/movieinfo"
	"moviecatalog/review"

	"golang.org/x/sync/errgroup"
)

type Service interface {
	GetMovieByID(ctx context.Context, id string) (Movie, error)
}

// MovieInfoClient looks up a movie info in the movie info service. A missing record is reported with
// an errs.ENOTFOUND error, an unusable upstream with errs.EUNAVAILABLE.
type MovieInfoClient interface {
	RetrieveMovieInfo(ctx context.Context, id string) (movieinfo.MovieInfo, error)
}

type ReviewClient interface {
	RetrieveReviews(ctx context.Context, movieInfoID string) ([]review.Review, error)
}

type Usecase struct {
	infos   MovieInfoClient
	reviews ReviewClient
	logger  *slog.Logger
}

func NewUsecase(infos MovieInfoClient, reviews ReviewClient, logger *slog.Logger) *Usecase {
	if logger == nil {
		logger = slog.Default()
	}
	return &Usecase{
		infos:   infos,
		reviews: reviews,
		logger:  logger,
	}
}

// GetMovieByID fetches the movie info and the reviews for id concurrently.
// The movie info is required: its failure fails the call and cancels the review lookup.
// Reviews are best effort: any failure yields an empty review list.
func (uc *Usecase) GetMovieByID(ctx context.Context, id string) (Movie, error) {
	var (
		info    movieinfo.MovieInfo
		reviews []review.Review
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = uc.infos.RetrieveMovieInfo(gctx, id)
		return err
	})
	g.Go(func() error {
		found, err := uc.reviews.RetrieveReviews(gctx, id)
		if err != nil {
			if gctx.Err() == nil {
				uc.logger.WarnContext(ctx, "reviews unavailable, serving movie without reviews",
					"movie_info_id", id, "error", err)
			}
			return nil
		}
		reviews = found
		return nil
	})

	if err := g.Wait(); err != nil {
		return Movie{}, err
	}

	if reviews == nil {
		reviews = []review.Review{}
	}
	return Movie{MovieInfo: info, Reviews: reviews}, nil
}
