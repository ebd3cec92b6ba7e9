package review

import "moviecatalog/errs"

var (
	ErrInvalidMovieInfoID      = errs.Errorf(errs.EINVALID, "review: movieInfoId must be present")
	ErrInvalidMovieInfoIDQuery = errs.Errorf(errs.EINVALID, "invalid movieInfoId")
	ErrNotFound                = errs.Errorf(errs.ENOTFOUND, "review not found")
	ErrAlreadyExists           = errs.Errorf(errs.ECONFLICT, "review already exists")
)

// Review is a single rating of a movie. MovieInfoID is not checked against the movie info service.
type Review struct {
	ID          string  `json:"reviewId"`
	MovieInfoID int64   `json:"movieInfoId"`
	Comment     string  `json:"comment"`
	Rating      float64 `json:"rating"`
}

func (r Review) Validate() error {
	if r.MovieInfoID == 0 {
		return ErrInvalidMovieInfoID
	}
	return nil
}
