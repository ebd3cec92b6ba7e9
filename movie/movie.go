package movie

import (
	"moviecatalog/errs"
	"moviecatalog/movieinfo"
	"moviecatalog/review"
)

// ErrMovieInfoNotFound builds the client error returned when the movie info service has no record for id.
func ErrMovieInfoNotFound(id string) *errs.Error {
	return errs.Errorf(errs.ENOTFOUND, "There is no MovieInfo Available for the passed in Id : %s", id)
}

// Movie is the composite view of a movie info and its reviews. It is never stored.
type Movie struct {
	MovieInfo movieinfo.MovieInfo `json:"movieInfo"`
	Reviews   []review.Review     `json:"reviewList"`
}
