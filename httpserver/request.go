package httpserver

import (
	"moviecatalog/movieinfo"
	"moviecatalog/review"
)

// MovieInfoRequest is the body of create and update calls. Any movieInfoId in the body is ignored.
type MovieInfoRequest struct {
	Name        string         `json:"name" validate:"notblank"`
	Year        int            `json:"year" validate:"gt=0"`
	Cast        []string       `json:"cast" validate:"required,dive,notblank"`
	ReleaseDate movieinfo.Date `json:"release_date"`
}

func (r MovieInfoRequest) ToMovieInfo() movieinfo.MovieInfo {
	return movieinfo.MovieInfo{
		Name:        r.Name,
		Year:        r.Year,
		Cast:        r.Cast,
		ReleaseDate: r.ReleaseDate,
	}
}

type ReviewRequest struct {
	MovieInfoID int64   `json:"movieInfoId" validate:"required"`
	Comment     string  `json:"comment"`
	Rating      float64 `json:"rating"`
}

func (r ReviewRequest) ToReview() review.Review {
	return review.Review{
		MovieInfoID: r.MovieInfoID,
		Comment:     r.Comment,
		Rating:      r.Rating,
	}
}
