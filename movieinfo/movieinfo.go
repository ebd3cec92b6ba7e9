package movieinfo

import (
	"strings"

	"moviecatalog/errs"
)

var (
	ErrInvalidName      = errs.Errorf(errs.EINVALID, "movie info: name must be present")
	ErrInvalidYear      = errs.Errorf(errs.EINVALID, "movie info: year must be a positive value")
	ErrInvalidCast      = errs.Errorf(errs.EINVALID, "movie info: cast must not contain blank names")
	ErrNotFound         = errs.Errorf(errs.ENOTFOUND, "movie info not found")
	ErrAlreadyExists    = errs.Errorf(errs.ECONFLICT, "movie info already exists")
	ErrInvalidYearQuery = errs.Errorf(errs.EINVALID, "invalid year")
)

// MovieInfo is the catalogue record of a single movie. ID is assigned by the store on creation.
type MovieInfo struct {
	ID          string   `json:"movieInfoId"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Cast        []string `json:"cast"`
	ReleaseDate Date     `json:"release_date"`
}

func (m MovieInfo) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrInvalidName
	}

	if m.Year <= 0 {
		return ErrInvalidYear
	}

	for _, actor := range m.Cast {
		if strings.TrimSpace(actor) == "" {
			return ErrInvalidCast
		}
	}

	return nil
}
