package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"moviecatalog/errs"
	"moviecatalog/movie"
	"moviecatalog/movieinfo"

	"github.com/cenkalti/backoff/v4"
)

// MovieInfoClient implements movie.MovieInfoClient over the movie info service REST API.
type MovieInfoClient struct {
	*client
}

func NewMovieInfoClient(opts Options) (*MovieInfoClient, error) {
	c, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	return &MovieInfoClient{client: c}, nil
}

// RetrieveMovieInfo fetches the movie info with the given id.
// A 4xx answer fails immediately with movie.ErrMovieInfoNotFound. A 5xx answer or a transport
// failure is retried without delay up to the configured bound and then reported as
// errs.EUNAVAILABLE carrying the upstream error text.
func (c *MovieInfoClient) RetrieveMovieInfo(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	attempt := 0
	op := func() (movieinfo.MovieInfo, error) {
		attempt++
		m, err := c.fetch(ctx, id)
		if err != nil && errs.ErrorCode(err) == errs.EUNAVAILABLE {
			c.logger.WarnContext(ctx, "movie info service call failed",
				"movie_info_id", id, "attempt", attempt, "error", err)
		}
		return m, err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, c.retries), ctx)
	return backoff.RetryWithData(op, policy)
}

func (c *MovieInfoClient) fetch(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	resp, err := c.get(ctx, nil, url.PathEscape(id))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return movieinfo.MovieInfo{}, backoff.Permanent(ctxErr)
		}
		return movieinfo.MovieInfo{}, errs.Errorf(errs.EUNAVAILABLE, "%s", err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return movieinfo.MovieInfo{}, errs.Errorf(errs.EUNAVAILABLE, "%s", readErrorBody(resp))
	case resp.StatusCode >= http.StatusBadRequest:
		return movieinfo.MovieInfo{}, backoff.Permanent(movie.ErrMovieInfoNotFound(id))
	case resp.StatusCode != http.StatusOK:
		return movieinfo.MovieInfo{}, backoff.Permanent(
			fmt.Errorf("restclient: movie info service returned %d", resp.StatusCode))
	}

	var m movieinfo.MovieInfo
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return movieinfo.MovieInfo{}, backoff.Permanent(fmt.Errorf("restclient: decode movie info: %w", err))
	}
	return m, nil
}

var _ movie.MovieInfoClient = (*MovieInfoClient)(nil)
