package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"moviecatalog/errs"
	"moviecatalog/movie"
	"moviecatalog/review"
)

// ReviewClient implements movie.ReviewClient over the review service REST API.
type ReviewClient struct {
	*client
}

func NewReviewClient(opts Options) (*ReviewClient, error) {
	c, err := newClient(opts)
	if err != nil {
		return nil, err
	}
	return &ReviewClient{client: c}, nil
}

// RetrieveReviews lists the reviews of a movie. A 4xx answer means there is nothing to show and
// yields an empty list. Server and transport failures are returned as errs.EUNAVAILABLE without retry.
func (c *ReviewClient) RetrieveReviews(ctx context.Context, movieInfoID string) ([]review.Review, error) {
	resp, err := c.get(ctx, url.Values{"movieInfoId": []string{movieInfoID}})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errs.Errorf(errs.EUNAVAILABLE, "%s", err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, errs.Errorf(errs.EUNAVAILABLE, "%s", readErrorBody(resp))
	case resp.StatusCode >= http.StatusBadRequest:
		return []review.Review{}, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("restclient: review service returned %d", resp.StatusCode)
	}

	var reviews []review.Review
	if err := json.NewDecoder(resp.Body).Decode(&reviews); err != nil {
		return nil, fmt.Errorf("restclient: decode reviews: %w", err)
	}
	if reviews == nil {
		reviews = []review.Review{}
	}
	return reviews, nil
}

var _ movie.ReviewClient = (*ReviewClient)(nil)
