package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/review"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterReviewRoutes(g *echo.Group) {
	g.POST("/reviews", s.handleAddReview)
	g.GET("/reviews", s.handleListReviews)
	g.GET("/reviews/:id", s.handleGetReview)
	g.PUT("/reviews/:id", s.handleUpdateReview)
	g.DELETE("/reviews/:id", s.handleDeleteReview)
}

func (s *Server) reviewService() (review.Service, error) {
	if s.ReviewService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "review service not configured")
	}
	return s.ReviewService, nil
}

func (s *Server) handleAddReview(c echo.Context) error {
	svc, err := s.reviewService()
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := svc.AddReview(c.Request().Context(), req.ToReview())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListReviews(c echo.Context) error {
	svc, err := s.reviewService()
	if err != nil {
		return err
	}

	var reviews []review.Review
	if raw := strings.TrimSpace(c.QueryParam("movieInfoId")); raw != "" {
		movieInfoID, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil {
			return review.ErrInvalidMovieInfoIDQuery
		}
		reviews, err = svc.ListReviewsByMovieInfoID(c.Request().Context(), movieInfoID)
	} else {
		reviews, err = svc.ListReviews(c.Request().Context())
	}
	if err != nil {
		return err
	}

	if reviews == nil {
		reviews = []review.Review{}
	}
	return c.JSON(http.StatusOK, reviews)
}

func (s *Server) handleGetReview(c echo.Context) error {
	svc, err := s.reviewService()
	if err != nil {
		return err
	}

	r, err := svc.GetReview(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, r)
}

func (s *Server) handleUpdateReview(c echo.Context) error {
	svc, err := s.reviewService()
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := svc.UpdateReview(c.Request().Context(), c.Param("id"), req.ToReview())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteReview(c echo.Context) error {
	svc, err := s.reviewService()
	if err != nil {
		return err
	}

	if err := svc.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
