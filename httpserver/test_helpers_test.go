package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moviecatalog/movie"
	"moviecatalog/movieinfo"
	"moviecatalog/pkg/config"
	"moviecatalog/review"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

type MockMovieInfoService struct {
	mock.Mock
}

func (m *MockMovieInfoService) AddMovieInfo(ctx context.Context, mi movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	args := m.Called(ctx, mi)
	return args.Get(0).(movieinfo.MovieInfo), args.Error(1)
}

func (m *MockMovieInfoService) ListMovieInfos(ctx context.Context) ([]movieinfo.MovieInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).([]movieinfo.MovieInfo), args.Error(1)
}

func (m *MockMovieInfoService) ListMovieInfosByYear(ctx context.Context, year int) ([]movieinfo.MovieInfo, error) {
	args := m.Called(ctx, year)
	return args.Get(0).([]movieinfo.MovieInfo), args.Error(1)
}

func (m *MockMovieInfoService) GetMovieInfo(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movieinfo.MovieInfo), args.Error(1)
}

func (m *MockMovieInfoService) UpdateMovieInfo(ctx context.Context, id string, mi movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	args := m.Called(ctx, id, mi)
	return args.Get(0).(movieinfo.MovieInfo), args.Error(1)
}

func (m *MockMovieInfoService) DeleteMovieInfo(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovieInfoService) Subscribe() *movieinfo.Subscription {
	args := m.Called()
	return args.Get(0).(*movieinfo.Subscription)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) AddReview(ctx context.Context, r review.Review) (review.Review, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(review.Review), args.Error(1)
}

func (m *MockReviewService) ListReviews(ctx context.Context) ([]review.Review, error) {
	args := m.Called(ctx)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewService) ListReviewsByMovieInfoID(ctx context.Context, movieInfoID int64) ([]review.Review, error) {
	args := m.Called(ctx, movieInfoID)
	return args.Get(0).([]review.Review), args.Error(1)
}

func (m *MockReviewService) GetReview(ctx context.Context, id string) (review.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(review.Review), args.Error(1)
}

func (m *MockReviewService) UpdateReview(ctx context.Context, id string, r review.Review) (review.Review, error) {
	args := m.Called(ctx, id, r)
	return args.Get(0).(review.Review), args.Error(1)
}

func (m *MockReviewService) DeleteReview(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockMovieService struct {
	mock.Mock
}

func (m *MockMovieService) GetMovieByID(ctx context.Context, id string) (movie.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(movie.Movie), args.Error(1)
}

func newJSONRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body: %s", rec.Body.String())
}
