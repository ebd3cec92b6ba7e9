package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"moviecatalog/errs"
	"moviecatalog/movieinfo"

	"github.com/labstack/echo/v4"
)

// MIMEApplicationNDJSON is the content type of the movie info stream.
const MIMEApplicationNDJSON = "application/x-ndjson"

func (s *Server) RegisterMovieInfoRoutes(g *echo.Group) {
	g.POST("/movieinfos", s.handleAddMovieInfo)
	g.GET("/movieinfos", s.handleListMovieInfos)
	g.GET("/movieinfos/stream", s.handleStreamMovieInfos)
	g.GET("/movieinfos/:id", s.handleGetMovieInfo)
	g.PUT("/movieinfos/:id", s.handleUpdateMovieInfo)
	g.DELETE("/movieinfos/:id", s.handleDeleteMovieInfo)
}

func (s *Server) movieInfoService() (movieinfo.Service, error) {
	if s.MovieInfoService == nil {
		return nil, errs.Errorf(errs.ENOTIMPLEMENTED, "movie info service not configured")
	}
	return s.MovieInfoService, nil
}

func (s *Server) handleAddMovieInfo(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	var req MovieInfoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	created, err := svc.AddMovieInfo(c.Request().Context(), req.ToMovieInfo())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

func (s *Server) handleListMovieInfos(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	var infos []movieinfo.MovieInfo
	if raw := strings.TrimSpace(c.QueryParam("year")); raw != "" {
		year, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return movieinfo.ErrInvalidYearQuery
		}
		infos, err = svc.ListMovieInfosByYear(c.Request().Context(), year)
	} else {
		infos, err = svc.ListMovieInfos(c.Request().Context())
	}
	if err != nil {
		return err
	}

	if infos == nil {
		infos = []movieinfo.MovieInfo{}
	}
	return c.JSON(http.StatusOK, infos)
}

func (s *Server) handleGetMovieInfo(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	m, err := svc.GetMovieInfo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

func (s *Server) handleUpdateMovieInfo(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	var req MovieInfoRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := svc.UpdateMovieInfo(c.Request().Context(), c.Param("id"), req.ToMovieInfo())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteMovieInfo(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	if err := svc.DeleteMovieInfo(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// handleStreamMovieInfos writes every movie info created while the client stays connected,
// one JSON document per line. Nothing created before the request is replayed.
func (s *Server) handleStreamMovieInfos(c echo.Context) error {
	svc, err := s.movieInfoService()
	if err != nil {
		return err
	}

	sub := svc.Subscribe()
	defer sub.Close()

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, MIMEApplicationNDJSON)
	res.Header().Set("Cache-Control", "no-cache")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()
	if s.streams != nil {
		stop := context.AfterFunc(s.streams, cancel)
		defer stop()
	}

	enc := json.NewEncoder(res)
	for {
		m, err := sub.Next(ctx)
		if err != nil {
			// client went away, server shutting down or subscription closed
			return nil
		}
		if err := enc.Encode(m); err != nil {
			s.Logger.DebugContext(ctx, "movie info stream write failed", "error", err)
			return nil
		}
		res.Flush()
	}
}
