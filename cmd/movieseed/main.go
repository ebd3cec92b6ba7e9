package main

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"moviecatalog/movieinfo"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/storage"
)

const defaultMovieLensURL = "https://files.grouplens.org/datasets/movielens/ml-latest-small.zip"

func main() {
	var (
		csvPath string
		zipURL  string
		limit   int
	)

	flag.StringVar(&csvPath, "csv", "", "Path to movies.csv (skip download)")
	flag.StringVar(&zipURL, "url", defaultMovieLensURL, "MovieLens zip URL")
	flag.IntVar(&limit, "limit", 0, "Limit number of rows to import (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("load config failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(cfg.Log.Level, "text"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := storage.OpenMovieInfoRepository(ctx, cfg)
	if err != nil {
		slog.Error("cannot open movie info store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	cleanup := func() {}
	if csvPath == "" {
		path, c, err := downloadAndExtract(zipURL)
		if err != nil {
			slog.Error("failed to download dataset", "error", err)
			os.Exit(1)
		}
		csvPath = path
		cleanup = c
	}
	defer cleanup()

	file, err := os.Open(csvPath)
	if err != nil {
		slog.Error("cannot open dataset", "path", csvPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	stats, err := importMovies(ctx, repo, file, limit)
	if err != nil {
		slog.Error("import failed", "error", err, "created", stats.Created, "updated", stats.Updated)
		return
	}

	slog.Info("import completed", "created", stats.Created, "updated", stats.Updated, "skipped", stats.Skipped)
}

func downloadAndExtract(zipURL string) (string, func(), error) {
	if zipURL == "" {
		return "", func() {}, errors.New("dataset url is empty")
	}

	tmpDir, err := os.MkdirTemp("", "movielens-")
	if err != nil {
		return "", func() {}, err
	}

	cleanup := func() {
		_ = os.RemoveAll(tmpDir)
	}

	zipPath := filepath.Join(tmpDir, "dataset.zip")
	if err := downloadFile(zipURL, zipPath); err != nil {
		cleanup()
		return "", func() {}, err
	}

	csvPath, err := extractMoviesCSV(zipPath, tmpDir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}

	return csvPath, cleanup, nil
}

func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(url) // nolint: noctx
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, resp.Body)
	return err
}

func extractMoviesCSV(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", err
	}
	defer r.Close()

	for _, file := range r.File {
		if !strings.HasSuffix(file.Name, "movies.csv") {
			continue
		}

		src, err := file.Open()
		if err != nil {
			return "", err
		}
		defer src.Close()

		destPath := filepath.Join(destDir, filepath.Base(file.Name))
		out, err := os.Create(destPath)
		if err != nil {
			return "", err
		}

		if _, err := io.Copy(out, src); err != nil {
			_ = out.Close()
			return "", err
		}
		if err := out.Close(); err != nil {
			return "", err
		}

		return destPath, nil
	}

	return "", errors.New("movies.csv not found in zip")
}

type importStats struct {
	Created int
	Updated int
	Skipped int
}

// importMovies upserts every MovieLens row as a movie info keyed by its movieId.
// Rows whose title carries no release year are skipped.
func importMovies(ctx context.Context, repo movieinfo.Repository, r io.Reader, limit int) (importStats, error) {
	var stats importStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	idxMovieID, idxTitle, err := parseMovieCSVHeader(reader)
	if err != nil {
		return stats, err
	}

	for limit <= 0 || stats.Created+stats.Updated < limit {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, err
		}

		m, ok := parseMovieRecord(record, idxMovieID, idxTitle)
		if !ok {
			stats.Skipped++
			continue
		}

		created, err := upsertMovieInfo(ctx, repo, m)
		if err != nil {
			return stats, fmt.Errorf("movie %s: %w", m.ID, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Updated++
		}
	}

	return stats, nil
}

func upsertMovieInfo(ctx context.Context, repo movieinfo.Repository, m movieinfo.MovieInfo) (bool, error) {
	_, err := repo.CreateMovieInfo(ctx, m)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, movieinfo.ErrAlreadyExists) {
		return false, err
	}

	_, err = repo.UpdateMovieInfo(ctx, m.ID, m)
	return false, err
}

func parseMovieCSVHeader(reader *csv.Reader) (int, int, error) {
	header, err := reader.Read()
	if err != nil {
		return 0, 0, err
	}

	idxMovieID, idxTitle := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case "movieId":
			idxMovieID = i
		case "title":
			idxTitle = i
		}
	}
	if idxMovieID == -1 || idxTitle == -1 {
		return 0, 0, errors.New("missing required columns in csv header")
	}

	return idxMovieID, idxTitle, nil
}

func parseMovieRecord(record []string, idxMovieID, idxTitle int) (movieinfo.MovieInfo, bool) {
	if idxMovieID >= len(record) || idxTitle >= len(record) {
		return movieinfo.MovieInfo{}, false
	}

	movieID, err := strconv.Atoi(strings.TrimSpace(record[idxMovieID]))
	if err != nil || movieID <= 0 {
		return movieinfo.MovieInfo{}, false
	}

	name, year, ok := splitTitle(record[idxTitle])
	if !ok {
		return movieinfo.MovieInfo{}, false
	}

	return movieinfo.MovieInfo{
		ID:   strconv.Itoa(movieID),
		Name: name,
		Year: year,
		Cast: []string{},
	}, true
}

// titleYear matches the trailing "(1995)" or "(2006-2007)" of a MovieLens title.
var titleYear = regexp.MustCompile(`^(.*?)\s*\((\d{4})(?:[-–]\d{0,4})?\)$`)

// splitTitle turns "Toy Story (1995)" into "Toy Story" and 1995.
func splitTitle(title string) (string, int, bool) {
	match := titleYear.FindStringSubmatch(strings.TrimSpace(title))
	if match == nil {
		return "", 0, false
	}

	name := strings.TrimSpace(match[1])
	year, err := strconv.Atoi(match[2])
	if name == "" || err != nil || year <= 0 {
		return "", 0, false
	}
	return name, year, true
}
