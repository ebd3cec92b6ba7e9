package postgres

import (
	"context"
	"errors"
	"time"

	"moviecatalog/movieinfo"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// MovieInfoModel represents the database model for movie infos.
type MovieInfoModel struct {
	ID          string         `gorm:"primaryKey"`
	Name        string         `gorm:"not null"`
	Year        int            `gorm:"not null;index"`
	Cast        pq.StringArray `gorm:"column:cast_members;type:text[];not null"`
	ReleaseDate *time.Time     `gorm:"type:date"`
}

// TableName specifies the table name for GORM
func (MovieInfoModel) TableName() string {
	return "movie_infos"
}

func newMovieInfoModel(m movieinfo.MovieInfo) MovieInfoModel {
	model := MovieInfoModel{
		ID:   m.ID,
		Name: m.Name,
		Year: m.Year,
		Cast: pq.StringArray(m.Cast),
	}
	if model.Cast == nil {
		model.Cast = pq.StringArray{}
	}
	if !m.ReleaseDate.IsZero() {
		t := m.ReleaseDate.Time
		model.ReleaseDate = &t
	}
	return model
}

func (model MovieInfoModel) toMovieInfo() movieinfo.MovieInfo {
	m := movieinfo.MovieInfo{
		ID:   model.ID,
		Name: model.Name,
		Year: model.Year,
		Cast: []string(model.Cast),
	}
	if m.Cast == nil {
		m.Cast = []string{}
	}
	if model.ReleaseDate != nil {
		m.ReleaseDate = movieinfo.DateOf(*model.ReleaseDate)
	}
	return m
}

// MovieInfoRepository implements movieinfo.Repository interface
type MovieInfoRepository struct {
	db *gorm.DB
}

func NewMovieInfoRepository(db *gorm.DB) *MovieInfoRepository {
	return &MovieInfoRepository{db: db}
}

// CreateMovieInfo inserts m, generating an ID when m has none.
func (r *MovieInfoRepository) CreateMovieInfo(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	model := newMovieInfoModel(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return movieinfo.MovieInfo{}, movieinfo.ErrAlreadyExists
		}
		return movieinfo.MovieInfo{}, err
	}

	return model.toMovieInfo(), nil
}

func (r *MovieInfoRepository) AllMovieInfos(ctx context.Context) ([]movieinfo.MovieInfo, error) {
	var models []MovieInfoModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		return nil, err
	}
	return toMovieInfos(models), nil
}

func (r *MovieInfoRepository) MovieInfosByYear(ctx context.Context, year int) ([]movieinfo.MovieInfo, error) {
	var models []MovieInfoModel
	if err := r.db.WithContext(ctx).Where("year = ?", year).Find(&models).Error; err != nil {
		return nil, err
	}
	return toMovieInfos(models), nil
}

func (r *MovieInfoRepository) GetMovieInfo(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	var model MovieInfoModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
		}
		return movieinfo.MovieInfo{}, err
	}
	return model.toMovieInfo(), nil
}

// UpdateMovieInfo overwrites every column of the row addressed by id, zero values included.
func (r *MovieInfoRepository) UpdateMovieInfo(ctx context.Context, id string, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	m.ID = id
	model := newMovieInfoModel(m)

	result := r.db.WithContext(ctx).
		Model(&MovieInfoModel{}).
		Where("id = ?", id).
		Select("name", "year", "cast_members", "release_date").
		Updates(&model)
	if result.Error != nil {
		return movieinfo.MovieInfo{}, result.Error
	}
	if result.RowsAffected == 0 {
		return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
	}

	return model.toMovieInfo(), nil
}

func (r *MovieInfoRepository) DeleteMovieInfo(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieInfoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return movieinfo.ErrNotFound
	}
	return nil
}

func toMovieInfos(models []MovieInfoModel) []movieinfo.MovieInfo {
	infos := make([]movieinfo.MovieInfo, len(models))
	for i, model := range models {
		infos[i] = model.toMovieInfo()
	}
	return infos
}
