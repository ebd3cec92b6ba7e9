package movieinfo

import "context"

type Service interface {
	AddMovieInfo(ctx context.Context, m MovieInfo) (MovieInfo, error)
	ListMovieInfos(ctx context.Context) ([]MovieInfo, error)
	ListMovieInfosByYear(ctx context.Context, year int) ([]MovieInfo, error)
	GetMovieInfo(ctx context.Context, id string) (MovieInfo, error)
	UpdateMovieInfo(ctx context.Context, id string, m MovieInfo) (MovieInfo, error)
	DeleteMovieInfo(ctx context.Context, id string) error
	Subscribe() *Subscription
}

// Repository returns ErrNotFound when the addressed record does not exist.
type Repository interface {
	CreateMovieInfo(ctx context.Context, m MovieInfo) (MovieInfo, error)
	AllMovieInfos(ctx context.Context) ([]MovieInfo, error)
	MovieInfosByYear(ctx context.Context, year int) ([]MovieInfo, error)
	GetMovieInfo(ctx context.Context, id string) (MovieInfo, error)
	UpdateMovieInfo(ctx context.Context, id string, m MovieInfo) (MovieInfo, error)
	DeleteMovieInfo(ctx context.Context, id string) error
}

type Usecase struct {
	r Repository
	b *Broadcaster
}

func NewUsecase(r Repository) *Usecase {
	return &Usecase{
		r: r,
		b: NewBroadcaster(),
	}
}

// AddMovieInfo stores m with a fresh ID and publishes the stored record to subscribers.
func (uc *Usecase) AddMovieInfo(ctx context.Context, m MovieInfo) (MovieInfo, error) {
	if err := m.Validate(); err != nil {
		return MovieInfo{}, err
	}

	m.ID = ""
	created, err := uc.r.CreateMovieInfo(ctx, m)
	if err != nil {
		return MovieInfo{}, err
	}

	uc.b.Publish(created)
	return created, nil
}

func (uc *Usecase) ListMovieInfos(ctx context.Context) ([]MovieInfo, error) {
	return uc.r.AllMovieInfos(ctx)
}

func (uc *Usecase) ListMovieInfosByYear(ctx context.Context, year int) ([]MovieInfo, error) {
	if year <= 0 {
		return nil, ErrInvalidYearQuery
	}
	return uc.r.MovieInfosByYear(ctx, year)
}

func (uc *Usecase) GetMovieInfo(ctx context.Context, id string) (MovieInfo, error) {
	return uc.r.GetMovieInfo(ctx, id)
}

// UpdateMovieInfo replaces every mutable field of the record addressed by id.
func (uc *Usecase) UpdateMovieInfo(ctx context.Context, id string, m MovieInfo) (MovieInfo, error) {
	if err := m.Validate(); err != nil {
		return MovieInfo{}, err
	}

	m.ID = id
	return uc.r.UpdateMovieInfo(ctx, id, m)
}

func (uc *Usecase) DeleteMovieInfo(ctx context.Context, id string) error {
	return uc.r.DeleteMovieInfo(ctx, id)
}

func (uc *Usecase) Subscribe() *Subscription {
	return uc.b.Subscribe()
}
