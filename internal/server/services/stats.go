package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/cache"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/repomanager"
)

// StatsService serves the dashboard aggregates. Views built only from the
// reference catalog go through the cache; views that depend on user picks
// always hit the database.
type StatsService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	logger      logging.Logger
	onLookup    func(hit bool)
}

// NewStatsService builds the service. A nil cache disables caching.
func NewStatsService(db *sql.DB, m repomanager.RepositoryManager, c cache.Cache, logger logging.Logger) *StatsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &StatsService{db: db, repomanager: m, cache: c, logger: logger, onLookup: func(bool) {}}
}

// ObserveCache registers fn to be told whether each cache lookup hit.
func (s *StatsService) ObserveCache(fn func(hit bool)) {
	s.onLookup = fn
}

// cached returns the value under key, loading and storing it on a miss.
// Cache failures are logged and never fail the call.
func cached[T any](ctx context.Context, s *StatsService, key string, load func(context.Context) (T, error)) (T, error) {
	return cachedIf(ctx, s, key, load, func(T) bool { return true })
}

// cachedNonEmpty caches only non-empty lists. Keys built from client input
// then exist only for values that are present in the catalog.
func cachedNonEmpty[T any](ctx context.Context, s *StatsService, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	return cachedIf(ctx, s, key, load, func(v []T) bool { return len(v) > 0 })
}

func cachedIf[T any](ctx context.Context, s *StatsService, key string, load func(context.Context) (T, error), store func(T) bool) (T, error) {
	var v T
	ok, err := s.cache.Get(ctx, key, &v)
	if err != nil {
		s.logger.Warn(ctx, "cache read failed", "key", key, "error", err)
	}
	if ok && err == nil {
		s.onLookup(true)
		return v, nil
	}
	s.onLookup(false)

	v, err = load(ctx)
	if err != nil || !store(v) {
		return v, err
	}

	if err := s.cache.Set(ctx, key, v); err != nil {
		s.logger.Warn(ctx, "cache write failed", "key", key, "error", err)
	}
	return v, nil
}

func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	return s.repomanager.Stats(s.db).Dashboard(ctx)
}

func (s *StatsService) TopNominatedMovies(ctx context.Context) ([]models.TopNominatedMovie, error) {
	return s.repomanager.Stats(s.db).TopNominatedMovies(ctx)
}

func (s *StatsService) StaffOscarStats(ctx context.Context, role string) ([]models.StaffOscarStats, error) {
	return cachedNonEmpty(ctx, s, "staff-oscars:"+role, func(ctx context.Context) ([]models.StaffOscarStats, error) {
		return s.repomanager.Stats(s.db).StaffOscarStats(ctx, role)
	})
}

func (s *StatsService) TopBirthCountries(ctx context.Context) ([]models.BirthCountry, error) {
	return cached(ctx, s, "top-birth-countries", s.repomanager.Stats(s.db).TopBirthCountries)
}

func (s *StatsService) StaffByCountry(ctx context.Context, country string) ([]models.StaffByCountry, error) {
	return cachedNonEmpty(ctx, s, "staff-by-country:"+country, func(ctx context.Context) ([]models.StaffByCountry, error) {
		return s.repomanager.Stats(s.db).StaffByCountry(ctx, country)
	})
}

func (s *StatsService) DreamTeam(ctx context.Context) ([]models.DreamTeamMember, error) {
	return cached(ctx, s, "dream-team", s.repomanager.Stats(s.db).DreamTeam)
}

func (s *StatsService) TopProductionCompanies(ctx context.Context) ([]models.ProductionCompany, error) {
	return cached(ctx, s, "top-production-companies", s.repomanager.Stats(s.db).TopProductionCompanies)
}

func (s *StatsService) NonEnglishMovies(ctx context.Context) ([]models.NonEnglishMovie, error) {
	return cached(ctx, s, "non-english-movies", s.repomanager.Stats(s.db).NonEnglishMovies)
}

func (s *StatsService) Persons(ctx context.Context) ([]models.PersonRef, error) {
	return cached(ctx, s, "persons", s.repomanager.Stats(s.db).Persons)
}

func (s *StatsService) Movies(ctx context.Context) ([]models.MovieRef, error) {
	return cached(ctx, s, "movies", s.repomanager.Stats(s.db).Movies)
}
