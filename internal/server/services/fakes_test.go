package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/dbx"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/stats"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/usernominations"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/users"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// --- users ---

type fakeUsersRepo struct {
	mu        sync.Mutex
	users     map[string]models.User
	existsErr error
	createErr error
	getErr    error
	creates   int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.users[u.UserName]; ok {
		return common.ErrorAlreadyExists
	}
	f.creates++
	f.users[u.UserName] = *u
	return nil
}

func (f *fakeUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, login string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.users[login]
	return ok, nil
}

func (f *fakeUsersRepo) UpdatePassword(ctx context.Context, login, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[login]
	if !ok {
		return common.ErrorNotFound
	}
	u.Password = password
	f.users[login] = u
	return nil
}

// --- sessions ---

type fakeSessionsRepo struct {
	mu        sync.Mutex
	sessions  map[string]models.Session
	createErr error
	findErr   error
	deleteErr error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{sessions: map[string]models.Session{}}
}

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[s.ID] = *s
	return nil
}

func (f *fakeSessionsRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	s, ok := f.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &s, nil
}

func (f *fakeSessionsRepo) Touch(ctx context.Context, id string, expires time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[id]
	if !ok {
		return common.ErrorNotFound
	}
	s.Expires = expires
	f.sessions[id] = s
	return nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionsRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, s := range f.sessions {
		if s.Expires.Before(now) {
			delete(f.sessions, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeSessionsRepo) only(t *testing.T) models.Session {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sessions) != 1 {
		t.Fatalf("want exactly one session, have %d", len(f.sessions))
	}
	for _, s := range f.sessions {
		return s
	}
	return models.Session{}
}

// --- user nominations ---

type fakeNominationsRepo struct {
	mu        sync.Mutex
	movies    map[[2]string]bool
	picks     []models.UserNomination
	movieErr  error
	createErr error
}

func newFakeNominationsRepo() *fakeNominationsRepo {
	return &fakeNominationsRepo{movies: map[[2]string]bool{}}
}

func (f *fakeNominationsRepo) ListByUser(ctx context.Context, userName string) ([]models.UserNominationRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.UserNominationRow{}
	for _, p := range f.picks {
		if p.UserName != userName {
			continue
		}
		out = append(out, models.UserNominationRow{
			Category:          p.Category,
			Iteration:         p.Iteration,
			MovieName:         p.MovieName,
			MovieReleaseDate:  p.MovieReleaseDate,
			PersonName:        p.PersonName,
			PersonDateOfBirth: p.PersonDateOfBirth,
		})
	}
	return out, nil
}

func (f *fakeNominationsRepo) MovieExists(ctx context.Context, name, releaseDate string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.movieErr != nil {
		return false, f.movieErr
	}
	return f.movies[[2]string{name, releaseDate}], nil
}

func (f *fakeNominationsRepo) Create(ctx context.Context, n *models.UserNomination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, p := range f.picks {
		if p == *n {
			return common.ErrorAlreadyExists
		}
	}
	f.picks = append(f.picks, *n)
	return nil
}

func (f *fakeNominationsRepo) Exists(ctx context.Context, n *models.UserNomination) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.picks {
		if p == *n {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeNominationsRepo) Delete(ctx context.Context, n *models.UserNomination) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.picks {
		if p == *n {
			f.picks = append(f.picks[:i], f.picks[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

// --- stats ---

type fakeStatsRepo struct {
	stats.Repository

	mu        sync.Mutex
	calls     map[string]int
	countries []models.BirthCountry
	staff     []models.StaffOscarStats
	byCountry []models.StaffByCountry
	err       error
}

func (f *fakeStatsRepo) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeStatsRepo) TopBirthCountries(ctx context.Context) ([]models.BirthCountry, error) {
	f.hit("TopBirthCountries")
	return f.countries, f.err
}

func (f *fakeStatsRepo) StaffOscarStats(ctx context.Context, role string) ([]models.StaffOscarStats, error) {
	f.hit("StaffOscarStats:" + role)
	return f.staff, f.err
}

func (f *fakeStatsRepo) StaffByCountry(ctx context.Context, country string) ([]models.StaffByCountry, error) {
	f.hit("StaffByCountry:" + country)
	if f.byCountry == nil {
		return []models.StaffByCountry{}, f.err
	}
	return f.byCountry, f.err
}

func (f *fakeStatsRepo) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	f.hit("Dashboard")
	return &models.DashboardStats{TotalNominations: 1}, f.err
}

// --- manager ---

type fakeRepoManager struct {
	users       *fakeUsersRepo
	sessions    *fakeSessionsRepo
	nominations *fakeNominationsRepo
	stats       *fakeStatsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:       newFakeUsersRepo(),
		sessions:    newFakeSessionsRepo(),
		nominations: newFakeNominationsRepo(),
		stats:       &fakeStatsRepo{},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository {
	return m.users
}

func (m *fakeRepoManager) Sessions(dbx.DBTX) sessions.Repository {
	return m.sessions
}

func (m *fakeRepoManager) UserNominations(dbx.DBTX) usernominations.Repository {
	return m.nominations
}

func (m *fakeRepoManager) Stats(dbx.DBTX) stats.Repository {
	return m.stats
}
