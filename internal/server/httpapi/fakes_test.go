package httpapi

import (
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/metrics"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

const (
	validToken     = "valid-token"
	refreshedToken = "refreshed-token"
)

type fakeUsers struct {
	registerErr error
	loginErr    error
	logoutErr   error
	currentErr  error

	registered    *models.NewUser
	loggedOut     []string
	currentUser   *models.User
	loginAttempts int
}

func (f *fakeUsers) Register(_ context.Context, in models.NewUser) (*models.User, string, error) {
	if f.registerErr != nil {
		return nil, "", f.registerErr
	}
	f.registered = &in
	return &models.User{UserName: in.UserName, Email: in.Email, Birthdate: in.Birthdate, Gender: in.Gender, Country: in.Country}, validToken, nil
}

func (f *fakeUsers) Login(_ context.Context, userName, password string) (*models.User, string, error) {
	f.loginAttempts++
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	if password == "" {
		return nil, "", common.ErrorInvalidCredentials
	}
	return &models.User{UserName: userName}, validToken, nil
}

func (f *fakeUsers) Logout(_ context.Context, token string) error {
	f.loggedOut = append(f.loggedOut, token)
	return f.logoutErr
}

func (f *fakeUsers) CurrentUser(_ context.Context, token string) (*models.User, string, error) {
	if f.currentErr != nil {
		return nil, "", f.currentErr
	}
	if token != validToken {
		return nil, "", common.ErrorUnauthorized
	}
	u := f.currentUser
	if u == nil {
		u = &models.User{UserName: "alice"}
	}
	return u, refreshedToken, nil
}

func (f *fakeUsers) SessionTTL() time.Duration { return time.Hour }

type fakeNominations struct {
	rows      []models.UserNominationRow
	listErr   error
	createErr error
	deleted   bool
	deleteErr error

	gotUser   string
	gotCreate models.UserNomination
	gotDelete models.UserNomination
}

func (f *fakeNominations) List(_ context.Context, userName string) ([]models.UserNominationRow, error) {
	f.gotUser = userName
	return f.rows, f.listErr
}

func (f *fakeNominations) Create(_ context.Context, userName string, in models.UserNomination) (*models.UserNomination, error) {
	f.gotUser = userName
	f.gotCreate = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	in.UserName = userName
	return &in, nil
}

func (f *fakeNominations) Delete(_ context.Context, userName string, key models.UserNomination) (bool, error) {
	f.gotUser = userName
	f.gotDelete = key
	return f.deleted, f.deleteErr
}

type fakeStats struct {
	err          error
	gotRole      string
	gotCountry   string
	countryCalls int
	dreamTeam    []models.DreamTeamMember
}

func (f *fakeStats) Dashboard(context.Context) (*models.DashboardStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.DashboardStats{
		TotalNominations:  10,
		TotalWinners:      3,
		RecentNominations: []models.RecentUserNomination{},
		TopCategories:     []models.CategoryCount{{Category: "Best Picture", Count: 10}},
		RecentWinners:     []models.RecentWinner{},
	}, nil
}

func (f *fakeStats) TopNominatedMovies(context.Context) ([]models.TopNominatedMovie, error) {
	return nil, f.err
}

func (f *fakeStats) StaffOscarStats(_ context.Context, role string) ([]models.StaffOscarStats, error) {
	f.gotRole = role
	return []models.StaffOscarStats{}, f.err
}

func (f *fakeStats) TopBirthCountries(context.Context) ([]models.BirthCountry, error) {
	return []models.BirthCountry{{Country: "USA", Count: 42}}, f.err
}

func (f *fakeStats) StaffByCountry(_ context.Context, country string) ([]models.StaffByCountry, error) {
	f.countryCalls++
	f.gotCountry = country
	return []models.StaffByCountry{}, f.err
}

func (f *fakeStats) DreamTeam(context.Context) ([]models.DreamTeamMember, error) {
	return f.dreamTeam, f.err
}

func (f *fakeStats) TopProductionCompanies(context.Context) ([]models.ProductionCompany, error) {
	return []models.ProductionCompany{}, f.err
}

func (f *fakeStats) NonEnglishMovies(context.Context) ([]models.NonEnglishMovie, error) {
	return []models.NonEnglishMovie{}, f.err
}

func (f *fakeStats) Persons(context.Context) ([]models.PersonRef, error) {
	return []models.PersonRef{}, f.err
}

func (f *fakeStats) Movies(context.Context) ([]models.MovieRef, error) {
	return []models.MovieRef{}, f.err
}

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type testServer struct {
	srv         *HTTPServer
	users       *fakeUsers
	nominations *fakeNominations
	stats       *fakeStats
}

func newTestServer() *testServer {
	ts := &testServer{
		users:       &fakeUsers{},
		nominations: &fakeNominations{},
		stats:       &fakeStats{},
	}
	l := logging.New(io.Discard, "error", "text")
	ts.srv = NewHTTPServer(Options{ShutdownTimeout: time.Second}, l, ts.users, ts.nominations, ts.stats, fakePinger{}, metrics.New())
	return ts
}
