// Package httpapi exposes the dashboard services as a JSON REST API over gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/logging"
	"github.com/dmitrijs2005/oscardash/internal/server/metrics"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

// UserService is the authentication surface used by the handlers.
type UserService interface {
	Register(ctx context.Context, in models.NewUser) (*models.User, string, error)
	Login(ctx context.Context, userName, password string) (*models.User, string, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.User, string, error)
	SessionTTL() time.Duration
}

// NominationService manages the signed-in user's picks.
type NominationService interface {
	List(ctx context.Context, userName string) ([]models.UserNominationRow, error)
	Create(ctx context.Context, userName string, in models.UserNomination) (*models.UserNomination, error)
	Delete(ctx context.Context, userName string, key models.UserNomination) (bool, error)
}

// StatsService serves the read-only dashboard views.
type StatsService interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	TopNominatedMovies(ctx context.Context) ([]models.TopNominatedMovie, error)
	StaffOscarStats(ctx context.Context, role string) ([]models.StaffOscarStats, error)
	TopBirthCountries(ctx context.Context) ([]models.BirthCountry, error)
	StaffByCountry(ctx context.Context, country string) ([]models.StaffByCountry, error)
	DreamTeam(ctx context.Context) ([]models.DreamTeamMember, error)
	TopProductionCompanies(ctx context.Context) ([]models.ProductionCompany, error)
	NonEnglishMovies(ctx context.Context) ([]models.NonEnglishMovie, error)
	Persons(ctx context.Context) ([]models.PersonRef, error)
	Movies(ctx context.Context) ([]models.MovieRef, error)
}

// Pinger reports database reachability; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options tunes the HTTP server.
type Options struct {
	Address         string
	SecureCookies   bool
	ShutdownTimeout time.Duration
	ReleaseMode     bool
}

type HTTPServer struct {
	opts        Options
	users       UserService
	nominations NominationService
	stats       StatsService
	db          Pinger
	metrics     *metrics.Metrics
	logger      logging.Logger
}

func NewHTTPServer(opts Options, l logging.Logger, us UserService, ns NominationService, ss StatsService, db Pinger, m *metrics.Metrics) *HTTPServer {
	if m == nil {
		m = metrics.New()
	}
	return &HTTPServer{
		opts:        opts,
		users:       us,
		nominations: ns,
		stats:       ss,
		db:          db,
		metrics:     m,
		logger:      l.With("module", "http_server"),
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for up
// to ShutdownTimeout.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
