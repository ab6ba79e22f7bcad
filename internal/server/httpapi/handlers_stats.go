package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/gin-gonic/gin"
)

// serveList writes the result of load as JSON, or logs and answers 500 with
// failMsg. Loaders always return non-nil slices, so empty results render as [].
func serveList[T any](s *HTTPServer, c *gin.Context, failMsg string, load func(context.Context) ([]T, error)) {
	items, err := load(c.Request.Context())
	if err != nil {
		s.internalError(c, failMsg, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

func (s *HTTPServer) handleDashboard(c *gin.Context) {
	stats, err := s.stats.Dashboard(c.Request.Context())
	if err != nil {
		s.internalError(c, "Failed to fetch dashboard data", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *HTTPServer) handleTopNominatedMovies(c *gin.Context) {
	serveList(s, c, "Failed to fetch top nominated movies", s.stats.TopNominatedMovies)
}

func (s *HTTPServer) handleStaffOscars(c *gin.Context) {
	role := strings.TrimSpace(c.Query("role"))
	serveList(s, c, "Failed to fetch staff oscar statistics", func(ctx context.Context) ([]models.StaffOscarStats, error) {
		return s.stats.StaffOscarStats(ctx, role)
	})
}

func (s *HTTPServer) handleTopBirthCountries(c *gin.Context) {
	serveList(s, c, "Failed to fetch top birth countries", s.stats.TopBirthCountries)
}

func (s *HTTPServer) handleStaffByCountry(c *gin.Context) {
	country := strings.TrimSpace(c.Query("country"))
	if country == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgCountryRequired})
		return
	}
	serveList(s, c, "Failed to fetch staff by country", func(ctx context.Context) ([]models.StaffByCountry, error) {
		return s.stats.StaffByCountry(ctx, country)
	})
}

func (s *HTTPServer) handleDreamTeam(c *gin.Context) {
	serveList(s, c, "Failed to fetch dream team", s.stats.DreamTeam)
}

func (s *HTTPServer) handleTopProductionCompanies(c *gin.Context) {
	serveList(s, c, "Failed to fetch top production companies", s.stats.TopProductionCompanies)
}

func (s *HTTPServer) handleNonEnglishMovies(c *gin.Context) {
	serveList(s, c, "Failed to fetch non-English movies", s.stats.NonEnglishMovies)
}

func (s *HTTPServer) handlePersons(c *gin.Context) {
	serveList(s, c, "Failed to fetch persons", s.stats.Persons)
}

func (s *HTTPServer) handleMovies(c *gin.Context) {
	serveList(s, c, "Failed to fetch movies", s.stats.Movies)
}
