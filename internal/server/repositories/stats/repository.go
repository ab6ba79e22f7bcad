// Package stats holds the fixed catalog of read-only aggregate queries behind
// the dashboard views.
package stats

import (
	"context"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

// Repository runs one statement per view. Every list method returns a
// non-nil slice.
type Repository interface {
	TopNominatedMovies(ctx context.Context) ([]models.TopNominatedMovie, error)
	// StaffOscarStats filters by belongs.role unless role is empty.
	StaffOscarStats(ctx context.Context, role string) ([]models.StaffOscarStats, error)
	TopBirthCountries(ctx context.Context) ([]models.BirthCountry, error)
	StaffByCountry(ctx context.Context, country string) ([]models.StaffByCountry, error)
	DreamTeam(ctx context.Context) ([]models.DreamTeamMember, error)
	TopProductionCompanies(ctx context.Context) ([]models.ProductionCompany, error)
	NonEnglishMovies(ctx context.Context) ([]models.NonEnglishMovie, error)
	Persons(ctx context.Context) ([]models.PersonRef, error)
	Movies(ctx context.Context) ([]models.MovieRef, error)
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}
