package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/oscardash/internal/dbx"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// queryList runs query and maps each row with scan. The result is never nil.
func queryList[T any](ctx context.Context, db dbx.DBTX, query string, scan func(*sql.Rows, *T) error, args ...any) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []T{}
	for rows.Next() {
		var item T
		if err := scan(rows, &item); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

const topNominatedMoviesQuery = `
	SELECT u.movie_name,
	       to_char(u.movie_release_date, 'YYYY-MM-DD') AS release_date,
	       u.category,
	       u.iteration AS year,
	       COUNT(*) AS count
	FROM user_nominations u
	GROUP BY u.movie_name, u.movie_release_date, u.category, u.iteration
	ORDER BY count DESC, u.iteration DESC
	LIMIT 50
`

func (r *PostgresRepository) TopNominatedMovies(ctx context.Context) ([]models.TopNominatedMovie, error) {
	return queryList(ctx, r.db, topNominatedMoviesQuery, func(rows *sql.Rows, m *models.TopNominatedMovie) error {
		return rows.Scan(&m.MovieName, &m.ReleaseDate, &m.Category, &m.Year, &m.Count)
	})
}

const staffOscarStatsQuery = `
	SELECT p.name,
	       to_char(p.date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
	       b.role,
	       COUNT(DISTINCT (n.category, n.iteration)) AS nominations,
	       SUM(CASE WHEN n.won THEN 1 ELSE 0 END) AS oscars,
	       COALESCE(string_agg(DISTINCT CASE WHEN n.won THEN n.category END, ', '), '') AS won_categories
	FROM persons p
	JOIN belongs b
	  ON p.name = b.person_name AND p.date_of_birth = b.person_date_of_birth
	JOIN nominations n
	  ON b.movie_name = n.movie_name AND b.movie_release_date = n.movie_release_date
	 AND p.name = n.person_name AND p.date_of_birth = n.person_date_of_birth
	WHERE ($1::text = '' OR b.role = $1)
	GROUP BY p.name, p.date_of_birth, b.role
	ORDER BY oscars DESC, nominations DESC
	LIMIT 100
`

func (r *PostgresRepository) StaffOscarStats(ctx context.Context, role string) ([]models.StaffOscarStats, error) {
	return queryList(ctx, r.db, staffOscarStatsQuery, func(rows *sql.Rows, s *models.StaffOscarStats) error {
		return rows.Scan(&s.PersonName, &s.DateOfBirth, &s.Role, &s.Nominations, &s.Oscars, &s.WonCategories)
	}, role)
}

const topBirthCountriesQuery = `
	SELECT p.country_of_birth AS country, COUNT(DISTINCT p.name) AS count
	FROM persons p
	JOIN nominations n
	  ON p.name = n.person_name AND p.date_of_birth = n.person_date_of_birth
	WHERE n.category IN (
	        'Actor in a Leading Role',
	        'Actress in a Leading Role',
	        'Best Actor',
	        'Best Actress',
	        'Best Actor in a Leading Role',
	        'Best Actress in a Leading Role')
	  AND n.won
	  AND p.country_of_birth IS NOT NULL
	  AND p.country_of_birth <> ''
	GROUP BY p.country_of_birth
	ORDER BY count DESC
	LIMIT 5
`

func (r *PostgresRepository) TopBirthCountries(ctx context.Context) ([]models.BirthCountry, error) {
	return queryList(ctx, r.db, topBirthCountriesQuery, func(rows *sql.Rows, c *models.BirthCountry) error {
		return rows.Scan(&c.Country, &c.Count)
	})
}

const staffByCountryQuery = `
	SELECT p.name,
	       to_char(p.date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
	       p.country_of_birth,
	       n.category,
	       COUNT(DISTINCT (n.category, n.iteration)) AS nominations,
	       SUM(CASE WHEN n.won THEN 1 ELSE 0 END) AS oscars
	FROM persons p
	JOIN nominations n
	  ON p.name = n.person_name AND p.date_of_birth = n.person_date_of_birth
	WHERE p.country_of_birth = $1
	GROUP BY p.name, p.date_of_birth, p.country_of_birth, n.category
	ORDER BY oscars DESC, nominations DESC
`

func (r *PostgresRepository) StaffByCountry(ctx context.Context, country string) ([]models.StaffByCountry, error) {
	return queryList(ctx, r.db, staffByCountryQuery, func(rows *sql.Rows, s *models.StaffByCountry) error {
		return rows.Scan(&s.PersonName, &s.DateOfBirth, &s.CountryOfBirth, &s.Category, &s.Nominations, &s.Oscars)
	}, country)
}

// Companies are grouped as stored; rows without a company never reach the
// COALESCE because the WHERE clause drops them first.
const topProductionCompaniesQuery = `
	SELECT COALESCE(m.pd_company, 'Unknown') AS pd_company, COUNT(*) AS oscars
	FROM movies m
	JOIN nominations n
	  ON m.name = n.movie_name AND m.release_date = n.movie_release_date
	WHERE n.won AND m.pd_company IS NOT NULL AND m.pd_company <> ''
	GROUP BY m.pd_company
	ORDER BY oscars DESC
	LIMIT 5
`

func (r *PostgresRepository) TopProductionCompanies(ctx context.Context) ([]models.ProductionCompany, error) {
	return queryList(ctx, r.db, topProductionCompaniesQuery, func(rows *sql.Rows, c *models.ProductionCompany) error {
		return rows.Scan(&c.PDCompany, &c.Oscars)
	})
}

const nonEnglishMoviesQuery = `
	SELECT DISTINCT
	       m.name AS movie_name,
	       to_char(m.release_date, 'YYYY-MM-DD') AS release_date,
	       m.language,
	       n.iteration AS year,
	       n.category,
	       COALESCE(m.pd_company, 'Unknown') AS pd_company,
	       p.name AS director
	FROM movies m
	JOIN nominations n
	  ON m.name = n.movie_name AND m.release_date = n.movie_release_date
	LEFT JOIN belongs b
	  ON m.name = b.movie_name AND m.release_date = b.movie_release_date AND b.role = 'Director'
	LEFT JOIN persons p
	  ON b.person_name = p.name AND b.person_date_of_birth = p.date_of_birth
	WHERE m.language <> 'English' AND m.language IS NOT NULL AND m.language <> '' AND n.won
	ORDER BY year DESC
`

func (r *PostgresRepository) NonEnglishMovies(ctx context.Context) ([]models.NonEnglishMovie, error) {
	return queryList(ctx, r.db, nonEnglishMoviesQuery, func(rows *sql.Rows, m *models.NonEnglishMovie) error {
		var director sql.NullString
		if err := rows.Scan(&m.MovieName, &m.ReleaseDate, &m.Language, &m.Year, &m.Category, &m.PDCompany, &director); err != nil {
			return err
		}
		if director.Valid {
			m.Director = &director.String
		}
		return nil
	})
}

const personsQuery = `
	SELECT p.name, to_char(p.date_of_birth, 'YYYY-MM-DD') AS date_of_birth
	FROM persons p
	ORDER BY p.name
	LIMIT 1000
`

func (r *PostgresRepository) Persons(ctx context.Context) ([]models.PersonRef, error) {
	return queryList(ctx, r.db, personsQuery, func(rows *sql.Rows, p *models.PersonRef) error {
		return rows.Scan(&p.Name, &p.DateOfBirth)
	})
}

const moviesQuery = `
	SELECT m.name, to_char(m.release_date, 'YYYY-MM-DD') AS release_date
	FROM movies m
	ORDER BY m.name
	LIMIT 1000
`

func (r *PostgresRepository) Movies(ctx context.Context) ([]models.MovieRef, error) {
	return queryList(ctx, r.db, moviesQuery, func(rows *sql.Rows, m *models.MovieRef) error {
		return rows.Scan(&m.Name, &m.ReleaseDate)
	})
}
