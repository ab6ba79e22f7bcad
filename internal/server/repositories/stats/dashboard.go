package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

const (
	totalNominationsQuery = `SELECT COUNT(*) FROM nominations`
	totalWinnersQuery     = `SELECT COUNT(*) FROM nominations WHERE won`
	userNominationsQuery  = `SELECT COUNT(*) FROM user_nominations`

	// Ordered by username, not by insertion: user_nominations has no
	// timestamp column to order on.
	recentNominationsQuery = `
	SELECT un.user_username AS username,
	       un.movie_name,
	       un.person_name,
	       un.category,
	       un.iteration
	FROM user_nominations un
	ORDER BY un.user_username DESC
	LIMIT 5
`

	topCategoriesQuery = `
	SELECT category, COUNT(*) AS count
	FROM nominations
	GROUP BY category
	ORDER BY count DESC
	LIMIT 5
`

	recentWinnersQuery = `
	SELECT DISTINCT m.name AS movie_name, n.category, n.iteration
	FROM nominations n
	JOIN movies m
	  ON n.movie_name = m.name AND n.movie_release_date = m.release_date
	WHERE n.won
	  AND (n.category IN (
	           'Best Picture',
	           'Best Animated Feature Film',
	           'Best International Feature Film',
	           'Best Foreign Language Film',
	           'Best Documentary Feature Film')
	       OR n.category ILIKE ANY (ARRAY['%Picture%', '%Film%', '%Motion Picture%', '%Production%']))
	ORDER BY n.iteration DESC
	LIMIT 3
`
)

func (r *PostgresRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

// Dashboard runs the six dashboard statements one after another and fails on
// the first error.
func (r *PostgresRepository) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var (
		stats models.DashboardStats
		err   error
	)

	if stats.TotalNominations, err = r.count(ctx, totalNominationsQuery); err != nil {
		return nil, err
	}
	if stats.TotalWinners, err = r.count(ctx, totalWinnersQuery); err != nil {
		return nil, err
	}
	if stats.UserNominations, err = r.count(ctx, userNominationsQuery); err != nil {
		return nil, err
	}

	stats.RecentNominations, err = queryList(ctx, r.db, recentNominationsQuery, func(rows *sql.Rows, n *models.RecentUserNomination) error {
		return rows.Scan(&n.UserName, &n.MovieName, &n.PersonName, &n.Category, &n.Iteration)
	})
	if err != nil {
		return nil, err
	}

	stats.TopCategories, err = queryList(ctx, r.db, topCategoriesQuery, func(rows *sql.Rows, c *models.CategoryCount) error {
		return rows.Scan(&c.Category, &c.Count)
	})
	if err != nil {
		return nil, err
	}

	stats.RecentWinners, err = queryList(ctx, r.db, recentWinnersQuery, func(rows *sql.Rows, w *models.RecentWinner) error {
		return rows.Scan(&w.MovieName, &w.Category, &w.Iteration)
	})
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
