package usernominations

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/dbx"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// keyPredicate matches a pick on all seven key columns.
const keyPredicate = `
		WHERE category = $1
		  AND iteration = $2
		  AND user_username = $3
		  AND movie_name = $4
		  AND movie_release_date = $5::date
		  AND person_name = $6
		  AND person_date_of_birth = $7::date`

func keyArgs(n *models.UserNomination) []any {
	return []any{n.Category, n.Iteration, n.UserName, n.MovieName, n.MovieReleaseDate, n.PersonName, n.PersonDateOfBirth}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userName string) ([]models.UserNominationRow, error) {
	query := `
		SELECT un.category,
		       un.iteration,
		       un.movie_name,
		       to_char(un.movie_release_date, 'YYYY-MM-DD'),
		       un.person_name,
		       to_char(un.person_date_of_birth, 'YYYY-MM-DD'),
		       to_char(p.date_of_birth, 'YYYY-MM-DD')
		FROM user_nominations un
		LEFT JOIN persons p
		       ON un.person_name = p.name AND un.person_date_of_birth = p.date_of_birth
		WHERE un.user_username = $1
		ORDER BY un.category, un.iteration DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userName)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.UserNominationRow{}
	for rows.Next() {
		var (
			item models.UserNominationRow
			dob  sql.NullString
		)
		if err := rows.Scan(&item.Category, &item.Iteration, &item.MovieName, &item.MovieReleaseDate,
			&item.PersonName, &item.PersonDateOfBirth, &dob); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if dob.Valid {
			item.DateOfBirth = &dob.String
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) MovieExists(ctx context.Context, name, releaseDate string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM movies WHERE name = $1 AND release_date = $2::date
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, name, releaseDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Create inserts n. A pick that already exists yields common.ErrorAlreadyExists.
func (r *PostgresRepository) Create(ctx context.Context, n *models.UserNomination) error {
	query := `
		INSERT INTO user_nominations
			(category, iteration, user_username, movie_name, movie_release_date, person_name, person_date_of_birth)
		VALUES ($1, $2, $3, $4, $5::date, $6, $7::date)
	`
	if _, err := r.db.ExecContext(ctx, query, keyArgs(n)...); err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, n *models.UserNomination) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_nominations` + keyPredicate + `
		)
	`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, keyArgs(n)...).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

// Delete removes the pick matching all seven fields of n. It returns
// common.ErrorNotFound when nothing matched.
func (r *PostgresRepository) Delete(ctx context.Context, n *models.UserNomination) error {
	query := `
		DELETE FROM user_nominations` + keyPredicate

	res, err := r.db.ExecContext(ctx, query, keyArgs(n)...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}
