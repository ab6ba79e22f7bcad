package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/oscardash/internal/common"
	"github.com/dmitrijs2005/oscardash/internal/server/models"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/repomanager"
)

// NominationService manages the personal picks of the signed-in user.
type NominationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNominationService(db *sql.DB, m repomanager.RepositoryManager) *NominationService {
	return &NominationService{db: db, repomanager: m}
}

func (s *NominationService) List(ctx context.Context, userName string) ([]models.UserNominationRow, error) {
	return s.repomanager.UserNominations(s.db).ListByUser(ctx, userName)
}

// Create stores in as a pick owned by userName, whatever in.UserName says.
// The referenced movie must exist.
func (s *NominationService) Create(ctx context.Context, userName string, in models.UserNomination) (*models.UserNomination, error) {
	n, err := normalizeNomination(userName, in)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.UserNominations(s.db)

	exists, err := repo.MovieExists(ctx, n.MovieName, n.MovieReleaseDate)
	if err != nil {
		return nil, fmt.Errorf("error checking movie: %w", err)
	}
	if !exists {
		return nil, common.ErrMovieNotFound
	}

	if err := repo.Create(ctx, &n); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating nomination: %w", err)
	}

	return &n, nil
}

// Delete removes the pick matching every field of key. It reports false
// when no such pick exists.
func (s *NominationService) Delete(ctx context.Context, userName string, key models.UserNomination) (bool, error) {
	n, err := normalizeNomination(userName, key)
	if err != nil {
		return false, err
	}

	repo := s.repomanager.UserNominations(s.db)

	exists, err := repo.Exists(ctx, &n)
	if err != nil {
		return false, fmt.Errorf("error checking nomination: %w", err)
	}
	if !exists {
		return false, nil
	}

	if err := repo.Delete(ctx, &n); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("error deleting nomination: %w", err)
	}

	return true, nil
}

func normalizeNomination(userName string, in models.UserNomination) (models.UserNomination, error) {
	var err error
	in.UserName = userName
	if in.MovieReleaseDate, err = NormalizeDate(in.MovieReleaseDate); err != nil {
		return in, err
	}
	if in.PersonDateOfBirth, err = NormalizeDate(in.PersonDateOfBirth); err != nil {
		return in, err
	}
	return in, nil
}
