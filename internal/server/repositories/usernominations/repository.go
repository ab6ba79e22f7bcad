// Package usernominations persists the personal nomination picks users make
// against the movie and person catalog.
package usernominations

import (
	"context"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

// Repository reads and writes user_nominations rows. Dates in every argument
// are expected in YYYY-MM-DD form.
type Repository interface {
	ListByUser(ctx context.Context, userName string) ([]models.UserNominationRow, error)
	MovieExists(ctx context.Context, name, releaseDate string) (bool, error)
	Create(ctx context.Context, n *models.UserNomination) error
	Exists(ctx context.Context, n *models.UserNomination) (bool, error)
	Delete(ctx context.Context, n *models.UserNomination) error
}
