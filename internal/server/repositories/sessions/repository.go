// Package sessions declares the repository contract for server-side login
// sessions.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

// Repository stores sessions keyed by their opaque id.
type Repository interface {
	// Create inserts a new session row.
	Create(ctx context.Context, session *models.Session) error

	// Find returns the session with the given id, expired or not.
	// Implementations return common.ErrorNotFound when the id is absent.
	Find(ctx context.Context, id string) (*models.Session, error)

	// Touch moves the session expiry to expires.
	Touch(ctx context.Context, id string, expires time.Time) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes sessions that expired before now and reports how many.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
