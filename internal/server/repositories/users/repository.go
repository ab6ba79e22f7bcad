package users

import (
	"context"

	"github.com/dmitrijs2005/oscardash/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	Exists(ctx context.Context, login string) (bool, error)
	UpdatePassword(ctx context.Context, login string, password string) error
}
