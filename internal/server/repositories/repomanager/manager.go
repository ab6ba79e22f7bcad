package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/oscardash/internal/dbx"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/stats"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/usernominations"
	"github.com/dmitrijs2005/oscardash/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	UserNominations(db dbx.DBTX) usernominations.Repository
	Stats(db dbx.DBTX) stats.Repository
}
