package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cvpro/internal/server/entitlements"
	"github.com/dmitrijs2005/cvpro/internal/server/refreshtokens"
	"github.com/dmitrijs2005/cvpro/internal/server/sales"
	"github.com/dmitrijs2005/cvpro/internal/server/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	RefreshTokens() refreshtokens.Repository
	Entitlements() entitlements.Repository
	Sales() sales.Repository
}
