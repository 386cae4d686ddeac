package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/cvpro/internal/server/entitlements"
	"github.com/dmitrijs2005/cvpro/internal/server/migrations"
	"github.com/dmitrijs2005/cvpro/internal/server/refreshtokens"
	"github.com/dmitrijs2005/cvpro/internal/server/sales"
	"github.com/dmitrijs2005/cvpro/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresRepositoryManager struct {
	db            *sql.DB
	users         users.Repository
	refreshTokens refreshtokens.Repository
	entitlements  entitlements.Repository
	sales         sales.Repository
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) RefreshTokens() refreshtokens.Repository {
	return m.refreshTokens
}

func (m *PostgresRepositoryManager) Entitlements() entitlements.Repository {
	return m.entitlements
}

func (m *PostgresRepositoryManager) Sales() sales.Repository {
	return m.sales
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.UpContext(ctx, m.db, "."); err != nil {
		return err
	}

	return nil
}

func NewPostgresRepositoryManager(dsn string) (RepositoryManager, error) {

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	userRepo, err := users.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("user repo creation error: %w", err)
	}

	tokenRepo, err := refreshtokens.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("refresh token repo creation error: %w", err)
	}

	entitlementRepo, err := entitlements.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("entitlement repo creation error: %w", err)
	}

	salesRepo, err := sales.NewPostgresRepository(db)
	if err != nil {
		return nil, fmt.Errorf("sales repo creation error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:            db,
		users:         userRepo,
		refreshTokens: tokenRepo,
		entitlements:  entitlementRepo,
		sales:         salesRepo,
	}

	err = m.RunMigrations(context.Background())
	if err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
