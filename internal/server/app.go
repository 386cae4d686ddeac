// Package server initializes and runs the CVPro backend: it wires storage,
// services and the HTTP API, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
	"github.com/dmitrijs2005/cvpro/internal/server/admin"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
	"github.com/dmitrijs2005/cvpro/internal/server/entitlements"
	"github.com/dmitrijs2005/cvpro/internal/server/httpapi"
	"github.com/dmitrijs2005/cvpro/internal/server/shared/db"
	"github.com/dmitrijs2005/cvpro/internal/server/snapshots"
	"github.com/dmitrijs2005/cvpro/internal/server/suggest"
	"github.com/dmitrijs2005/cvpro/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	store, err := snapshots.NewS3Store(context.Background(), c)
	if err != nil {
		return nil, fmt.Errorf("snapshot store init error: %w", err)
	}

	recorder := purchase.NewRecorder(m.Entitlements(), m.Sales(), c.Prices, nil)

	srv := httpapi.NewServer(
		c,
		logger,
		users.NewService(m.Users(), m.RefreshTokens(), c),
		entitlements.NewService(m.Entitlements(), recorder),
		snapshots.NewService(store, c.MaxSnapshotBytes),
		suggest.NewService(c, logger),
		admin.NewService(m.Sales(), m.Entitlements(), c, nil),
	)

	return &App{config: c, logger: logger, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
