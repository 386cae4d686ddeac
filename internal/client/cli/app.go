// Package cli is the interactive terminal front end: a small REPL over the
// form state, local drafts and the download pipeline.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/client/api"
	"github.com/dmitrijs2005/cvpro/internal/client/config"
	"github.com/dmitrijs2005/cvpro/internal/client/drafts"
	"github.com/dmitrijs2005/cvpro/internal/client/services"
	"github.com/dmitrijs2005/cvpro/internal/client/session"
	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// App holds the live form state and everything the commands need. The form
// is mutated in place by edit commands; downloads fingerprint whatever it
// holds at that moment.
type App struct {
	config    *config.Config
	session   *session.Session
	api       *api.Client
	drafts    drafts.Repository
	downloads *services.DownloadService
	form      *snapshot.FormSnapshot
	db        *sql.DB
	reader    *bufio.Reader
	out       io.Writer
	online    atomic.Bool
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	repo, db, err := drafts.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}

	sess := &session.Session{}
	apiClient := api.NewClient(c.ServerEndpointAddr, sess)

	reader := bufio.NewReader(os.Stdin)
	out := os.Stdout

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	provider := NewWidgetProvider(reader, out)
	ds := services.NewDownloadService(apiClient, sess, provider, product.DefaultPrices(), logger)

	return &App{
		config:    c,
		session:   sess,
		api:       apiClient,
		drafts:    repo,
		downloads: ds,
		form:      &snapshot.FormSnapshot{},
		db:        db,
		reader:    reader,
		out:       out,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	go a.startOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner, a.out)
}

func (a *App) isLoggedIn() bool { return a.session.LoggedIn() }

func (a *App) mode() Mode {
	if a.online.Load() {
		return ModeOnline
	}
	return ModeOffline
}

func (a *App) status() string {
	s := string(a.mode())
	if a.isLoggedIn() {
		s = a.session.Email() + " " + s
	}
	return "(" + s + ")"
}

func (a *App) startOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		a.online.Store(a.api.Ping(pctx) == nil)
	}
	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			check()
		case <-ctx.Done():
			return
		}
	}
}
