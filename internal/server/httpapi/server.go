// Package httpapi wires the CVPro services into the public JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/server/admin"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
	"github.com/dmitrijs2005/cvpro/internal/server/entitlements"
	"github.com/dmitrijs2005/cvpro/internal/server/snapshots"
	"github.com/dmitrijs2005/cvpro/internal/server/suggest"
	"github.com/dmitrijs2005/cvpro/internal/server/users"
)

type Server struct {
	cfg          *config.Config
	logger       logging.Logger
	users        *users.Service
	entitlements *entitlements.Service
	snapshots    *snapshots.Service
	suggest      *suggest.Service
	admin        *admin.Service
	httpServer   *http.Server
}

func NewServer(
	cfg *config.Config,
	logger logging.Logger,
	userService *users.Service,
	entitlementService *entitlements.Service,
	snapshotService *snapshots.Service,
	suggestService *suggest.Service,
	adminService *admin.Service,
) *Server {
	s := &Server{
		cfg:          cfg,
		logger:       logger,
		users:        userService,
		entitlements: entitlementService,
		snapshots:    snapshotService,
		suggest:      suggestService,
		admin:        adminService,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.EndpointAddrHTTP,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router builds the route tree. Split out from Run so tests can mount it on
// httptest.Server.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/refresh", s.handleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware([]byte(s.cfg.SecretKey)))

		r.Get("/api/entitlement", s.handleEntitlementGet)
		r.Post("/api/entitlement", s.handleEntitlementPost)

		r.Get("/api/snapshot", s.handleSnapshotGet)
		r.Post("/api/snapshot", s.handleSnapshotPost)

		r.Post("/api/suggest", s.handleSuggest)
		r.Post("/api/cover-letter-docx", s.handleCoverLetterDocx)

		r.Route("/api/admin", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/ping", s.handleAdminPing)
			r.Get("/metrics", s.handleAdminMetrics)
		})
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
