package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
)

// requireAdmin gates the /api/admin subtree on the allow-lists.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			writeError(w, common.ErrorUnauthorized)
			return
		}
		if !s.admin.IsAdmin(claims.UserID, claims.Email) {
			writeError(w, common.ErrorForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAdminPing(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "role": "admin"})
}

func (s *Server) handleAdminMetrics(w http.ResponseWriter, r *http.Request) {
	m, err := s.admin.Metrics(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "metrics query failed", "error", err)
		writeError(w, common.ErrorInternal)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
