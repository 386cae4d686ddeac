package httpapi

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
)

func (s *Server) handleSnapshotGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	data, err := s.snapshots.Load(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSnapshotPost(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	// read one byte past the cap so oversized bodies are detected without
	// buffering them whole
	body, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxSnapshotBytes+1))
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	if err := s.snapshots.Save(r.Context(), claims.UserID, body); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}
