package httpapi

import (
	"io"
	"net/http"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
)

// maxPurchaseBody bounds an entitlement write; real bodies are tiny.
const maxPurchaseBody = 16 * 1024

func (s *Server) handleEntitlementGet(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	view, err := s.entitlements.Get(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "entitlement read failed", "error", err)
		writeError(w, common.ErrorInternal)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleEntitlementPost(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPurchaseBody))
	if err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	view, err := s.entitlements.RecordPurchase(r.Context(), claims.UserID, claims.Email, body)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
