package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/server/auth"
	"github.com/dmitrijs2005/cvpro/internal/server/suggest"
)

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	var req suggest.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}
	if req.Role == "" {
		writeError(w, common.ErrorValidation)
		return
	}

	// rate limited per account, not per IP: tokens travel with the user
	lines, err := s.suggest.Suggest(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"suggestions": lines})
}
