package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/docgen"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

func (s *Server) handleCoverLetterDocx(w http.ResponseWriter, r *http.Request) {
	var snap snapshot.FormSnapshot
	if err := json.NewDecoder(r.Body).Decode(&snap); err != nil {
		writeError(w, common.ErrorValidation)
		return
	}

	data, err := docgen.CoverLetterDocx(&snap, time.Now)
	if err != nil {
		s.logger.Error(r.Context(), "docx generation failed", "error", err)
		writeError(w, common.ErrorInternal)
		return
	}

	w.Header().Set("Content-Type", docgen.MIME)
	w.Header().Set("Content-Disposition", `attachment; filename="cover-letter.docx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
