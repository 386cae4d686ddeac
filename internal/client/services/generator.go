// Package services wires the download pipeline to the HTTP API client for
// the CLI: document generation, the entitlement cache and purchase
// recording.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/client/pdfgen"
	"github.com/dmitrijs2005/cvpro/internal/docgen"
	"github.com/dmitrijs2005/cvpro/internal/download"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// CoverRenderer produces the cover-letter document on the server.
// *api.Client satisfies it.
type CoverRenderer interface {
	CoverLetterDocx(ctx context.Context, s *snapshot.FormSnapshot) ([]byte, error)
}

// Generator builds the artifact set for a product. The CV PDF is always
// rendered locally. The cover letter is rendered by the backend when a
// remote renderer is set (authenticated sessions) and locally otherwise, so
// anonymous users still get their document.
type Generator struct {
	remote CoverRenderer
}

func NewGenerator(remote CoverRenderer) *Generator {
	return &Generator{remote: remote}
}

var _ download.Generator = (*Generator)(nil)

func (g *Generator) Generate(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) ([]download.Artifact, error) {
	var out []download.Artifact

	if p.IncludesCV() {
		out = append(out, download.Artifact{
			FileName: "cv.pdf",
			MIME:     pdfgen.MIME,
			Data:     pdfgen.CV(s),
		})
	}

	if p.IncludesCover() {
		data, err := g.coverLetter(ctx, s)
		if err != nil {
			return nil, fmt.Errorf("rendering cover letter: %w", err)
		}
		out = append(out, download.Artifact{
			FileName: "cover-letter.docx",
			MIME:     docgen.MIME,
			Data:     data,
		})
	}

	return out, nil
}

func (g *Generator) coverLetter(ctx context.Context, s *snapshot.FormSnapshot) ([]byte, error) {
	if g.remote != nil {
		return g.remote.CoverLetterDocx(ctx, s)
	}
	return docgen.CoverLetterDocx(s, time.Now)
}
