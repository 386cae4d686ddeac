// Package drafts stores named form drafts in the local SQLite database so
// work survives between CLI sessions without a server round trip.
package drafts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// Draft is one locally saved form state.
type Draft struct {
	Name      string
	Snapshot  *snapshot.FormSnapshot
	UpdatedAt time.Time
}

// Info is the listing view of a draft, without the payload.
type Info struct {
	Name      string
	UpdatedAt time.Time
}

type Repository interface {
	Save(ctx context.Context, name string, s *snapshot.FormSnapshot) error
	Get(ctx context.Context, name string) (*Draft, error)
	List(ctx context.Context) ([]Info, error)
	Delete(ctx context.Context, name string) error
}
