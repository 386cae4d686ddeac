package sales

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/purchase"
)

// Totals is an aggregate over the sale log for reporting.
type Totals struct {
	Count    int64
	Amount   int64
	Currency string
}

// Repository is the append-only sale log. Rows are never updated or
// deleted; the read side exists for the admin metrics endpoint only.
// It satisfies purchase.SalesLog.
type Repository interface {
	Append(ctx context.Context, sale purchase.Sale) error
	Recent(ctx context.Context, limit int) ([]purchase.Sale, error)
	TotalsSince(ctx context.Context, since time.Time) (Totals, error)
}
