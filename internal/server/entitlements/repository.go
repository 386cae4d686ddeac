package entitlements

import (
	"context"

	"github.com/dmitrijs2005/cvpro/internal/entitlement"
)

// Repository persists one entitlement record per user, last-write-wins.
// It satisfies purchase.EntitlementStore.
type Repository interface {
	Get(ctx context.Context, userID string) (entitlement.Record, bool, error)
	Put(ctx context.Context, userID string, rec entitlement.Record) error
	Count(ctx context.Context) (int64, error)
}
