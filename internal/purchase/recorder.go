package purchase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/google/uuid"
)

// Sale is one append-only revenue-log row. Sales are written once and never
// mutated; they exist for reporting, not for entitlement decisions.
type Sale struct {
	ID        string    `json:"id"`
	PaidAt    time.Time `json:"paidAt"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email,omitempty"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	Reference string    `json:"reference,omitempty"`
	Status    string    `json:"status"`
	Product   string    `json:"product"`
	CvHash    string    `json:"cvHash,omitempty"`
	CoverHash string    `json:"coverHash,omitempty"`
}

// EntitlementStore persists the per-user entitlement record. Writes are
// last-write-wins per user key.
type EntitlementStore interface {
	Get(ctx context.Context, userID string) (entitlement.Record, bool, error)
	Put(ctx context.Context, userID string, rec entitlement.Record) error
}

// SalesLog appends immutable sale rows.
type SalesLog interface {
	Append(ctx context.Context, sale Sale) error
}

// Recorder applies a successful payment to the entitlement store and the
// sales log.
//
// Re-invoking with identical arguments leaves the entitlement record in the
// same final state but appends another sale row: the log is not deduplicated
// by any idempotency key, so a double submission double-counts revenue.
// Known trade-off, kept as-is.
type Recorder struct {
	store  EntitlementStore
	sales  SalesLog
	prices product.PriceTable
	now    func() time.Time
}

func NewRecorder(store EntitlementStore, sales SalesLog, prices product.PriceTable, now func() time.Time) *Recorder {
	if now == nil {
		now = time.Now
	}
	return &Recorder{store: store, sales: sales, prices: prices, now: now}
}

// Record persists the purchase described by cmd for userID.
//
// Per-product semantics: a cv purchase overwrites only the CV hash, a cover
// purchase only the cover hash, a bundle both. PaidAt and LastProduct always
// move to the new purchase. The legacy PaidHash alias tracks the CV hash
// (falling back to the cover hash for cover-only purchases) so pre-bundle
// clients keep working.
//
// If the entitlement write fails the sale is still appended when possible
// and the updated record is returned alongside the error: the user has
// already been charged by the provider, so callers must deliver the
// document regardless and retry or at least log the store failure.
func (r *Recorder) Record(ctx context.Context, userID, email string, cmd Command) (entitlement.Record, error) {
	rec, _, err := r.store.Get(ctx, userID)
	if err != nil {
		return entitlement.Record{}, fmt.Errorf("loading entitlement: %w", err)
	}

	switch cmd.Product {
	case product.CV:
		rec.PaidCvHash = cmd.CvHash
	case product.Cover:
		rec.PaidCoverHash = cmd.CoverHash
	case product.Bundle:
		rec.PaidCvHash = cmd.CvHash
		rec.PaidCoverHash = cmd.CoverHash
	}

	if rec.PaidCvHash != "" {
		rec.PaidHash = rec.PaidCvHash
	} else if rec.PaidCoverHash != "" {
		rec.PaidHash = rec.PaidCoverHash
	}
	rec.LastProduct = string(cmd.Product)
	rec.PaidAt = r.now().UTC()

	sale := r.buildSale(userID, email, cmd, rec.PaidAt)

	putErr := r.store.Put(ctx, userID, rec)

	if err := r.sales.Append(ctx, sale); err != nil && putErr == nil {
		// The entitlement is recorded; a lost sale row only skews
		// reporting. Surface it to the caller for logging.
		return rec, fmt.Errorf("appending sale: %w", err)
	}

	if putErr != nil {
		return rec, fmt.Errorf("storing entitlement: %w", putErr)
	}
	return rec, nil
}

func (r *Recorder) buildSale(userID, email string, cmd Command, paidAt time.Time) Sale {
	amount := cmd.Payment.Amount
	if amount <= 0 {
		amount = r.prices.Price(cmd.Product)
	}
	currency := strings.TrimSpace(cmd.Payment.Currency)
	if currency == "" {
		currency = r.prices.Currency
	}
	status := strings.TrimSpace(cmd.Payment.Status)
	if status == "" {
		status = "paid"
	}

	return Sale{
		ID:        saleID(paidAt, userID, cmd),
		PaidAt:    paidAt,
		UserID:    userID,
		Email:     email,
		Amount:    amount,
		Currency:  currency,
		Reference: cmd.Payment.Reference,
		Status:    status,
		Product:   string(cmd.Product),
		CvHash:    cmd.CvHash,
		CoverHash: cmd.CoverHash,
	}
}

// saleID mirrors the historical key layout: timestamp, user, short hash
// prefix, plus a random suffix so two submissions in the same second still
// get distinct rows.
func saleID(paidAt time.Time, userID string, cmd Command) string {
	h := cmd.CvHash
	if h == "" {
		h = cmd.CoverHash
	}
	if len(h) > 10 {
		h = h[:10]
	}
	if h == "" {
		h = "unknown"
	}
	return fmt.Sprintf("%s_%s_%s_%s", paidAt.Format("2006-01-02T15-04-05"), userID, h, uuid.NewString()[:8])
}
