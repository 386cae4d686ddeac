// Package payment abstracts the external payment widget. The widget is a
// black box: CVPro hands it a request and observes exactly one of three
// outcomes. There is no server-side re-verification of provider callbacks.
package payment

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/google/uuid"
)

// Outcome is the only payment signal the rest of the system ever sees.
type Outcome int

const (
	// Success: the provider reports a completed charge.
	Success Outcome = iota
	// Cancelled: the user closed the widget. A normal path, not an error.
	Cancelled
	// Pending: the provider accepted the charge but confirmation is still
	// in flight. Treated as a soft success.
	Pending
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Cancelled:
		return "cancelled"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Customer identifies the payer to the widget.
type Customer struct {
	Name  string
	Email string
	Phone string
}

// Request is what the widget is invoked with.
type Request struct {
	Reference string
	Amount    int64
	Currency  string
	Customer  Customer
}

// Meta is the provider-asserted payment detail persisted with a purchase.
type Meta struct {
	Provider  string `json:"provider"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Status    string `json:"status"`
}

// Provider collects a payment and reports the outcome. Implementations block
// until the widget resolves or ctx is done.
type Provider interface {
	Collect(ctx context.Context, req Request) (Outcome, error)
}

// NewReference generates a fresh payment reference for a download attempt,
// e.g. "BUNDLE-20260830-1f0ca2". One reference per attempt, never reused.
func NewReference(p product.Product) string {
	return p.ReferencePrefix() + "-" + time.Now().UTC().Format("20060102") + "-" + uuid.NewString()[:8]
}
