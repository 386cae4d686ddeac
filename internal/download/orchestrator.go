// Package download sequences a download attempt: validation, entitlement
// check, payment collection and delivery. The state machine per attempt is
//
//	Idle -> CheckingEntitlement -> {FreeDelivery | AwaitingPayment}
//	     -> {Delivering | Cancelled | Pending}
//
// with Pending moving to Delivering after a fixed delay.
package download

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/fingerprint"
	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// State of a download attempt.
type State int

const (
	Idle State = iota
	CheckingEntitlement
	FreeDelivery
	AwaitingPayment
	Delivering
	Cancelled
	Pending
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case CheckingEntitlement:
		return "checking-entitlement"
	case FreeDelivery:
		return "free-delivery"
	case AwaitingPayment:
		return "awaiting-payment"
	case Delivering:
		return "delivering"
	case Cancelled:
		return "cancelled"
	case Pending:
		return "pending"
	default:
		return "unknown"
	}
}

// Artifact is one generated document, ready to hand to the user.
type Artifact struct {
	FileName string
	MIME     string
	Data     []byte
}

// Generator produces the artifact set for a product from the current form
// state. CV products yield a PDF, cover products a Word document, the bundle
// both.
type Generator interface {
	Generate(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) ([]Artifact, error)
}

// EntitlementSource yields the stored entitlement record (usually through
// the TTL cache).
type EntitlementSource interface {
	Get(ctx context.Context) (entitlement.Record, error)
}

// PurchaseRecorder reports a successful payment to the backend.
type PurchaseRecorder interface {
	RecordPurchase(ctx context.Context, cmd purchase.Command) (entitlement.Record, error)
}

// SnapshotSaver persists the latest form state. Best-effort: failures are
// logged, never block delivery.
type SnapshotSaver interface {
	SaveSnapshot(ctx context.Context, s *snapshot.FormSnapshot) error
}

// Result summarizes a finished attempt. Artifacts is empty when the attempt
// ended in Cancelled.
type Result struct {
	State     State
	Free      bool
	Outcome   payment.Outcome
	Paid      bool
	Reference string
	Artifacts []Artifact
}

// Orchestrator drives download attempts. Entitlements, recorder and saver
// are nil for anonymous sessions: anonymous users always pay full price and
// never produce an entitlement write.
type Orchestrator struct {
	gen          Generator
	provider     payment.Provider
	entitlements EntitlementSource
	recorder     PurchaseRecorder
	saver        SnapshotSaver
	prices       product.PriceTable
	logger       logging.Logger

	// PendingDelay is how long a provider-pending outcome waits before
	// optimistic delivery.
	PendingDelay time.Duration
}

func NewOrchestrator(
	gen Generator,
	provider payment.Provider,
	entitlements EntitlementSource,
	recorder PurchaseRecorder,
	saver SnapshotSaver,
	prices product.PriceTable,
	logger logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		gen:          gen,
		provider:     provider,
		entitlements: entitlements,
		recorder:     recorder,
		saver:        saver,
		prices:       prices,
		logger:       logger,
		PendingDelay: 3 * time.Second,
	}
}

func (o *Orchestrator) authenticated() bool { return o.entitlements != nil }

// Download runs one complete attempt for p against the live form state s.
//
// Fingerprints are computed fresh wherever they are needed: once for the
// free check and again at the moment a payment succeeds, so edits made while
// the widget was open are credited correctly.
func (o *Orchestrator) Download(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) (Result, error) {
	if err := Validate(s, p); err != nil {
		return Result{State: Idle}, err
	}

	// CheckingEntitlement
	if o.authenticated() {
		free, err := o.isFree(ctx, s, p)
		if err != nil {
			o.logger.Warn(ctx, "entitlement check failed, falling back to paid flow", "error", err)
		} else if free {
			return o.deliverFree(ctx, s, p)
		}
	}

	return o.collectAndDeliver(ctx, s, p)
}

func (o *Orchestrator) isFree(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) (bool, error) {
	rec, err := o.entitlements.Get(ctx)
	if err != nil {
		return false, err
	}
	cvHash := fingerprint.Hash(snapshot.CanonicalForCV(s))
	coverHash := fingerprint.Hash(snapshot.CanonicalForCover(s))
	return entitlement.Resolve(p, cvHash, coverHash, rec).IsFree, nil
}

func (o *Orchestrator) deliverFree(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) (Result, error) {
	artifacts, err := o.gen.Generate(ctx, s, p)
	if err != nil {
		return Result{State: FreeDelivery}, fmt.Errorf("generating %s: %w", p, err)
	}
	o.saveBestEffort(ctx, s)
	return Result{State: Delivering, Free: true, Artifacts: artifacts}, nil
}

func (o *Orchestrator) collectAndDeliver(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) (Result, error) {
	ref := payment.NewReference(p)
	req := payment.Request{
		Reference: ref,
		Amount:    o.prices.Price(p),
		Currency:  o.prices.Currency,
		Customer: payment.Customer{
			Name:  s.PersonalInfo.FullName,
			Email: s.PersonalInfo.Email,
			Phone: s.PersonalInfo.Phone,
		},
	}

	// AwaitingPayment
	outcome, err := o.provider.Collect(ctx, req)
	if err != nil {
		return Result{State: AwaitingPayment, Reference: ref}, fmt.Errorf("collecting payment: %w", err)
	}

	switch outcome {
	case payment.Cancelled:
		// Normal path: no artifact, no entitlement change.
		return Result{State: Cancelled, Outcome: outcome, Reference: ref}, nil

	case payment.Pending:
		// The provider vouched enough to deliver optimistically, before
		// confirmation, after a short delay.
		select {
		case <-time.After(o.PendingDelay):
		case <-ctx.Done():
			return Result{State: Pending, Outcome: outcome, Reference: ref}, ctx.Err()
		}
		return o.deliverPaid(ctx, s, p, req, outcome)

	default: // payment.Success
		return o.deliverPaid(ctx, s, p, req, outcome)
	}
}

func (o *Orchestrator) deliverPaid(ctx context.Context, s *snapshot.FormSnapshot, p product.Product, req payment.Request, outcome payment.Outcome) (Result, error) {
	artifacts, err := o.gen.Generate(ctx, s, p)
	if err != nil {
		// The user already paid; this must be loud.
		return Result{State: Delivering, Outcome: outcome, Reference: req.Reference},
			fmt.Errorf("payment succeeded but generating %s failed: %w", p, err)
	}

	if o.authenticated() && o.recorder != nil {
		// Hashes recomputed now, not reused from the free check: edits made
		// while the widget was open must not credit stale content. Both
		// hashes are always sent so a bundle purchase satisfies later
		// single-product checks.
		cmd := purchase.Command{
			Product:   p,
			CvHash:    fingerprint.Hash(snapshot.CanonicalForCV(s)),
			CoverHash: fingerprint.Hash(snapshot.CanonicalForCover(s)),
			Payment: payment.Meta{
				Provider:  "lenco",
				Reference: req.Reference,
				Amount:    req.Amount,
				Currency:  req.Currency,
				Status:    paymentStatus(outcome),
			},
		}
		if _, err := o.recorder.RecordPurchase(ctx, cmd); err != nil {
			// Payment went through: keep delivering, log for reconciliation.
			o.logger.Error(ctx, "purchase record failed after payment", "reference", req.Reference, "error", err)
		}
	}

	o.saveBestEffort(ctx, s)

	return Result{
		State:     Delivering,
		Outcome:   outcome,
		Paid:      true,
		Reference: req.Reference,
		Artifacts: artifacts,
	}, nil
}

// paymentStatus maps a widget outcome to the status string stored with the
// sale ("paid" for confirmed charges, "pending" for optimistic delivery).
func paymentStatus(o payment.Outcome) string {
	if o == payment.Pending {
		return "pending"
	}
	return "paid"
}

func (o *Orchestrator) saveBestEffort(ctx context.Context, s *snapshot.FormSnapshot) {
	if o.saver == nil {
		return
	}
	if err := o.saver.SaveSnapshot(ctx, s); err != nil {
		o.logger.Warn(ctx, "snapshot save failed", "error", err)
	}
}
