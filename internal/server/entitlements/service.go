// Package entitlements exposes the per-user entitlement record to the HTTP
// API: the read side renders the stored record (including the legacy alias
// field), the write side runs a purchase command through the recorder.
package entitlements

import (
	"context"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
)

// View is the wire shape of an entitlement read. Pointer fields render as
// JSON null for accounts that never purchased, which is what older clients
// expect to see.
type View struct {
	PaidCvHash    *string    `json:"paidCvHash"`
	PaidCoverHash *string    `json:"paidCoverHash"`
	PaidHash      *string    `json:"paidHash"`
	LastProduct   *string    `json:"lastProduct"`
	PaidAt        *time.Time `json:"paidAt"`
}

type Service struct {
	repo     Repository
	recorder *purchase.Recorder
}

func NewService(repo Repository, recorder *purchase.Recorder) *Service {
	return &Service{repo: repo, recorder: recorder}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func makeView(rec entitlement.Record, found bool) View {
	var v View
	if !found || rec.Zero() {
		return v
	}
	v.PaidCvHash = optional(rec.PaidCvHash)
	v.PaidCoverHash = optional(rec.PaidCoverHash)
	v.PaidHash = optional(rec.PaidHash)
	v.LastProduct = optional(rec.LastProduct)
	if !rec.PaidAt.IsZero() {
		t := rec.PaidAt
		v.PaidAt = &t
	}
	return v
}

// Get returns the entitlement view for userID. Never-purchased accounts get
// a view of nulls, not an error.
func (s *Service) Get(ctx context.Context, userID string) (View, error) {
	rec, found, err := s.repo.Get(ctx, userID)
	if err != nil {
		return View{}, err
	}
	return makeView(rec, found), nil
}

// RecordPurchase decodes a purchase request body (new or legacy shape) and
// applies it for userID, returning the updated view.
func (s *Service) RecordPurchase(ctx context.Context, userID, email string, body []byte) (View, error) {
	cmd, err := purchase.ParseCommand(body)
	if err != nil {
		return View{}, err
	}

	rec, err := s.recorder.Record(ctx, userID, email, cmd)
	if err != nil {
		return View{}, err
	}

	return makeView(rec, true), nil
}
