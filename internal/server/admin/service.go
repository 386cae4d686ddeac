// Package admin serves the operator-only endpoints: an access check based
// on static allow-lists and a small metrics report over the sale log.
package admin

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/purchase"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
	"github.com/dmitrijs2005/cvpro/internal/server/sales"
)

// recentLimit caps how many sale rows one metrics call scans. When the scan
// hits the cap the revenue figure is flagged as partial.
const recentLimit = 500

// cacheTTL keeps repeated dashboard refreshes from hammering the database.
const cacheTTL = 30 * time.Second

// Metrics is the admin dashboard payload. PaidUsers counts accounts with an
// entitlement record, i.e. at least one recorded purchase.
type Metrics struct {
	SalesCount       int64           `json:"salesCount"`
	PaidUsers        int64           `json:"paidUsers"`
	Revenue          int64           `json:"revenue"`
	Currency         string          `json:"currency"`
	RevenueIsPartial bool            `json:"revenueIsPartial"`
	RecentSales      []purchase.Sale `json:"recentSales"`
	GeneratedAt      time.Time       `json:"generatedAt"`
}

// PaidUserCounter is satisfied by the entitlements repository.
type PaidUserCounter interface {
	Count(ctx context.Context) (int64, error)
}

type Service struct {
	repo     sales.Repository
	paid     PaidUserCounter
	emails   map[string]struct{}
	subjects map[string]struct{}
	now      func() time.Time

	mu       sync.Mutex
	cached   *Metrics
	cachedAt time.Time
}

func NewService(repo sales.Repository, paid PaidUserCounter, cfg *config.Config, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	emails := make(map[string]struct{}, len(cfg.AdminEmails))
	for _, e := range cfg.AdminEmails {
		emails[strings.ToLower(e)] = struct{}{}
	}
	subjects := make(map[string]struct{}, len(cfg.AdminSubjects))
	for _, s := range cfg.AdminSubjects {
		subjects[s] = struct{}{}
	}
	return &Service{repo: repo, paid: paid, emails: emails, subjects: subjects, now: now}
}

// IsAdmin reports whether the authenticated identity is on either
// allow-list. Empty allow-lists admit nobody.
func (s *Service) IsAdmin(userID, email string) bool {
	if _, ok := s.subjects[userID]; ok {
		return true
	}
	_, ok := s.emails[strings.ToLower(email)]
	return ok
}

// Metrics returns the dashboard payload, cached for a short window.
func (s *Service) Metrics(ctx context.Context) (*Metrics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.now().Sub(s.cachedAt) < cacheTTL {
		return s.cached, nil
	}

	recent, err := s.repo.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	totals, err := s.repo.TotalsSince(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	paidUsers, err := s.paid.Count(ctx)
	if err != nil {
		return nil, err
	}

	display := recent
	if len(display) > 20 {
		display = display[:20]
	}

	m := &Metrics{
		SalesCount:       totals.Count,
		PaidUsers:        paidUsers,
		Revenue:          totals.Amount,
		Currency:         totals.Currency,
		RevenueIsPartial: len(recent) == recentLimit,
		RecentSales:      display,
		GeneratedAt:      s.now().UTC(),
	}

	s.cached = m
	s.cachedAt = s.now()
	return m, nil
}
