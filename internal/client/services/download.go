package services

import (
	"context"

	"github.com/dmitrijs2005/cvpro/internal/client/api"
	"github.com/dmitrijs2005/cvpro/internal/client/session"
	"github.com/dmitrijs2005/cvpro/internal/download"
	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

// DownloadService runs download attempts for the CLI. It assembles a fresh
// orchestrator per attempt because the session can flip between anonymous
// and authenticated while the program runs.
type DownloadService struct {
	api      *api.Client
	session  *session.Session
	provider payment.Provider
	prices   product.PriceTable
	cache    *entitlement.Cache
	logger   logging.Logger
}

func NewDownloadService(
	apiClient *api.Client,
	sess *session.Session,
	provider payment.Provider,
	prices product.PriceTable,
	logger logging.Logger,
) *DownloadService {
	return &DownloadService{
		api:      apiClient,
		session:  sess,
		provider: provider,
		prices:   prices,
		cache:    entitlement.NewCache(apiClient.GetEntitlement, entitlement.DefaultTTL, nil),
		logger:   logger,
	}
}

// InvalidateEntitlements drops the cached entitlement record. Call on login
// and logout: the cached record belongs to the previous identity.
func (d *DownloadService) InvalidateEntitlements() {
	d.cache.Invalidate()
}

// RecordPurchase forwards to the backend and refreshes the cache from the
// returned record, so the very next free check sees the purchase without
// another fetch.
func (d *DownloadService) RecordPurchase(ctx context.Context, cmd purchase.Command) (entitlement.Record, error) {
	rec, err := d.api.RecordPurchase(ctx, cmd)
	if err != nil {
		return entitlement.Record{}, err
	}
	d.cache.Put(rec)
	return rec, nil
}

// Download runs one complete attempt for p. Anonymous sessions get an
// orchestrator without entitlement, recorder or saver wiring: they always
// pay full price and leave no server-side trace.
func (d *DownloadService) Download(ctx context.Context, s *snapshot.FormSnapshot, p product.Product) (download.Result, error) {
	var (
		gen          download.Generator
		entitlements download.EntitlementSource
		recorder     download.PurchaseRecorder
		saver        download.SnapshotSaver
	)

	if d.session.LoggedIn() {
		gen = NewGenerator(d.api)
		entitlements = d.cache
		recorder = d
		saver = d.api
	} else {
		gen = NewGenerator(nil)
	}

	o := download.NewOrchestrator(gen, d.provider, entitlements, recorder, saver, d.prices, d.logger)
	return o.Download(ctx, s, p)
}

// Prices exposes the price table for CLI display.
func (d *DownloadService) Prices() product.PriceTable { return d.prices }
