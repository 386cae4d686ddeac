package purchase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEntitlementStore struct {
	recs   map[string]entitlement.Record
	putErr error
}

func newFakeEntitlementStore() *fakeEntitlementStore {
	return &fakeEntitlementStore{recs: map[string]entitlement.Record{}}
}

func (s *fakeEntitlementStore) Get(ctx context.Context, userID string) (entitlement.Record, bool, error) {
	rec, ok := s.recs[userID]
	return rec, ok, nil
}

func (s *fakeEntitlementStore) Put(ctx context.Context, userID string, rec entitlement.Record) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.recs[userID] = rec
	return nil
}

type fakeSalesLog struct {
	sales []Sale
	err   error
}

func (l *fakeSalesLog) Append(ctx context.Context, sale Sale) error {
	if l.err != nil {
		return l.err
	}
	l.sales = append(l.sales, sale)
	return nil
}

var (
	hashA = strings.Repeat("aa", 32)
	hashB = strings.Repeat("bb", 32)
)

func fixedNow() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

func newTestRecorder(store EntitlementStore, sales SalesLog) *Recorder {
	return NewRecorder(store, sales, product.DefaultPrices(), fixedNow)
}

func TestRecordCVLeavesCoverUntouched(t *testing.T) {
	store := newFakeEntitlementStore()
	store.recs["u1"] = entitlement.Record{PaidCoverHash: hashB}
	sales := &fakeSalesLog{}
	r := newTestRecorder(store, sales)

	rec, err := r.Record(context.Background(), "u1", "u1@example.com", Command{
		Product: product.CV, CvHash: hashA,
		Payment: payment.Meta{Provider: "lenco", Reference: "CV-1", Amount: 50, Currency: "ZMW", Status: "paid"},
	})
	require.NoError(t, err)

	assert.Equal(t, hashA, rec.PaidCvHash)
	assert.Equal(t, hashB, rec.PaidCoverHash)
	assert.Equal(t, hashA, rec.PaidHash)
	assert.Equal(t, "cv", rec.LastProduct)
	assert.Equal(t, fixedNow(), rec.PaidAt)
}

func TestRecordCoverLeavesCVUntouched(t *testing.T) {
	store := newFakeEntitlementStore()
	store.recs["u1"] = entitlement.Record{PaidCvHash: hashA, PaidHash: hashA}
	r := newTestRecorder(store, &fakeSalesLog{})

	rec, err := r.Record(context.Background(), "u1", "", Command{Product: product.Cover, CoverHash: hashB})
	require.NoError(t, err)

	assert.Equal(t, hashA, rec.PaidCvHash)
	assert.Equal(t, hashB, rec.PaidCoverHash)
	assert.Equal(t, "cover", rec.LastProduct)
}

func TestRecordBundleSetsBoth(t *testing.T) {
	store := newFakeEntitlementStore()
	r := newTestRecorder(store, &fakeSalesLog{})

	rec, err := r.Record(context.Background(), "u1", "", Command{Product: product.Bundle, CvHash: hashA, CoverHash: hashB})
	require.NoError(t, err)

	assert.Equal(t, hashA, rec.PaidCvHash)
	assert.Equal(t, hashB, rec.PaidCoverHash)
}

func TestRecordIdempotentOnEntitlementStateButAppendsSales(t *testing.T) {
	store := newFakeEntitlementStore()
	sales := &fakeSalesLog{}
	r := newTestRecorder(store, sales)

	cmd := Command{Product: product.CV, CvHash: hashA, Payment: payment.Meta{Reference: "CV-1", Amount: 50}}

	first, err := r.Record(context.Background(), "u1", "", cmd)
	require.NoError(t, err)
	second, err := r.Record(context.Background(), "u1", "", cmd)
	require.NoError(t, err)

	assert.Equal(t, first.PaidCvHash, second.PaidCvHash)
	assert.Equal(t, first.PaidCoverHash, second.PaidCoverHash)
	assert.Equal(t, first.PaidAt, second.PaidAt)

	// Two sale rows for one logical purchase is the documented behaviour:
	// the revenue log has no idempotency key. Expected, not a bug.
	assert.Len(t, sales.sales, 2)
	assert.NotEqual(t, sales.sales[0].ID, sales.sales[1].ID)
}

func TestRecordSaleDefaults(t *testing.T) {
	store := newFakeEntitlementStore()
	sales := &fakeSalesLog{}
	r := newTestRecorder(store, sales)

	_, err := r.Record(context.Background(), "u1", "u1@example.com", Command{Product: product.Bundle, CvHash: hashA, CoverHash: hashB})
	require.NoError(t, err)

	require.Len(t, sales.sales, 1)
	sale := sales.sales[0]
	assert.Equal(t, int64(70), sale.Amount)
	assert.Equal(t, "ZMW", sale.Currency)
	assert.Equal(t, "paid", sale.Status)
	assert.Equal(t, "bundle", sale.Product)
	assert.Equal(t, "u1@example.com", sale.Email)
	assert.Contains(t, sale.ID, "u1")
}

func TestRecordStoreFailureStillReturnsRecord(t *testing.T) {
	store := newFakeEntitlementStore()
	store.putErr = errors.New("store down")
	sales := &fakeSalesLog{}
	r := newTestRecorder(store, sales)

	rec, err := r.Record(context.Background(), "u1", "", Command{Product: product.CV, CvHash: hashA})
	require.Error(t, err)

	// The user already paid: the caller gets the record it tried to store
	// so delivery can proceed and the write can be retried.
	assert.Equal(t, hashA, rec.PaidCvHash)
	assert.Len(t, sales.sales, 1)
}

func TestRecordSalesFailureSurfacedButEntitlementKept(t *testing.T) {
	store := newFakeEntitlementStore()
	sales := &fakeSalesLog{err: errors.New("log down")}
	r := newTestRecorder(store, sales)

	rec, err := r.Record(context.Background(), "u1", "", Command{Product: product.CV, CvHash: hashA})
	require.Error(t, err)
	assert.Equal(t, hashA, rec.PaidCvHash)
	assert.Equal(t, hashA, store.recs["u1"].PaidCvHash)
}
