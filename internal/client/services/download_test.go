package services

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/cvpro/internal/client/api"
	"github.com/dmitrijs2005/cvpro/internal/client/session"
	"github.com/dmitrijs2005/cvpro/internal/docgen"
	"github.com/dmitrijs2005/cvpro/internal/download"
	"github.com/dmitrijs2005/cvpro/internal/fingerprint"
	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	outcome  payment.Outcome
	requests []payment.Request
}

func (p *stubProvider) Collect(_ context.Context, req payment.Request) (payment.Outcome, error) {
	p.requests = append(p.requests, req)
	return p.outcome, nil
}

// fakeBackend is the slice of server API the download pipeline touches.
type fakeBackend struct {
	calls struct {
		entitlementGets int32
		purchases       int32
		snapshotSaves   int32
		docxCalls       int32
	}
	paidCvHash    string
	paidCoverHash string
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/entitlement", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls.entitlementGets, 1)
		f.writeEntitlement(w)
	})
	mux.HandleFunc("POST /api/entitlement", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls.purchases, 1)
		var body struct {
			Product   string `json:"product"`
			CvHash    string `json:"cvHash"`
			CoverHash string `json:"coverHash"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.paidCvHash = body.CvHash
		f.paidCoverHash = body.CoverHash
		f.writeEntitlement(w)
	})
	mux.HandleFunc("POST /api/snapshot", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls.snapshotSaves, 1)
		_ = json.NewEncoder(w).Encode(map[string]bool{"saved": true})
	})
	mux.HandleFunc("POST /api/cover-letter-docx", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&f.calls.docxCalls, 1)
		var s snapshot.FormSnapshot
		_ = json.NewDecoder(r.Body).Decode(&s)
		data, _ := docgen.CoverLetterDocx(&s, nil)
		w.Header().Set("Content-Type", docgen.MIME)
		_, _ = w.Write(data)
	})
	return mux
}

func (f *fakeBackend) writeEntitlement(w http.ResponseWriter) {
	resp := map[string]any{
		"paidCvHash":    nullable(f.paidCvHash),
		"paidCoverHash": nullable(f.paidCoverHash),
		"paidHash":      nullable(f.paidCvHash),
		"lastProduct":   nil,
		"paidAt":        nil,
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func downloadSnapshot() *snapshot.FormSnapshot {
	s := &snapshot.FormSnapshot{}
	s.PersonalInfo.FullName = "Chanda Mwamba"
	s.PersonalInfo.Profession = "Accountant"
	s.PersonalInfo.Email = "chanda@example.com"
	s.PersonalInfo.Phone = "+260 97 1234567"
	s.PersonalInfo.Address = "Plot 12, Kabulonga"
	s.PersonalInfo.City = "Lusaka"
	s.PersonalInfo.Country = "Zambia"
	s.CoverLetterRole = "Accountant"
	s.CoverLetterCompany = "Zanaco"
	s.CoverCompanyAddress = "Cairo Road, Lusaka"
	s.CoverLetterText = "I am writing to apply for the advertised role."
	return s
}

func newFixture(t *testing.T, outcome payment.Outcome) (*DownloadService, *fakeBackend, *stubProvider, *session.Session) {
	t.Helper()
	backend := &fakeBackend{}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	sess := &session.Session{}
	provider := &stubProvider{outcome: outcome}
	d := NewDownloadService(api.NewClient(srv.URL, sess), sess, provider, product.DefaultPrices(), logging.Nop())
	return d, backend, provider, sess
}

func TestAnonymousDownloadPaysAndRendersLocally(t *testing.T) {
	d, backend, provider, _ := newFixture(t, payment.Success)
	s := downloadSnapshot()

	res, err := d.Download(context.Background(), s, product.Bundle)
	require.NoError(t, err)

	assert.Equal(t, download.Delivering, res.State)
	assert.True(t, res.Paid)
	require.Len(t, res.Artifacts, 2)
	assert.Equal(t, "cv.pdf", res.Artifacts[0].FileName)
	assert.Equal(t, "cover-letter.docx", res.Artifacts[1].FileName)
	assert.True(t, bytes.HasPrefix(res.Artifacts[1].Data, []byte("PK")))

	require.Len(t, provider.requests, 1)
	assert.Equal(t, int64(70), provider.requests[0].Amount)

	// Nothing touches the server for an anonymous attempt.
	assert.Zero(t, backend.calls.entitlementGets)
	assert.Zero(t, backend.calls.purchases)
	assert.Zero(t, backend.calls.snapshotSaves)
	assert.Zero(t, backend.calls.docxCalls)
}

func TestAuthenticatedDownloadRecordsAndSaves(t *testing.T) {
	d, backend, provider, sess := newFixture(t, payment.Success)
	sess.Set("chanda@example.com", "at", "rt")
	s := downloadSnapshot()

	res, err := d.Download(context.Background(), s, product.Cover)
	require.NoError(t, err)

	assert.Equal(t, download.Delivering, res.State)
	require.Len(t, res.Artifacts, 1)
	assert.Equal(t, docgen.MIME, res.Artifacts[0].MIME)

	require.Len(t, provider.requests, 1)
	assert.Equal(t, int64(30), provider.requests[0].Amount)

	assert.Equal(t, int32(1), backend.calls.entitlementGets)
	assert.Equal(t, int32(1), backend.calls.purchases)
	assert.Equal(t, int32(1), backend.calls.snapshotSaves)
	assert.Equal(t, int32(1), backend.calls.docxCalls)
	assert.Equal(t, fingerprint.Hash(snapshot.CanonicalForCover(s)), backend.paidCoverHash)
}

func TestSecondDownloadIsFreeFromCachedPurchase(t *testing.T) {
	d, backend, provider, sess := newFixture(t, payment.Success)
	sess.Set("chanda@example.com", "at", "rt")
	s := downloadSnapshot()

	_, err := d.Download(context.Background(), s, product.Bundle)
	require.NoError(t, err)

	res, err := d.Download(context.Background(), s, product.Bundle)
	require.NoError(t, err)

	assert.True(t, res.Free)
	assert.False(t, res.Paid)
	// One payment total, and the recorded purchase refreshed the cache so
	// the second free check never refetched.
	assert.Len(t, provider.requests, 1)
	assert.Equal(t, int32(1), backend.calls.entitlementGets)
	assert.Equal(t, int32(1), backend.calls.purchases)
}

func TestCancelledLeavesNoTrace(t *testing.T) {
	d, backend, _, sess := newFixture(t, payment.Cancelled)
	sess.Set("chanda@example.com", "at", "rt")

	res, err := d.Download(context.Background(), downloadSnapshot(), product.CV)
	require.NoError(t, err)

	assert.Equal(t, download.Cancelled, res.State)
	assert.Empty(t, res.Artifacts)
	assert.Zero(t, backend.calls.purchases)
	assert.Zero(t, backend.calls.snapshotSaves)
}

func TestInvalidateEntitlementsForcesRefetch(t *testing.T) {
	d, backend, _, sess := newFixture(t, payment.Success)
	sess.Set("chanda@example.com", "at", "rt")
	s := downloadSnapshot()

	_, err := d.Download(context.Background(), s, product.CV)
	require.NoError(t, err)
	require.Equal(t, int32(1), backend.calls.entitlementGets)

	d.InvalidateEntitlements()

	_, err = d.Download(context.Background(), s, product.CV)
	require.NoError(t, err)
	assert.Equal(t, int32(2), backend.calls.entitlementGets)
}
