// Package api is the HTTP client for the CVPro backend. It owns bearer
// token handling: every authenticated call carries the current access token
// and is retried once after a refresh when the server answers 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/client/session"
	"github.com/dmitrijs2005/cvpro/internal/common"
	"github.com/dmitrijs2005/cvpro/internal/entitlement"
	"github.com/dmitrijs2005/cvpro/internal/payment"
	"github.com/dmitrijs2005/cvpro/internal/product"
	"github.com/dmitrijs2005/cvpro/internal/purchase"
	"github.com/dmitrijs2005/cvpro/internal/snapshot"
)

type Client struct {
	baseURL string
	http    *http.Client
	session *session.Session
}

func NewClient(baseURL string, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
		session: sess,
	}
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type apiError struct {
	Error string `json:"error"`
}

// decodeError turns a non-2xx response into a sentinel error where the
// status is unambiguous, keeping the server's message where it helps.
func decodeError(resp *http.Response) error {
	var ae apiError
	_ = json.NewDecoder(resp.Body).Decode(&ae)
	msg := ae.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return common.ErrorUnauthorized
	case http.StatusForbidden:
		return common.ErrorForbidden
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusConflict:
		return common.ErrorDuplicate
	case http.StatusRequestEntityTooLarge:
		return common.ErrorSnapshotTooBig
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", common.ErrorValidation, msg)
	default:
		return fmt.Errorf("server error: %s", msg)
	}
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// doJSON performs one request with an optional JSON body and decodes a JSON
// reply into out (out may be nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, authenticated bool, out any) error {
	resp, err := c.doRaw(ctx, method, path, body, authenticated)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// doRaw sends the request, transparently refreshing the access token and
// retrying once on 401 for authenticated calls.
func (c *Client) doRaw(ctx context.Context, method, path string, body []byte, authenticated bool) (*http.Response, error) {
	resp, err := c.send(ctx, method, path, body, authenticated)
	if err != nil {
		return nil, err
	}

	if authenticated && resp.StatusCode == http.StatusUnauthorized && c.session.RefreshToken() != "" {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		return c.send(ctx, method, path, body, authenticated)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, authenticated bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.url(path), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authenticated {
		token := c.session.AccessToken()
		if token == "" {
			return nil, common.ErrorUnauthorized
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return c.http.Do(req)
}

func (c *Client) refresh(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{"refreshToken": c.session.RefreshToken()})
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/refresh", body, false, &pair); err != nil {
		c.session.Clear()
		return common.ErrorUnauthorized
	}

	c.session.UpdateTokens(pair.AccessToken, pair.RefreshToken)
	return nil
}

// Ping checks server reachability.
func (c *Client) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, "/api/ping", nil, false, nil)
}

// Register creates an account and signs the session in.
func (c *Client) Register(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/register", body, false, &pair); err != nil {
		return err
	}

	c.session.Set(email, pair.AccessToken, pair.RefreshToken)
	return nil
}

// Login authenticates and stores the token pair in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return err
	}

	var pair tokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/api/user/login", body, false, &pair); err != nil {
		return err
	}

	c.session.Set(email, pair.AccessToken, pair.RefreshToken)
	return nil
}

// entitlementView tolerates both the current and the legacy response shape:
// all fields may be null.
type entitlementView struct {
	PaidCvHash    *string    `json:"paidCvHash"`
	PaidCoverHash *string    `json:"paidCoverHash"`
	PaidHash      *string    `json:"paidHash"`
	LastProduct   *string    `json:"lastProduct"`
	PaidAt        *time.Time `json:"paidAt"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetEntitlement fetches the stored entitlement record. Legacy responses
// carrying only paidHash are mapped onto the CV hash.
func (c *Client) GetEntitlement(ctx context.Context) (entitlement.Record, error) {
	var view entitlementView
	if err := c.doJSON(ctx, http.MethodGet, "/api/entitlement", nil, true, &view); err != nil {
		return entitlement.Record{}, err
	}

	rec := entitlement.Record{
		PaidCvHash:    deref(view.PaidCvHash),
		PaidCoverHash: deref(view.PaidCoverHash),
		PaidHash:      deref(view.PaidHash),
		LastProduct:   deref(view.LastProduct),
	}
	if view.PaidAt != nil {
		rec.PaidAt = *view.PaidAt
	}
	if rec.PaidCvHash == "" && rec.PaidHash != "" {
		rec.PaidCvHash = rec.PaidHash
	}
	return rec, nil
}

// RecordPurchase reports a successful payment and returns the updated record.
func (c *Client) RecordPurchase(ctx context.Context, cmd purchase.Command) (entitlement.Record, error) {
	body, err := json.Marshal(struct {
		Product   product.Product `json:"product"`
		CvHash    string          `json:"cvHash,omitempty"`
		CoverHash string          `json:"coverHash,omitempty"`
		Payment   payment.Meta    `json:"payment"`
	}{cmd.Product, cmd.CvHash, cmd.CoverHash, cmd.Payment})
	if err != nil {
		return entitlement.Record{}, err
	}

	var view entitlementView
	if err := c.doJSON(ctx, http.MethodPost, "/api/entitlement", body, true, &view); err != nil {
		return entitlement.Record{}, err
	}

	rec := entitlement.Record{
		PaidCvHash:    deref(view.PaidCvHash),
		PaidCoverHash: deref(view.PaidCoverHash),
		PaidHash:      deref(view.PaidHash),
		LastProduct:   deref(view.LastProduct),
	}
	if view.PaidAt != nil {
		rec.PaidAt = *view.PaidAt
	}
	return rec, nil
}

// SaveSnapshot uploads the form state.
func (c *Client) SaveSnapshot(ctx context.Context, s *snapshot.FormSnapshot) error {
	body, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, "/api/snapshot", body, true, nil)
}

// LoadSnapshot downloads the stored form state. common.ErrorNotFound means
// the account has no snapshot yet.
func (c *Client) LoadSnapshot(ctx context.Context) (*snapshot.FormSnapshot, error) {
	var s snapshot.FormSnapshot
	if err := c.doJSON(ctx, http.MethodGet, "/api/snapshot", nil, true, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Suggest requests AI bullet-point suggestions for an experience entry.
func (c *Client) Suggest(ctx context.Context, role, company string, responsibilities []string, jobDescription string) ([]string, error) {
	body, err := json.Marshal(map[string]any{
		"role":             role,
		"company":          company,
		"responsibilities": responsibilities,
		"jobDescription":   jobDescription,
	})
	if err != nil {
		return nil, err
	}

	var out struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/suggest", body, true, &out); err != nil {
		return nil, err
	}
	return out.Suggestions, nil
}

// CoverLetterDocx renders the cover letter server-side and returns the
// document bytes.
func (c *Client) CoverLetterDocx(ctx context.Context, s *snapshot.FormSnapshot) ([]byte, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRaw(ctx, http.MethodPost, "/api/cover-letter-docx", body, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	return io.ReadAll(resp.Body)
}
