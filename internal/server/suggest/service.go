// Package suggest proxies AI suggestion requests to the Gemini API. The
// upstream key stays server-side; clients only ever talk to this proxy. The
// whole feature sits behind a flag and a per-client rate limit.
package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvpro/internal/logging"
	"github.com/dmitrijs2005/cvpro/internal/server/config"
)

var (
	ErrDisabled    = errors.New("suggestions are disabled")
	ErrRateLimited = errors.New("too many suggestion requests")
	ErrUpstream    = errors.New("suggestion service unavailable")
)

// Request describes the experience entry the user wants suggestions for.
type Request struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Responsibilities []string `json:"responsibilities"`
	JobDescription   string   `json:"jobDescription"`
}

// Service calls the Gemini generateContent endpoint and extracts bullet
// suggestions from the reply.
type Service struct {
	apiKey  string
	model   string
	enabled bool
	baseURL string
	client  *http.Client
	limiter *rateLimiter
	logger  logging.Logger
}

func NewService(cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		apiKey:  cfg.GeminiAPIKey,
		model:   cfg.GeminiModel,
		enabled: cfg.SuggestionsEnabled && cfg.GeminiAPIKey != "",
		baseURL: "https://generativelanguage.googleapis.com/v1beta",
		client:  &http.Client{Timeout: 30 * time.Second},
		limiter: newRateLimiter(cfg.SuggestionRateLimit, cfg.SuggestionRateWindow, nil),
		logger:  logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func buildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("Suggest 3 concise, achievement-oriented CV bullet points for the role of ")
	b.WriteString(strings.TrimSpace(req.Role))
	if req.Company != "" {
		b.WriteString(" at ")
		b.WriteString(strings.TrimSpace(req.Company))
	}
	b.WriteString(".\n")
	if len(req.Responsibilities) > 0 {
		b.WriteString("Current responsibilities:\n")
		for _, r := range req.Responsibilities {
			b.WriteString("- ")
			b.WriteString(r)
			b.WriteString("\n")
		}
	}
	if req.JobDescription != "" {
		b.WriteString("Tailor them to this job description:\n")
		b.WriteString(req.JobDescription)
		b.WriteString("\n")
	}
	b.WriteString("Reply with one bullet per line, no numbering.")
	return b.String()
}

// Suggest returns suggestion lines for the given request. clientKey
// identifies the caller for rate limiting (user ID or remote IP).
func (s *Service) Suggest(ctx context.Context, clientKey string, req Request) ([]string, error) {
	if !s.enabled {
		return nil, ErrDisabled
	}
	if !s.limiter.Allow(clientKey) {
		return nil, ErrRateLimited
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(req)}}}},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Warn(ctx, "gemini request failed", "error", err)
		return nil, ErrUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn(ctx, "gemini returned non-200", "status", resp.StatusCode)
		return nil, ErrUpstream
	}

	var gr geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, ErrUpstream
	}

	return extractSuggestions(gr), nil
}

// extractSuggestions splits the model reply into clean lines, stripping
// common bullet prefixes.
func extractSuggestions(gr geminiResponse) []string {
	var out []string
	for _, c := range gr.Candidates {
		for _, p := range c.Content.Parts {
			for _, line := range strings.Split(p.Text, "\n") {
				line = strings.TrimSpace(line)
				line = strings.TrimLeft(line, "-*• ")
				if line != "" {
					out = append(out, line)
				}
			}
		}
	}
	return out
}
