package oxford

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 8 << 20

// Provider fetches lexical entries from the Oxford Dictionaries API (v1).
type Provider struct {
	baseURL    string
	language   string
	appID      string
	appKey     string
	retryDelay time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from OxfordConfig.
func NewProvider(cfg config.OxfordConfig, logger *slog.Logger) *Provider {
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   language,
		appID:      cfg.AppID,
		appKey:     cfg.AppKey,
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "oxford"),
	}
}

// FetchLexicalEntries fetches the lexical entries of word in the given region.
//
// Errors:
//   - provider.ErrWordNotFound on HTTP 404
//   - *provider.ServerError on any other non-2xx status
//   - provider.ErrNoResponse when no response was received
//   - *provider.RequestSetupError when the request could not be built
//   - provider.ErrMalformedResponse when the body is not the expected shape
func (p *Provider) FetchLexicalEntries(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error) {
	reqURL := p.entriesURL(word, region)

	p.log.DebugContext(ctx, "oxford request",
		slog.String("word", word),
		slog.String("region", region.String()),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("oxford: %w", &provider.RequestSetupError{Err: err})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("app_id", p.appID)
	req.Header.Set("app_key", p.appKey)

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "oxford request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("oxford: %w: %w", provider.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, provider.ErrWordNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("oxford: %w", &provider.ServerError{Status: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("oxford: read body: %w: %w", provider.ErrNoResponse, err)
	}

	entries, err := decodeLexicalEntries(body)
	if err != nil {
		p.log.WarnContext(ctx, "oxford malformed response",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("oxford: %w", err)
	}

	p.log.DebugContext(ctx, "oxford response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("lexical_entries", len(entries)),
	)

	return entries, nil
}

func (p *Provider) entriesURL(word string, region domain.Region) string {
	return p.baseURL + "/entries/" + p.language + "/" + url.PathEscape(word) + "/regions=" + url.PathEscape(region.String())
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "oxford retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if p.retryDelay > 0 {
		timer := time.NewTimer(p.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return p.httpClient.Do(req)
}

// decodeLexicalEntries extracts results[0].lexicalEntries from a response body.
func decodeLexicalEntries(body []byte) ([]provider.LexicalEntry, error) {
	var r apiResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: decode json: %w", provider.ErrMalformedResponse, err)
	}
	if len(r.Results) == 0 {
		return nil, fmt.Errorf("%w: no results", provider.ErrMalformedResponse)
	}
	entries := r.Results[0].LexicalEntries
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no lexical entries", provider.ErrMalformedResponse)
	}
	return entries, nil
}
