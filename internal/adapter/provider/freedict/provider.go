package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

const maxBodyBytes = 8 << 20

var titleCase = cases.Title(language.English)

// Provider fetches dictionary data from the FreeDictionary API and reshapes it
// into Oxford-style lexical entries, so the rest of the pipeline is shared.
//
// The API has no regional variants: region only decides which recording is
// listed first.
type Provider struct {
	baseURL    string
	retryDelay time.Duration
	httpClient *http.Client
	log        *slog.Logger
}

// NewProvider creates a Provider from FreeDictConfig.
func NewProvider(cfg config.FreeDictConfig, logger *slog.Logger) *Provider {
	return &Provider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		retryDelay: cfg.RetryDelay,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", "freedict"),
	}
}

// FetchLexicalEntries fetches word and maps every meaning of every entry to
// one lexical entry. Errors follow the same contract as the Oxford adapter.
func (p *Provider) FetchLexicalEntries(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: %w", &provider.RequestSetupError{Err: err})
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: %w: %w", provider.ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, provider.ErrWordNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("freedict: %w", &provider.ServerError{Status: resp.StatusCode})
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w: %w", provider.ErrNoResponse, err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: %w: decode json: %w", provider.ErrMalformedResponse, err)
	}

	result := mapAPIResponse(entries, region)
	if len(result) == 0 {
		p.log.WarnContext(ctx, "freedict malformed response", slog.String("word", word))
		return nil, fmt.Errorf("freedict: %w: no meanings", provider.ErrMalformedResponse)
	}

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("lexical_entries", len(result)),
	)

	return result, nil
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
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

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

// mapAPIResponse turns each (entry, meaning) pair into a lexical entry holding
// a single headword entry. Pronunciations are deduplicated by transcription and
// ordered so that recordings of region come first.
func mapAPIResponse(entries []apiEntry, region domain.Region) []provider.LexicalEntry {
	var out []provider.LexicalEntry
	for _, e := range entries {
		prons := mapPhonetics(e, region)
		for _, m := range e.Meanings {
			if len(m.Definitions) == 0 {
				continue
			}
			senses := make([]provider.Sense, 0, len(m.Definitions))
			for _, d := range m.Definitions {
				s := provider.Sense{Definitions: []string{d.Definition}}
				if d.Example != "" {
					s.Examples = []provider.Example{{Text: d.Example}}
				}
				senses = append(senses, s)
			}
			out = append(out, provider.LexicalEntry{
				Text:            e.Word,
				LexicalCategory: titleCase.String(m.PartOfSpeech),
				Pronunciations:  prons,
				Entries:         []provider.Entry{{Senses: senses}},
			})
		}
	}
	return out
}

func mapPhonetics(e apiEntry, region domain.Region) []provider.Pronunciation {
	var out []provider.Pronunciation
	seen := make(map[string]int)

	add := func(text, audio string) {
		if text == "" && audio == "" {
			return
		}
		p := provider.Pronunciation{PhoneticSpelling: text, PhoneticNotation: "IPA", AudioFile: audio}
		if d := dialect(audio); d != "" {
			p.Dialects = []string{d}
		}
		if text != "" {
			if i, ok := seen[text]; ok {
				if out[i].AudioFile == "" && audio != "" {
					out[i] = p
				}
				return
			}
			seen[text] = len(out)
		}
		out = append(out, p)
	}

	for _, ph := range e.Phonetics {
		add(ph.Text, ph.Audio)
	}
	add(e.Phonetic, "")

	want := regionDialect(region)
	slices.SortStableFunc(out, func(a, b provider.Pronunciation) int {
		return rank(a, want) - rank(b, want)
	})
	return out
}

// rank orders recordings of the wanted dialect first, other recordings next,
// and transcriptions without audio last.
func rank(p provider.Pronunciation, want string) int {
	switch {
	case p.AudioFile == "":
		return 2
	case slices.Contains(p.Dialects, want):
		return 0
	default:
		return 1
	}
}

func regionDialect(r domain.Region) string {
	if r == domain.RegionGB {
		return "British English"
	}
	return "American English"
}

// dialect infers the dialect from the recording's file name (run-us.mp3).
func dialect(audioURL string) string {
	lower := strings.ToLower(audioURL)
	switch {
	case strings.Contains(lower, "-us.") || strings.Contains(lower, "-us-"):
		return "American English"
	case strings.Contains(lower, "-uk.") || strings.Contains(lower, "-uk-"):
		return "British English"
	}
	return ""
}
