package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
	"github.com/heartmarshall/wordlookup/internal/translit"
)

// ErrHistoryDisabled is returned by History when no database is configured.
var ErrHistoryDisabled = errors.New("lookup history is disabled")

// DefaultLookupTimeout bounds one shared upstream lookup.
const DefaultLookupTimeout = 30 * time.Second

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type dictionaryProvider interface {
	FetchLexicalEntries(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error)
}

type cacheRepo interface {
	Get(ctx context.Context, word string, region domain.Region, maxAge time.Duration) ([]provider.LexicalEntry, error)
	Put(ctx context.Context, word string, region domain.Region, payload []provider.LexicalEntry) error
}

type historyRepo interface {
	Create(ctx context.Context, rec domain.LookupRecord) (domain.LookupRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error)
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service resolves words against the dictionary provider. The cache and
// history repositories are optional; nil disables them.
type Service struct {
	log      *slog.Logger
	provider dictionaryProvider
	cache    cacheRepo
	history  historyRepo
	cfg      config.CacheConfig
	group    singleflight.Group
	timeout  time.Duration
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLookupTimeout bounds the upstream work shared by collapsed requests.
// Non-positive values keep DefaultLookupTimeout.
func WithLookupTimeout(d time.Duration) ServiceOption {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// NewService creates a new lookup service.
func NewService(
	logger *slog.Logger,
	dict dictionaryProvider,
	cache cacheRepo,
	history historyRepo,
	cfg config.CacheConfig,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		log:      logger.With("service", "lookup"),
		provider: dict,
		cache:    cache,
		history:  history,
		cfg:      cfg,
		timeout:  DefaultLookupTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PrepareWord maps layout-mistyped input to Latin and trims it.
// Blank input yields "".
func PrepareWord(word string) string {
	return domain.NormalizeWord(translit.Normalize(word))
}

// Resolve looks word up in region and classifies the outcome.
//
// A word the service does not know is a not-found result, not an error.
// Transport failures are returned as errors from the provider package.
// Concurrent calls for the same word and region share one upstream request.
// The shared request outlives any single caller's cancellation and is bounded
// by the lookup timeout instead; a canceled caller stops waiting and gets
// ctx.Err().
func (s *Service) Resolve(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
	prepared := PrepareWord(word)
	if prepared == "" {
		return domain.LookupResult{}, domain.NewValidationError("word", "required")
	}
	if !region.IsValid() {
		return domain.LookupResult{}, domain.NewValidationError("region", "must be us or gb")
	}

	key := region.String() + ":" + prepared
	ch := s.group.DoChan(key, func() (any, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.resolve(sharedCtx, prepared, region)
	})

	select {
	case <-ctx.Done():
		return domain.LookupResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.LookupResult{}, res.Err
		}
		if res.Shared {
			s.log.DebugContext(ctx, "lookup shared", slog.String("word", prepared))
		}
		return res.Val.(domain.LookupResult), nil
	}
}

func (s *Service) resolve(ctx context.Context, word string, region domain.Region) (domain.LookupResult, error) {
	sections, err := s.fetch(ctx, word, region)
	var result domain.LookupResult
	switch {
	case errors.Is(err, provider.ErrWordNotFound):
		result = domain.LookupResult{Word: word, Region: region}
	case err != nil:
		s.log.WarnContext(ctx, "lookup failed",
			slog.String("word", word),
			slog.String("region", region.String()),
			slog.String("error", err.Error()),
		)
		return domain.LookupResult{}, err
	default:
		result = Classify(word, region, sections)
	}

	s.record(ctx, result)

	s.log.InfoContext(ctx, "lookup resolved",
		slog.String("word", word),
		slog.String("region", region.String()),
		slog.String("outcome", result.Outcome().String()),
		slog.Int("entries", len(result.Entries)),
	)
	return result, nil
}

// fetch reads a fresh cached payload or calls the provider and caches its answer.
// Cache failures only cost a provider call.
func (s *Service) fetch(ctx context.Context, word string, region domain.Region) ([]provider.LexicalEntry, error) {
	if s.cacheEnabled() {
		sections, err := s.cache.Get(ctx, word, region, s.cfg.TTL)
		switch {
		case err == nil:
			s.log.DebugContext(ctx, "cache hit", slog.String("word", word), slog.String("region", region.String()))
			return sections, nil
		case !errors.Is(err, domain.ErrNotFound):
			s.log.WarnContext(ctx, "cache read failed", slog.String("word", word), slog.String("error", err.Error()))
		}
	}

	sections, err := s.provider.FetchLexicalEntries(ctx, word, region)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		if err := s.cache.Put(ctx, word, region, sections); err != nil {
			s.log.WarnContext(ctx, "cache write failed", slog.String("word", word), slog.String("error", err.Error()))
		}
	}
	return sections, nil
}

func (s *Service) cacheEnabled() bool {
	return s.cache != nil && s.cfg.Enabled
}

// record stores the outcome in the lookup history. Failures are logged only.
func (s *Service) record(ctx context.Context, result domain.LookupResult) {
	if s.history == nil {
		return
	}
	rec := domain.LookupRecord{
		ID:           uuid.New(),
		Word:         result.Word,
		Region:       result.Region,
		Outcome:      result.Outcome(),
		DerivativeOf: result.DerivativeOf,
		CreatedAt:    s.now(),
	}
	if _, err := s.history.Create(ctx, rec); err != nil {
		s.log.WarnContext(ctx, "history write failed", slog.String("word", result.Word), slog.String("error", err.Error()))
	}
}

// History returns the most recent lookups, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	if s.history == nil {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		return nil, domain.NewValidationError("limit", "must be positive")
	}
	records, err := s.history.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return records, nil
}
