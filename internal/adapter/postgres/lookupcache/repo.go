// Package lookupcache stores successful dictionary payloads in PostgreSQL,
// keyed by word and region.
package lookupcache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

const table = "lookup_cache"

// Repo provides cache persistence backed by PostgreSQL.
type Repo struct {
	q   postgres.Querier
	now func() time.Time
}

// New creates a new cache repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q, now: time.Now}
}

// Get returns the cached lexical entries for word in region when they were
// fetched within maxAge. A missing or stale row is domain.ErrNotFound.
func (r *Repo) Get(ctx context.Context, word string, region domain.Region, maxAge time.Duration) ([]provider.LexicalEntry, error) {
	query, args, err := postgres.Builder().
		Select("payload").
		From(table).
		Where(sq.Eq{"word": word}).
		Where(sq.Eq{"region": region.String()}).
		Where(sq.Gt{"fetched_at": r.now().Add(-maxAge)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cache select: %w", err)
	}

	var payload []byte
	if err := r.q.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		return nil, postgres.MapError(err, table, key(word, region))
	}

	var sections []provider.LexicalEntry
	if err := json.Unmarshal(payload, &sections); err != nil {
		return nil, fmt.Errorf("%s %s unmarshal payload: %w", table, key(word, region), err)
	}
	return sections, nil
}

// Put stores the payload for word in region, replacing any previous one.
func (r *Repo) Put(ctx context.Context, word string, region domain.Region, payload []provider.LexicalEntry) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s %s marshal payload: %w", table, key(word, region), err)
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("word", "region", "payload", "fetched_at").
		Values(word, region.String(), raw, r.now().UTC()).
		Suffix("ON CONFLICT (word, region) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build cache upsert: %w", err)
	}

	if _, err := r.q.Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, key(word, region))
	}
	return nil
}

// DeleteExpired removes rows fetched before threshold and returns their count.
func (r *Repo) DeleteExpired(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Lt{"fetched_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build cache delete: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func key(word string, region domain.Region) string {
	return region.String() + "/" + word
}
