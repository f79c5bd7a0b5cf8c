// Package history records resolved lookups in PostgreSQL.
package history

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/wordlookup/internal/adapter/postgres"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

const table = "lookup_history"

var columns = []string{"id", "word", "region", "outcome", "derivative_of", "created_at"}

// row is the scan target for lookup_history.
type row struct {
	ID           uuid.UUID `db:"id"`
	Word         string    `db:"word"`
	Region       string    `db:"region"`
	Outcome      string    `db:"outcome"`
	DerivativeOf *string   `db:"derivative_of"`
	CreatedAt    time.Time `db:"created_at"`
}

// Repo provides lookup history persistence backed by PostgreSQL.
type Repo struct {
	q postgres.Querier
}

// New creates a new history repository.
func New(q postgres.Querier) *Repo {
	return &Repo{q: q}
}

// Create inserts a lookup record and returns the stored row.
func (r *Repo) Create(ctx context.Context, rec domain.LookupRecord) (domain.LookupRecord, error) {
	if !rec.Outcome.IsValid() {
		return domain.LookupRecord{}, domain.NewValidationError("outcome", fmt.Sprintf("unknown outcome %q", rec.Outcome))
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns(columns...).
		Values(rec.ID, rec.Word, rec.Region.String(), rec.Outcome.String(), rec.DerivativeOf, rec.CreatedAt.UTC()).
		Suffix("RETURNING id, word, region, outcome, derivative_of, created_at").
		ToSql()
	if err != nil {
		return domain.LookupRecord{}, fmt.Errorf("build history insert: %w", err)
	}

	var out row
	if err := pgxscan.Get(ctx, r.q, &out, query, args...); err != nil {
		return domain.LookupRecord{}, postgres.MapError(err, table, rec.ID.String())
	}
	return toDomain(out), nil
}

// ListRecent returns up to limit records, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		OrderBy("created_at DESC", "id").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build history select: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}

	records := make([]domain.LookupRecord, len(rows))
	for i, rw := range rows {
		records[i] = toDomain(rw)
	}
	return records, nil
}

// DeleteOlderThan removes records created before threshold and returns their count.
func (r *Repo) DeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(sq.Lt{"created_at": threshold}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build history delete: %w", err)
	}

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete old %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func toDomain(rw row) domain.LookupRecord {
	return domain.LookupRecord{
		ID:           rw.ID,
		Word:         rw.Word,
		Region:       domain.Region(rw.Region),
		Outcome:      domain.LookupOutcome(rw.Outcome),
		DerivativeOf: rw.DerivativeOf,
		CreatedAt:    rw.CreatedAt,
	}
}
