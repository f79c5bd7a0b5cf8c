//go:build integration

package lookupcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func TestRepo_Integration_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	word := "integration-" + time.Now().Format("150405.000000")

	if _, err := repo.Get(ctx, word, domain.RegionUS, time.Hour); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Get() before Put error = %v, want ErrNotFound", err)
	}

	if err := repo.Put(ctx, word, domain.RegionUS, samplePayload()); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	if err := repo.Put(ctx, word, domain.RegionUS, samplePayload()); err != nil {
		t.Fatalf("Put() upsert error: %v", err)
	}

	got, err := repo.Get(ctx, word, domain.RegionUS, time.Hour)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if len(got) != 1 || got[0].LexicalCategory != "Verb" {
		t.Errorf("Get() = %+v", got)
	}

	if _, err := repo.Get(ctx, word, domain.RegionGB, time.Hour); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() other region error = %v, want ErrNotFound", err)
	}

	repo.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := repo.Get(ctx, word, domain.RegionUS, time.Hour); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get() stale error = %v, want ErrNotFound", err)
	}
}
