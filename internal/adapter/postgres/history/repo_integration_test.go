//go:build integration

package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordlookup/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wordlookup/internal/domain"
)

func TestRepo_Integration_CreateAndList(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := New(pool)
	ctx := context.Background()

	deriv := "run"
	rec := domain.LookupRecord{
		ID:           uuid.New(),
		Word:         "ran",
		Region:       domain.RegionGB,
		Outcome:      domain.LookupOutcomeDerivative,
		DerivativeOf: &deriv,
		CreatedAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Microsecond),
	}

	created, err := repo.Create(ctx, rec)
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if created.ID != rec.ID || created.Outcome != rec.Outcome {
		t.Errorf("Create() = %+v", created)
	}

	list, err := repo.ListRecent(ctx, 1)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(list) != 1 || list[0].ID != rec.ID {
		t.Fatalf("ListRecent() = %+v, want the newest record first", list)
	}
	if list[0].DerivativeOf == nil || *list[0].DerivativeOf != "run" {
		t.Errorf("DerivativeOf = %v", list[0].DerivativeOf)
	}
}
