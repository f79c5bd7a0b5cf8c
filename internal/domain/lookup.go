package domain

import (
	"time"

	"github.com/google/uuid"
)

// LookupRecord is one entry of the lookup history.
type LookupRecord struct {
	ID           uuid.UUID
	Word         string
	Region       Region
	Outcome      LookupOutcome
	DerivativeOf *string
	CreatedAt    time.Time
}

// LookupResult is the classified result of a lookup.
//
// Found results carry Entries. Not-found results may carry DerivativeOf, the
// headword the looked-up word is an inflected form of.
type LookupResult struct {
	Word         string
	Region       Region
	Found        bool
	Entries      []Entry
	DerivativeOf *string
}

// Outcome maps the result to its history classification.
func (r LookupResult) Outcome() LookupOutcome {
	switch {
	case r.Found:
		return LookupOutcomeFound
	case r.DerivativeOf != nil:
		return LookupOutcomeDerivative
	default:
		return LookupOutcomeNotFound
	}
}
