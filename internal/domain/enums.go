package domain

import (
	"fmt"
	"strings"
)

// Region is the dialect variant sent to the dictionary service.
type Region string

const (
	RegionUS Region = "us"
	RegionGB Region = "gb"
)

// DefaultRegion is used until the user toggles the dialect.
const DefaultRegion = RegionUS

func (r Region) String() string { return string(r) }

func (r Region) IsValid() bool {
	switch r {
	case RegionUS, RegionGB:
		return true
	}
	return false
}

// Label returns the dialect name shown next to the looked-up word.
func (r Region) Label() string {
	if r == RegionGB {
		return "British"
	}
	return "American"
}

// ToggleLabel returns the short label of the dialect switch.
func (r Region) ToggleLabel() string {
	if r == RegionGB {
		return "UK"
	}
	return "US"
}

// Toggle returns the other region.
func (r Region) Toggle() Region {
	if r == RegionGB {
		return RegionUS
	}
	return RegionGB
}

// ParseRegion parses a region code. "uk" is accepted as an alias of "gb".
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us":
		return RegionUS, nil
	case "gb", "uk":
		return RegionGB, nil
	}
	return "", NewValidationError("region", fmt.Sprintf("unknown region %q (want us or gb)", s))
}

// LookupOutcome classifies a completed lookup.
type LookupOutcome string

const (
	LookupOutcomeFound      LookupOutcome = "FOUND"
	LookupOutcomeNotFound   LookupOutcome = "NOT_FOUND"
	LookupOutcomeDerivative LookupOutcome = "DERIVATIVE"
)

func (o LookupOutcome) String() string { return string(o) }

func (o LookupOutcome) IsValid() bool {
	switch o {
	case LookupOutcomeFound, LookupOutcomeNotFound, LookupOutcomeDerivative:
		return true
	}
	return false
}
