package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("word", "required")

	if got := err.Error(); got != "validation: word: required" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Errors: []FieldError{
		{Field: "word", Message: "required"},
		{Field: "region", Message: "unknown"},
	}}

	if got := err.Error(); got != "validation: word: required; region: unknown" {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestValidationError_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("lookup: %w", NewValidationError("word", "required"))

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As should find *ValidationError")
	}
	if ve.Errors[0].Field != "word" {
		t.Errorf("Field = %q, want word", ve.Errors[0].Field)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("wrapped error should match ErrValidation")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrAlreadyExists, ErrValidation}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
