package provider

import (
	"context"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Dictionary is a dictionary backend. Implementations return ErrWordNotFound
// for unknown words and the transport errors of this package otherwise.
type Dictionary interface {
	FetchLexicalEntries(ctx context.Context, word string, region domain.Region) ([]LexicalEntry, error)
}

// LexicalEntry is one section of a dictionary response: a part of speech with
// the headword entries filed under it. Field names follow the Oxford
// Dictionaries wire format, which is also the format stored in the lookup cache.
type LexicalEntry struct {
	Text                string               `json:"text,omitempty"`
	LexicalCategory     string               `json:"lexicalCategory"`
	GrammaticalFeatures []GrammaticalFeature `json:"grammaticalFeatures,omitempty"`
	Pronunciations      []Pronunciation      `json:"pronunciations,omitempty"`
	Entries             []Entry              `json:"entries"`
	DerivativeOf        []DerivativeOf       `json:"derivativeOf,omitempty"`
}

// GrammaticalFeature is a grammatical property such as "Transitive".
type GrammaticalFeature struct {
	Text string `json:"text"`
	Type string `json:"type,omitempty"`
}

// Pronunciation is a phonetic spelling with an optional audio recording.
type Pronunciation struct {
	AudioFile        string   `json:"audioFile,omitempty"`
	PhoneticSpelling string   `json:"phoneticSpelling,omitempty"`
	PhoneticNotation string   `json:"phoneticNotation,omitempty"`
	Dialects         []string `json:"dialects,omitempty"`
}

// DerivativeOf names the headword an inflected form belongs to.
type DerivativeOf struct {
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
}

// Entry is one headword variant within a lexical section.
type Entry struct {
	Senses       []Sense       `json:"senses"`
	VariantForms []VariantForm `json:"variantForms,omitempty"`
}

// VariantForm is an alternative spelling of the headword.
type VariantForm struct {
	Text    string   `json:"text"`
	Regions []string `json:"regions,omitempty"`
}

// Sense is one meaning. Subsenses nest arbitrarily deep on the wire; consumers
// only honor the first level.
type Sense struct {
	ID                    string    `json:"id,omitempty"`
	Definitions           []string  `json:"definitions,omitempty"`
	CrossReferenceMarkers []string  `json:"crossReferenceMarkers,omitempty"`
	Registers             []string  `json:"registers,omitempty"`
	Regions               []string  `json:"regions,omitempty"`
	Examples              []Example `json:"examples,omitempty"`
	Subsenses             []Sense   `json:"subsenses,omitempty"`
}

// Example is a usage example.
type Example struct {
	Text string `json:"text"`
}
