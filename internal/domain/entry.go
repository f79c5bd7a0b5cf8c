package domain

// Entry is one dictionary entry prepared for presentation. Every raw entry of
// every lexical section yields one Entry; section-level fields are repeated.
type Entry struct {
	PartOfSpeech   string
	Senses         []Sense
	AudioLink      *string
	Transitivity   *string
	OtherSpellings []VariantForm
}

// Sense is one meaning of a word. SubSenses is only populated one level deep:
// a sense inside SubSenses always has an empty SubSenses.
type Sense struct {
	Definition Definition
	Registers  []string
	Regions    []string
	Examples   []string
	SubSenses  []Sense
}

// Definition is either a definition text or, when the dictionary gives no
// definition, the list of cross-reference markers that stands in for it.
// Callers must not render CrossReferenceMarkers as free text.
type Definition struct {
	Text                  string
	CrossReferenceMarkers []string
}

// TextDefinition returns a Definition holding plain text.
func TextDefinition(text string) Definition {
	return Definition{Text: text}
}

// CrossReferenceDefinition returns a Definition backed by cross-reference markers.
// A nil markers slice produces an empty Definition.
func CrossReferenceDefinition(markers []string) Definition {
	return Definition{CrossReferenceMarkers: markers}
}

// IsCrossReference reports whether the definition is a marker list.
func (d Definition) IsCrossReference() bool {
	return d.Text == "" && d.CrossReferenceMarkers != nil
}

// VariantForm is an alternative spelling, optionally restricted to regions.
type VariantForm struct {
	Text    string
	Regions []string
}
