package lookup

import (
	"github.com/heartmarshall/wordlookup/internal/domain"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

// Normalize flattens raw lexical sections into presentation entries.
//
// Every raw entry of every section yields one domain.Entry, in input order.
// Senses keep their order and subsenses are honored one level deep: the
// SubSenses of a subsense is always empty, whatever the raw nesting.
func Normalize(sections []provider.LexicalEntry) []domain.Entry {
	var out []domain.Entry
	for _, sec := range sections {
		transitivity := firstFeature(sec.GrammaticalFeatures)
		audio := firstAudio(sec.Pronunciations)

		for _, e := range sec.Entries {
			out = append(out, domain.Entry{
				PartOfSpeech:   sec.LexicalCategory,
				Senses:         mapSenses(e.Senses, true),
				AudioLink:      audio,
				Transitivity:   transitivity,
				OtherSpellings: mapVariantForms(e.VariantForms),
			})
		}
	}
	return out
}

func mapSenses(raw []provider.Sense, withSubsenses bool) []domain.Sense {
	senses := make([]domain.Sense, 0, len(raw))
	for _, s := range raw {
		sense := domain.Sense{
			Definition: mapDefinition(s),
			Registers:  s.Registers,
			Regions:    s.Regions,
			Examples:   exampleTexts(s.Examples),
			SubSenses:  []domain.Sense{},
		}
		if withSubsenses {
			sense.SubSenses = mapSenses(s.Subsenses, false)
		}
		senses = append(senses, sense)
	}
	return senses
}

// mapDefinition prefers the first definition text and falls back to the
// cross-reference markers.
func mapDefinition(s provider.Sense) domain.Definition {
	if len(s.Definitions) > 0 {
		return domain.TextDefinition(s.Definitions[0])
	}
	return domain.CrossReferenceDefinition(s.CrossReferenceMarkers)
}

func firstFeature(features []provider.GrammaticalFeature) *string {
	if len(features) == 0 {
		return nil
	}
	text := features[0].Text
	return &text
}

// firstAudio returns the first audio file in list order.
func firstAudio(prons []provider.Pronunciation) *string {
	for _, p := range prons {
		if p.AudioFile != "" {
			link := p.AudioFile
			return &link
		}
	}
	return nil
}

func mapVariantForms(raw []provider.VariantForm) []domain.VariantForm {
	if raw == nil {
		return nil
	}
	out := make([]domain.VariantForm, len(raw))
	for i, v := range raw {
		out[i] = domain.VariantForm{Text: v.Text, Regions: v.Regions}
	}
	return out
}

func exampleTexts(raw []provider.Example) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, len(raw))
	for i, ex := range raw {
		out[i] = ex.Text
	}
	return out
}

// derivativeOf returns the headword the first section is derived from, if any.
func derivativeOf(sections []provider.LexicalEntry) *string {
	if len(sections) == 0 || len(sections[0].DerivativeOf) == 0 {
		return nil
	}
	text := sections[0].DerivativeOf[0].Text
	return &text
}

// Classify turns a successful payload into a lookup result. A derivativeOf
// marker on the first section makes the result a not-found pointing at the
// headword; otherwise the sections are normalized into entries.
func Classify(word string, region domain.Region, sections []provider.LexicalEntry) domain.LookupResult {
	res := domain.LookupResult{Word: word, Region: region}
	if d := derivativeOf(sections); d != nil {
		res.DerivativeOf = d
		return res
	}
	res.Found = true
	res.Entries = Normalize(sections)
	return res
}
