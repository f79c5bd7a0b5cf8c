package oxford

import "github.com/heartmarshall/wordlookup/internal/provider"

// apiResponse is the envelope of GET /entries/{lang}/{word}/regions={region}.
type apiResponse struct {
	Metadata map[string]any `json:"metadata,omitempty"`
	Results  []apiResult    `json:"results"`
}

// apiResult is one headword result. Only the first one is used.
type apiResult struct {
	ID             string                  `json:"id"`
	Language       string                  `json:"language"`
	Type           string                  `json:"type"`
	Word           string                  `json:"word"`
	LexicalEntries []provider.LexicalEntry `json:"lexicalEntries"`
}
