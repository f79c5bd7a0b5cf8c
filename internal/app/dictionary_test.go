package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heartmarshall/wordlookup/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlookup/internal/adapter/provider/oxford"
	"github.com/heartmarshall/wordlookup/internal/config"
)

func TestNewDictionary(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{Dictionary: config.DictionaryConfig{Provider: config.ProviderOxford}}
	assert.IsType(t, &oxford.Provider{}, NewDictionary(cfg, logger))

	cfg.Dictionary.Provider = config.ProviderFreeDict
	assert.IsType(t, &freedict.Provider{}, NewDictionary(cfg, logger))
}

func TestLookupTimeout(t *testing.T) {
	cfg := &config.Config{
		Dictionary: config.DictionaryConfig{Provider: config.ProviderOxford},
		Oxford:     config.OxfordConfig{Timeout: 10 * time.Second, RetryDelay: 500 * time.Millisecond},
		FreeDict:   config.FreeDictConfig{Timeout: 3 * time.Second, RetryDelay: time.Second},
	}
	assert.Equal(t, 20500*time.Millisecond, LookupTimeout(cfg))

	cfg.Dictionary.Provider = config.ProviderFreeDict
	assert.Equal(t, 7*time.Second, LookupTimeout(cfg))
}
