package app

import (
	"log/slog"
	"time"

	"github.com/heartmarshall/wordlookup/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlookup/internal/adapter/provider/oxford"
	"github.com/heartmarshall/wordlookup/internal/config"
	"github.com/heartmarshall/wordlookup/internal/provider"
)

// NewDictionary returns the dictionary backend selected by cfg.Dictionary.
// Validate guarantees the provider name is known.
func NewDictionary(cfg *config.Config, logger *slog.Logger) provider.Dictionary {
	if cfg.Dictionary.Provider == config.ProviderFreeDict {
		return freedict.NewProvider(cfg.FreeDict, logger)
	}
	return oxford.NewProvider(cfg.Oxford, logger)
}

// LookupTimeout is the longest one upstream lookup can take with the selected
// backend: two attempts plus the pause between them.
func LookupTimeout(cfg *config.Config) time.Duration {
	timeout, delay := cfg.Oxford.Timeout, cfg.Oxford.RetryDelay
	if cfg.Dictionary.Provider == config.ProviderFreeDict {
		timeout, delay = cfg.FreeDict.Timeout, cfg.FreeDict.RetryDelay
	}
	return 2*timeout + delay
}
