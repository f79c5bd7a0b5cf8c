package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/heartmarshall/wordlookup/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	switch c.Dictionary.Provider {
	case ProviderOxford:
		if err := c.Oxford.validate(); err != nil {
			return fmt.Errorf("oxford: %w", err)
		}
	case ProviderFreeDict:
		if err := c.FreeDict.validate(); err != nil {
			return fmt.Errorf("freedict: %w", err)
		}
	default:
		return fmt.Errorf("dictionary.provider must be %q or %q (got %q)", ProviderOxford, ProviderFreeDict, c.Dictionary.Provider)
	}

	if _, err := domain.ParseRegion(c.Oxford.DefaultRegion); err != nil {
		return fmt.Errorf("oxford.default_region: %w", err)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 (got %v)", c.Cache.TTL)
	}

	if c.History.Retention <= 0 {
		return fmt.Errorf("history.retention must be > 0 (got %v)", c.History.Retention)
	}

	if c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (o *OxfordConfig) validate() error {
	if strings.TrimSpace(o.AppID) == "" || strings.TrimSpace(o.AppKey) == "" {
		return fmt.Errorf("app_id and app_key are required")
	}

	u, err := url.Parse(o.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", o.BaseURL)
	}

	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", o.Timeout)
	}

	return nil
}

func (f *FreeDictConfig) validate() error {
	u, err := url.Parse(f.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url %q is not an absolute URL", f.BaseURL)
	}
	if f.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %v)", f.Timeout)
	}
	return nil
}

// Region returns the parsed default region. Validate guarantees it parses;
// an unparsable value falls back to domain.DefaultRegion.
func (o OxfordConfig) Region() domain.Region {
	r, err := domain.ParseRegion(o.DefaultRegion)
	if err != nil {
		return domain.DefaultRegion
	}
	return r
}
