package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv = "STEADFAST_SCANNER_CONFIG"
	cookieEnv     = "STEADFAST_COOKIE"
	baseURLEnv    = "STEADFAST_BASE_URL"
	cachePathEnv  = "STEADFAST_CACHE_PATH"
	reportsDirEnv = "STEADFAST_REPORTS_DIR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Portal  PortalConfig  `yaml:"portal"`
	Scanner ScannerConfig `yaml:"scanner"`
	Cache   CacheConfig   `yaml:"cache"`
	Reports ReportsConfig `yaml:"reports"`
	Logging LoggingConfig `yaml:"logging"`
}

// PortalConfig describes how to reach the courier portal.
type PortalConfig struct {
	BaseURL        string `yaml:"baseUrl"`
	UserAgent      string `yaml:"userAgent"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
	// Cookie is an optional pre-seeded credential, normally supplied per
	// run via flag or prompt.
	Cookie string `yaml:"cookie"`
}

// Timeout resolves the configured request timeout.
func (p PortalConfig) Timeout() time.Duration {
	if p.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(p.TimeoutSeconds) * time.Second
}

// ScannerConfig bounds the pagination walk.
type ScannerConfig struct {
	MaxPages     int  `yaml:"maxPages"`
	DelayMinMs   int  `yaml:"delayMinMs"`
	DelayMaxMs   int  `yaml:"delayMaxMs"`
	DisableDelay bool `yaml:"disableDelay"`
}

// CacheConfig locates the last-request snapshot database.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// ReportsConfig locates exported spreadsheets.
type ReportsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig controls the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Portal.BaseURL = v
	}

	if v := os.Getenv(cookieEnv); v != "" {
		c.Portal.Cookie = v
	}

	if v := os.Getenv(cachePathEnv); v != "" {
		c.Cache.Path = v
	}

	if v := os.Getenv(reportsDirEnv); v != "" {
		c.Reports.Dir = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Portal.BaseURL != "" {
		base.Portal.BaseURL = override.Portal.BaseURL
	}
	if override.Portal.UserAgent != "" {
		base.Portal.UserAgent = override.Portal.UserAgent
	}
	if override.Portal.TimeoutSeconds > 0 {
		base.Portal.TimeoutSeconds = override.Portal.TimeoutSeconds
	}
	if override.Portal.Cookie != "" {
		base.Portal.Cookie = override.Portal.Cookie
	}

	if override.Scanner.MaxPages > 0 {
		base.Scanner.MaxPages = override.Scanner.MaxPages
	}
	if override.Scanner.DelayMinMs > 0 {
		base.Scanner.DelayMinMs = override.Scanner.DelayMinMs
	}
	if override.Scanner.DelayMaxMs > 0 {
		base.Scanner.DelayMaxMs = override.Scanner.DelayMaxMs
	}
	if override.Scanner.DisableDelay {
		base.Scanner.DisableDelay = true
	}

	if override.Cache.Path != "" {
		base.Cache.Path = override.Cache.Path
	}

	if override.Reports.Dir != "" {
		base.Reports.Dir = override.Reports.Dir
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Portal: PortalConfig{
			BaseURL:        "https://steadfast.com.bd",
			UserAgent:      "SteadfastScanner/1.0",
			TimeoutSeconds: 10,
		},
		Scanner: ScannerConfig{
			MaxPages:   50,
			DelayMinMs: 300,
			DelayMaxMs: 400,
		},
		Cache:   CacheConfig{Path: "cache.db"},
		Reports: ReportsConfig{Dir: "reports"},
		Logging: LoggingConfig{Level: "info"},
	}
}
