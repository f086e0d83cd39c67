package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// History drivers.
const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverValkey = "valkey"
	DriverBadger = "badger"
)

// Config holds the shopsense service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Auth      AuthConfig      `yaml:"auth"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	History   HistoryConfig   `yaml:"history"`
	Ranking   RankingConfig   `yaml:"ranking"`
	Intent    IntentConfig    `yaml:"intent"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
	// PublicCatalog serves catalog reads without a key.
	PublicCatalog bool `yaml:"public_catalog"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CORSConfig lists origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RateLimitConfig caps requests per client IP.
type RateLimitConfig struct {
	Disabled  bool `yaml:"disabled"`
	Requests  int  `yaml:"requests"`
	WindowSec int  `yaml:"window_sec"`
}

// CatalogConfig points at the product file. Empty path serves the built-in sample.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// HistoryConfig selects and configures the user history backend.
type HistoryConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey, badger (default: memory)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // badger data dir; empty = in-memory
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RankingConfig holds relevance thresholds and list sizes.
type RankingConfig struct {
	SearchMinScore     float64 `yaml:"search_min_score"`
	SimilarMinScore    float64 `yaml:"similar_min_score"`
	AttributePenalty   float64 `yaml:"attribute_penalty"`
	MaxResults         int     `yaml:"max_results"`
	MaxRecommendations int     `yaml:"max_recommendations"`
	MaxHistoryPicks    int     `yaml:"max_history_picks"`
}

// IntentConfig optionally replaces the built-in lexicons.
type IntentConfig struct {
	Colors     []LexiconTerm `yaml:"colors"`
	Categories []LexiconTerm `yaml:"categories"`
}

// LexiconTerm is a canonical attribute and its synonyms.
type LexiconTerm struct {
	Canonical string   `yaml:"canonical"`
	Synonyms  []string `yaml:"synonyms"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse expands ${VAR} references, decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Default returns a configuration with every default applied.
func Default() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}
	cfg.ApplyDefaults()
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.RateLimit.Requests <= 0 {
		c.RateLimit.Requests = 100
	}
	if c.RateLimit.WindowSec <= 0 {
		c.RateLimit.WindowSec = 60
	}
	if c.History.Driver == "" {
		c.History.Driver = DriverMemory
	}
	if c.History.ReadinessTimeout <= 0 {
		c.History.ReadinessTimeout = 10
	}
	if c.History.KeyPrefix == "" {
		c.History.KeyPrefix = "shopsense:history:"
	}
	c.Ranking.applyDefaults()
}

func (r *RankingConfig) applyDefaults() {
	if r.SearchMinScore == 0 {
		r.SearchMinScore = 0.1
	}
	if r.SimilarMinScore == 0 {
		r.SimilarMinScore = 0.2
	}
	if r.AttributePenalty == 0 {
		r.AttributePenalty = 0.3
	}
	if r.MaxResults <= 0 {
		r.MaxResults = 5
	}
	if r.MaxRecommendations <= 0 {
		r.MaxRecommendations = 5
	}
	if r.MaxHistoryPicks <= 0 {
		r.MaxHistoryPicks = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.History.Driver {
	case DriverMemory, DriverBadger:
	case DriverRedis, DriverValkey:
		if len(c.History.Addrs) == 0 {
			return fmt.Errorf("history.addrs is required for driver %q", c.History.Driver)
		}
	default:
		return fmt.Errorf("history.driver must be one of memory, redis, valkey, badger; got %q", c.History.Driver)
	}

	r := c.Ranking
	for name, v := range map[string]float64{
		"search_min_score":  r.SearchMinScore,
		"similar_min_score": r.SimilarMinScore,
	} {
		if v < 0 || v >= 1 {
			return fmt.Errorf("ranking.%s must be in [0, 1), got %v", name, v)
		}
	}
	if r.AttributePenalty <= 0 || r.AttributePenalty > 1 {
		return fmt.Errorf("ranking.attribute_penalty must be in (0, 1], got %v", r.AttributePenalty)
	}
	if r.MaxHistoryPicks > r.MaxRecommendations {
		return fmt.Errorf("ranking.max_history_picks (%d) exceeds max_recommendations (%d)",
			r.MaxHistoryPicks, r.MaxRecommendations)
	}

	for _, set := range []struct {
		name  string
		terms []LexiconTerm
	}{{"colors", c.Intent.Colors}, {"categories", c.Intent.Categories}} {
		for i, t := range set.terms {
			if strings.TrimSpace(t.Canonical) == "" {
				return fmt.Errorf("intent.%s[%d].canonical is required", set.name, i)
			}
		}
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
