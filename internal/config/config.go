package config

import (
	"fmt"
	"time"
)

// Default configuration values.
const (
	defaultServiceName       = "linkguard"
	defaultServiceVersion    = "1.0.0"
	defaultServicePort       = 8080
	defaultDBHost            = "localhost"
	defaultDBPort            = 5432
	defaultDBUser            = "postgres"
	defaultDBName            = "linkguard"
	defaultDBSSLMode         = "disable"
	defaultDBMaxConns        = 25
	defaultDBMaxIdleConns    = 5
	defaultLogLevel          = "info"
	defaultMediumMin         = 50
	defaultHighMin           = 80
	defaultTextKeywordMin    = 3
	defaultMaxURLsPerText    = 5
	defaultSafeBrowsingFloor = 90
	defaultOpenPhishFloor    = 95
	defaultLookupTimeoutSec  = 4
	defaultRateLimitRPS      = 1
	defaultRateLimitBurst    = 60
	defaultPollIntervalSec   = 30
	defaultAnalyzerBatch     = 50
	defaultAPIKey            = "dev-123"
)

// Default heuristic lists. All of them are configuration, not invariants;
// deployments override them per region or per campaign.
var (
	defaultShorteners = []string{
		"bit.ly", "tinyurl.com", "t.co", "is.gd", "goo.gl", "cutt.ly", "ow.ly", "rebrand.ly",
	}
	defaultSuspiciousTLDs = []string{
		"top", "xyz", "click", "link", "fit", "rest", "gq", "ml", "cf", "tk",
	}
	defaultURLKeywords = []string{
		"pix", "premio", "brinde", "ganhou", "suporte", "senha", "bloqueio",
		"liberar", "cartao", "banco", "itau", "nubank", "correios", "receita", "fgts",
	}
	defaultTextKeywords = []string{
		"pix", "senha", "urgente", "bloqueio", "transferencia", "premio",
		"ganhou", "clique", "cadastro", "confirmar",
	}
	defaultReportKeywords = []string{
		"pix", "senha", "cobranca", "bloqueio", "link", "golpe", "phishing",
	}
)

// Config holds all configuration for the linkguard service. It is built
// once at startup and passed into components; scoring logic never reads
// the environment directly.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Database   DatabaseConfig   `yaml:"database"`
	Logging    LoggingConfig    `yaml:"logging"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Reputation ReputationConfig `yaml:"reputation"`
	Auth       AuthConfig       `yaml:"auth"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Analyzer   AnalyzerConfig   `yaml:"analyzer"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Port    int    `env:"LINKGUARD_PORT" yaml:"port"`
	Debug   bool   `env:"APP_DEBUG"      yaml:"debug"`
}

// DatabaseConfig holds database configuration.
type DatabaseConfig struct {
	Host            string        `env:"POSTGRES_HOST"     yaml:"host"`
	Port            int           `env:"POSTGRES_PORT"     yaml:"port"`
	User            string        `env:"POSTGRES_USER"     yaml:"user"`
	Password        string        `env:"POSTGRES_PASSWORD" yaml:"password"`
	Database        string        `env:"POSTGRES_DB"       yaml:"database"`
	SSLMode         string        `env:"POSTGRES_SSLMODE"  yaml:"sslmode"`
	MaxConnections  int           `yaml:"max_connections"`
	MaxIdleConns    int           `yaml:"max_idle_connections"`
	ConnMaxLifetime time.Duration `yaml:"connection_max_lifetime"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// ScoringConfig holds the heuristic rule lists and severity thresholds.
// A zero threshold reads as unset and takes the default, so medium_min
// cannot be configured to 0 (every check would rate at least medium).
type ScoringConfig struct {
	MediumMin int `env:"SCORE_MEDIUM_MIN" yaml:"medium_min"`
	HighMin   int `env:"SCORE_HIGH_MIN"   yaml:"high_min"`

	Shorteners     []string `yaml:"shorteners"`
	SuspiciousTLDs []string `yaml:"suspicious_tlds"`
	URLKeywords    []string `yaml:"url_keywords"`
	TextKeywords   []string `yaml:"text_keywords"`
	ReportKeywords []string `yaml:"report_keywords"`

	// TextAlertKeywordMin is the keyword-hit count that materializes a
	// TEXT_ANALYSIS alert on its own, independent of the merged score.
	TextAlertKeywordMin int `env:"TEXT_ALERT_KEYWORD_MIN" yaml:"text_alert_keyword_min"`
	// MaxURLsPerText caps how many embedded URLs are scored per message.
	MaxURLsPerText int `yaml:"max_urls_per_text"`
}

// ReputationConfig holds external reputation provider configuration.
// A provider with an empty key or URL runs as a stub.
type ReputationConfig struct {
	SafeBrowsingKey   string        `env:"SAFE_BROWSING_KEY"  yaml:"safe_browsing_key"`
	SafeBrowsingFloor int           `yaml:"safe_browsing_floor"`
	OpenPhishFeedURL  string        `env:"OPENPHISH_FEED_URL" yaml:"openphish_feed_url"`
	OpenPhishFloor    int           `yaml:"openphish_floor"`
	LookupTimeout     time.Duration `yaml:"lookup_timeout"`
}

// AuthConfig holds the API key gate configuration.
type AuthConfig struct {
	APIKey string `env:"LINKGUARD_API_KEY" yaml:"api_key"`
}

// RateLimitConfig holds per-client token bucket settings.
type RateLimitConfig struct {
	RPS   int `env:"RATE_LIMIT_RPS"   yaml:"rps"`
	Burst int `env:"RATE_LIMIT_BURST" yaml:"burst"`
}

// AnalyzerConfig holds background message analyzer settings.
type AnalyzerConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int           `yaml:"batch_size"`
}

// Load loads configuration from the specified path and validates it.
func Load(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configuration the pipeline cannot run with. Violations
// are startup-time errors, never per-request ones.
func (c *Config) Validate() error {
	s := c.Scoring
	if s.MediumMin < 0 || s.HighMin > 100 || s.MediumMin > s.HighMin {
		return fmt.Errorf("invalid severity thresholds: medium_min=%d high_min=%d (need 0 <= medium_min <= high_min <= 100)",
			s.MediumMin, s.HighMin)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("invalid rate limit: rps=%d burst=%d", c.RateLimit.RPS, c.RateLimit.Burst)
	}
	return nil
}

func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultLogLevel
	}
	setScoringDefaults(&cfg.Scoring)
	setReputationDefaults(&cfg.Reputation)
	if cfg.Auth.APIKey == "" {
		cfg.Auth.APIKey = defaultAPIKey
	}
	setRateLimitDefaults(&cfg.RateLimit)
	setAnalyzerDefaults(&cfg.Analyzer)
}

func setServiceDefaults(s *ServiceConfig) {
	if s.Name == "" {
		s.Name = defaultServiceName
	}
	if s.Version == "" {
		s.Version = defaultServiceVersion
	}
	if s.Port == 0 {
		s.Port = defaultServicePort
	}
}

func setDatabaseDefaults(d *DatabaseConfig) {
	if d.Host == "" {
		d.Host = defaultDBHost
	}
	if d.Port == 0 {
		d.Port = defaultDBPort
	}
	if d.User == "" {
		d.User = defaultDBUser
	}
	if d.Database == "" {
		d.Database = defaultDBName
	}
	if d.SSLMode == "" {
		d.SSLMode = defaultDBSSLMode
	}
	if d.MaxConnections == 0 {
		d.MaxConnections = defaultDBMaxConns
	}
	if d.MaxIdleConns == 0 {
		d.MaxIdleConns = defaultDBMaxIdleConns
	}
	if d.ConnMaxLifetime == 0 {
		d.ConnMaxLifetime = time.Hour
	}
}

func setScoringDefaults(s *ScoringConfig) {
	if s.MediumMin == 0 {
		s.MediumMin = defaultMediumMin
	}
	if s.HighMin == 0 {
		s.HighMin = defaultHighMin
	}
	if len(s.Shorteners) == 0 {
		s.Shorteners = defaultShorteners
	}
	if len(s.SuspiciousTLDs) == 0 {
		s.SuspiciousTLDs = defaultSuspiciousTLDs
	}
	if len(s.URLKeywords) == 0 {
		s.URLKeywords = defaultURLKeywords
	}
	if len(s.TextKeywords) == 0 {
		s.TextKeywords = defaultTextKeywords
	}
	if len(s.ReportKeywords) == 0 {
		s.ReportKeywords = defaultReportKeywords
	}
	if s.TextAlertKeywordMin == 0 {
		s.TextAlertKeywordMin = defaultTextKeywordMin
	}
	if s.MaxURLsPerText == 0 {
		s.MaxURLsPerText = defaultMaxURLsPerText
	}
}

func setReputationDefaults(r *ReputationConfig) {
	if r.SafeBrowsingFloor == 0 {
		r.SafeBrowsingFloor = defaultSafeBrowsingFloor
	}
	if r.OpenPhishFloor == 0 {
		r.OpenPhishFloor = defaultOpenPhishFloor
	}
	if r.LookupTimeout == 0 {
		r.LookupTimeout = defaultLookupTimeoutSec * time.Second
	}
}

func setRateLimitDefaults(r *RateLimitConfig) {
	if r.RPS == 0 {
		r.RPS = defaultRateLimitRPS
	}
	if r.Burst == 0 {
		r.Burst = defaultRateLimitBurst
	}
}

func setAnalyzerDefaults(a *AnalyzerConfig) {
	if a.PollInterval == 0 {
		a.PollInterval = defaultPollIntervalSec * time.Second
	}
	if a.BatchSize == 0 {
		a.BatchSize = defaultAnalyzerBatch
	}
}
