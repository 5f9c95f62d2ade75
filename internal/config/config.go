package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Analyzer providers
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Telemetry sinks
const (
	SinkNone     = "none"
	SinkLog      = "log"
	SinkMySQL    = "mysql"
	SinkPostgres = "postgres"
	SinkMinio    = "minio"
)

type Config struct {
	Server struct {
		Port        int      `yaml:"port"`
		PublicURL   string   `yaml:"publicURL"`
		CORSOrigins []string `yaml:"corsOrigins"`
	} `yaml:"server"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Analyzer struct {
		Provider  string        `yaml:"provider"`
		APIKey    string        `yaml:"apiKey"`
		Model     string        `yaml:"model"`
		BaseURL   string        `yaml:"baseURL"`
		WebSearch bool          `yaml:"webSearch"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"analyzer"`

	UI struct {
		Locale           string        `yaml:"locale"`
		TagLimit         int           `yaml:"tagLimit"`
		StatusInterval   time.Duration `yaml:"statusInterval"`
		ThumbnailPattern string        `yaml:"thumbnailPattern"`
	} `yaml:"ui"`

	Session struct {
		IdleTTL       time.Duration `yaml:"idleTTL"`
		SweepInterval time.Duration `yaml:"sweepInterval"`
	} `yaml:"session"`

	RateLimit struct {
		Capacity   int `yaml:"capacity"`
		RefillRate int `yaml:"refillRate"`
	} `yaml:"rateLimit"`

	Telemetry struct {
		Sink          string        `yaml:"sink"`
		BufferSize    int           `yaml:"bufferSize"`
		FlushInterval time.Duration `yaml:"flushInterval"`
	} `yaml:"telemetry"`

	Database struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		SSLMode  string `yaml:"sslMode"`
	} `yaml:"database"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Server.Port = 8080
	cfg.Log.Level = "info"
	cfg.Analyzer.Provider = ProviderGemini
	cfg.Analyzer.Timeout = 90 * time.Second
	cfg.UI.Locale = "ar"
	cfg.UI.TagLimit = 8
	cfg.UI.StatusInterval = 1500 * time.Millisecond
	cfg.Session.IdleTTL = 2 * time.Hour
	cfg.Session.SweepInterval = 5 * time.Minute
	cfg.RateLimit.Capacity = 10
	cfg.RateLimit.RefillRate = 1
	cfg.Telemetry.Sink = SinkLog
	cfg.Telemetry.BufferSize = 256
	cfg.Telemetry.FlushInterval = 10 * time.Second
	cfg.Database.SSLMode = "disable"
	return &cfg
}

// Load baca file config.yaml on top of defaults. A missing file is not an
// error; environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	cfg.applySinkDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("ANALYZER_PROVIDER"); v != "" {
		c.Analyzer.Provider = strings.ToLower(v)
	}
	if c.Analyzer.APIKey == "" {
		keys := []string{"GEMINI_API_KEY", "API_KEY"}
		if c.Analyzer.Provider == ProviderOpenAI {
			keys = []string{"OPENAI_API_KEY", "API_KEY"}
		}
		for _, k := range keys {
			if v := getenv(k); v != "" {
				c.Analyzer.APIKey = v
				break
			}
		}
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// applySinkDefaults fills the database port from the SQL sink when unset.
func (c *Config) applySinkDefaults() {
	if c.Database.Port != 0 {
		return
	}
	switch c.Telemetry.Sink {
	case SinkMySQL:
		c.Database.Port = 3306
	case SinkPostgres:
		c.Database.Port = 5432
	}
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	switch c.Analyzer.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown analyzer provider %q (allowed: gemini, openai)", c.Analyzer.Provider)
	}
	switch c.Telemetry.Sink {
	case SinkNone, SinkLog, SinkMySQL, SinkPostgres, SinkMinio:
	default:
		return fmt.Errorf("unknown telemetry sink %q", c.Telemetry.Sink)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if (c.Telemetry.Sink == SinkMySQL || c.Telemetry.Sink == SinkPostgres) &&
		(c.Database.Port <= 0 || c.Database.Port > 65535) {
		return fmt.Errorf("invalid database port %d for %s sink", c.Database.Port, c.Telemetry.Sink)
	}
	if c.UI.TagLimit < 0 {
		return fmt.Errorf("ui.tagLimit must not be negative")
	}
	return nil
}

// Helper untuk build DSN MySQL
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// PostgresDSN builds a lib/pq connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
