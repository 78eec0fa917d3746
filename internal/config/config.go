// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultMediaURL is what the mock endpoint returns for every prompt.
	DefaultMediaURL   = "https://cdn.poehali.dev/projects/ab08b2fd-f584-4277-98fa-ab3672f00a14/files/5a2e49d4-82cd-4293-982d-d7a5e11eefcc.jpg"
	DefaultVideoDelay = 5 * time.Second
)

type RuntimeConfig struct {
	Dev bool
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
}

type GeneratorConfig struct {
	ImageURL string `yaml:"image_url"` // constant URL returned by the mock
}

type ClientConfig struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

type GalleryConfig struct {
	VideoDelay       time.Duration `yaml:"video_delay"`
	VideoPlaceholder string        `yaml:"video_placeholder"`
	Workers          int           `yaml:"workers"`
	SeedExamples     bool          `yaml:"seed_examples"`
	PromptWidth      int           `yaml:"prompt_width"` // columns per rendered prompt line
	MetricsAddr      string        `yaml:"metrics_addr"` // empty disables the gallery /metrics listener
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Generator GeneratorConfig `yaml:"generator"`
	Client    ClientConfig    `yaml:"client"`
	Gallery   GalleryConfig   `yaml:"gallery"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the YAML file at path and fills defaults. An empty path
// yields a config made only of defaults.
func LoadConfig(path string, dev bool) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyDefaults()
	cfg.Runtime.Dev = dev

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	c.Server.ReadTimeout = normalizeDuration(c.Server.ReadTimeout, 10*time.Second)
	c.Server.WriteTimeout = normalizeDuration(c.Server.WriteTimeout, 15*time.Second)
	c.Server.RequestTimeout = normalizeDuration(c.Server.RequestTimeout, 10*time.Second)
	c.Server.ShutdownTimeout = normalizeDuration(c.Server.ShutdownTimeout, 5*time.Second)
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = 1 << 20
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Generator.ImageURL == "" {
		c.Generator.ImageURL = DefaultMediaURL
	}
	if c.Client.Endpoint == "" {
		c.Client.Endpoint = fmt.Sprintf("http://localhost:%d/", c.Server.Port)
	}
	c.Client.Timeout = normalizeDuration(c.Client.Timeout, 30*time.Second)
	c.Gallery.VideoDelay = normalizeDuration(c.Gallery.VideoDelay, DefaultVideoDelay)
	if c.Gallery.VideoPlaceholder == "" {
		c.Gallery.VideoPlaceholder = DefaultMediaURL
	}
	if c.Gallery.Workers <= 0 {
		c.Gallery.Workers = 2
	}
	if c.Gallery.PromptWidth <= 0 {
		c.Gallery.PromptWidth = 60
	}
}

// Validate performs minimal sanity checks.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	u, err := url.Parse(c.Client.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("client.endpoint must be an absolute URL")
	}
	return nil
}

func normalizeDuration(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
