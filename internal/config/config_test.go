//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return p
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", false)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Generator.ImageURL != DefaultMediaURL {
		t.Errorf("unexpected default image url %q", cfg.Generator.ImageURL)
	}
	if cfg.Gallery.VideoDelay != 5*time.Second {
		t.Errorf("expected 5s video delay, got %v", cfg.Gallery.VideoDelay)
	}
	if cfg.Client.Endpoint != "http://localhost:8080/" {
		t.Errorf("unexpected endpoint %q", cfg.Client.Endpoint)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults %+v", cfg.Log)
	}
}

func TestLoadConfig_FromFile(t *testing.T) {
	p := writeConfig(t, `
server:
  port: 9090
  request_timeout: 3s
log:
  level: debug
  format: console
generator:
  image_url: https://cdn.example.com/fixed.png
gallery:
  video_delay: 250ms
  seed_examples: true
  metrics_addr: 127.0.0.1:9464
`)
	cfg, err := LoadConfig(p, true)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Server.RequestTimeout != 3*time.Second {
		t.Errorf("expected 3s request timeout, got %v", cfg.Server.RequestTimeout)
	}
	if cfg.Generator.ImageURL != "https://cdn.example.com/fixed.png" {
		t.Errorf("unexpected image url %q", cfg.Generator.ImageURL)
	}
	if cfg.Gallery.VideoDelay != 250*time.Millisecond {
		t.Errorf("expected 250ms delay, got %v", cfg.Gallery.VideoDelay)
	}
	if !cfg.Gallery.SeedExamples {
		t.Error("expected seed_examples to be true")
	}
	if cfg.Gallery.MetricsAddr != "127.0.0.1:9464" {
		t.Errorf("unexpected metrics addr %q", cfg.Gallery.MetricsAddr)
	}
	if cfg.Client.Endpoint != "http://localhost:9090/" {
		t.Errorf("endpoint should follow server port, got %q", cfg.Client.Endpoint)
	}
	if !cfg.Runtime.Dev {
		t.Error("expected dev mode to be set")
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
			t.Fatal("expected error for missing file")
		}
	})
	t.Run("bad yaml", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "server: [1, 2"), false); err == nil {
			t.Fatal("expected parse error")
		}
	})
	t.Run("bad log format", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "log:\n  format: xml\n"), false); err == nil {
			t.Fatal("expected validation error")
		}
	})
	t.Run("relative endpoint", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "client:\n  endpoint: /generate\n"), false); err == nil {
			t.Fatal("expected validation error")
		}
	})
}
