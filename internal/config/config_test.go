package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Network.Timeout != 10 {
		t.Errorf("expected default timeout 10, got %d", cfg.Network.Timeout)
	}
	if cfg.Output.MaxDisplayLength != 10000 {
		t.Errorf("expected default display length 10000, got %d", cfg.Output.MaxDisplayLength)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected default format 'text', got %q", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[network]
timeout = 3
user_agent = "firefox"

[output]
save_dir = "/tmp/results"
format = "markdown"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Network.Timeout != 3 {
		t.Errorf("expected timeout 3, got %d", cfg.Network.Timeout)
	}
	if cfg.Network.UserAgent != "firefox" {
		t.Errorf("expected user agent 'firefox', got %q", cfg.Network.UserAgent)
	}
	if cfg.Output.SaveDir != "/tmp/results" {
		t.Errorf("unexpected save dir: %q", cfg.Output.SaveDir)
	}
	if cfg.Output.Format != "markdown" {
		t.Errorf("expected format 'markdown', got %q", cfg.Output.Format)
	}
	// Keys absent from the file keep their defaults
	if cfg.Output.MaxDisplayLength != 10000 {
		t.Errorf("expected default display length, got %d", cfg.Output.MaxDisplayLength)
	}
	if !cfg.Network.FollowRedirects {
		t.Error("expected follow_redirects to default to true")
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[network]\ntimeout = 3\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("PAGESIFT_NETWORK_TIMEOUT", "42")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Network.Timeout != 42 {
		t.Errorf("expected env override 42, got %d", cfg.Network.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"valid", func(c *Config) {}, nil},
		{"zero timeout", func(c *Config) { c.Network.Timeout = 0 }, ErrInvalidTimeout},
		{"bad format", func(c *Config) { c.Output.Format = "html" }, ErrInvalidFormat},
		{"zero display length", func(c *Config) { c.Output.MaxDisplayLength = 0 }, ErrInvalidDisplayLength},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, ErrInvalidLogLevel},
		{"upper-case log level", func(c *Config) { c.Logging.Level = "DEBUG" }, nil},
		{"zero body size", func(c *Config) { c.Network.MaxBodyMB = 0 }, ErrInvalidBodySize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateExampleConfig_Loads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Default().CreateExampleConfig(path); err != nil {
		t.Fatalf("CreateExampleConfig failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("example config should load, got %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("example config should validate, got %v", err)
	}
}
