package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radarhud.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("Load should write a default config file")
	}
	if cfg.Display.MaxDistanceNM != 40 {
		t.Errorf("default max distance = %f, want 40", cfg.Display.MaxDistanceNM)
	}
	if cfg.Feed.Provider != "sim" {
		t.Errorf("default feed provider = %q, want sim", cfg.Feed.Provider)
	}
}

func TestLoadMergesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radarhud.yaml")
	content := `
display:
  max_distance_nm: 80
feed:
  provider: websocket
  url: ws://example:9000/feed
  target_ttl: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Display.MaxDistanceNM != 80 {
		t.Errorf("max distance = %f, want 80 (from file)", cfg.Display.MaxDistanceNM)
	}
	if cfg.Feed.URL != "ws://example:9000/feed" {
		t.Errorf("feed url = %q", cfg.Feed.URL)
	}
	if time.Duration(cfg.Feed.TargetTTL) != 30*time.Second {
		t.Errorf("target ttl = %v, want 30s", time.Duration(cfg.Feed.TargetTTL))
	}
	// Untouched sections keep defaults.
	if cfg.Server.Address != "localhost:2450" {
		t.Errorf("server address = %q, want default", cfg.Server.Address)
	}
}

func TestLoadRejectsBadProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radarhud.yaml")
	if err := os.WriteFile(path, []byte("feed:\n  provider: carrier-pigeon\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("unknown feed provider should fail validation")
	}
}

func TestGenerateDefaultIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radarhud.yaml")

	if err := GenerateDefault(path); err != nil {
		t.Fatalf("GenerateDefault: %v", err)
	}
	before, _ := os.ReadFile(path)

	if err := GenerateDefault(path); err != nil {
		t.Fatalf("GenerateDefault (second): %v", err)
	}
	after, _ := os.ReadFile(path)

	if string(before) != string(after) {
		t.Error("second GenerateDefault must not rewrite the file")
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"100ms", 100 * time.Millisecond},
		{"2h45m", 2*time.Hour + 45*time.Minute},
		{"1d", Day},
		{"2w", 2 * Week},
		{"1d12h", Day + 12*time.Hour},
		{"", 0},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDuration("5x"); err == nil {
		t.Error("unknown unit should error")
	}
}
