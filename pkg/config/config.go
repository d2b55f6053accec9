// Package config loads the application configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	DB        DBConfig        `yaml:"db"`
	Feed      FeedConfig      `yaml:"feed"`
	Radar     RadarConfig     `yaml:"radar"`
	Display   DisplayConfig   `yaml:"display"`
	Weather   WeatherConfig   `yaml:"weather"`
	Assistant AssistantConfig `yaml:"assistant"`
	Ticker    TickerConfig    `yaml:"ticker"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogSettings holds settings for a specific logger.
type LogSettings struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Server LogSettings `yaml:"server"`
}

// DBConfig holds track history database settings.
type DBConfig struct {
	Path      string   `yaml:"path"`
	RetainFor Duration `yaml:"retain_for"`
}

// FeedConfig holds data-source settings.
type FeedConfig struct {
	// Provider selects the source: "websocket" or "sim".
	Provider string        `yaml:"provider"`
	URL      string        `yaml:"url"`
	Backoff  BackoffConfig `yaml:"backoff"`
	// TargetTTL evicts targets not refreshed within this window.
	TargetTTL Duration  `yaml:"target_ttl"`
	Sim       SimConfig `yaml:"sim"`
}

// BackoffConfig holds reconnect backoff settings.
type BackoffConfig struct {
	BaseDelay Duration `yaml:"base_delay"`
	MaxDelay  Duration `yaml:"max_delay"`
}

// SimConfig holds settings for the simulated feed.
type SimConfig struct {
	CenterLat    float64  `yaml:"center_lat"`
	CenterLon    float64  `yaml:"center_lon"`
	OwnshipAltFt float64  `yaml:"ownship_alt_ft"`
	TrafficCount int      `yaml:"traffic_count"`
	RadiusNM     float64  `yaml:"radius_nm"`
	Period       Duration `yaml:"period"`
	Interval     Duration `yaml:"interval"`
	Weather      bool     `yaml:"weather"`
}

// RadarConfig holds threat classification thresholds.
type RadarConfig struct {
	RADistNM   float64 `yaml:"ra_dist_nm"`
	RAAltFt    float64 `yaml:"ra_alt_ft"`
	TADistNM   float64 `yaml:"ta_dist_nm"`
	TAAltFt    float64 `yaml:"ta_alt_ft"`
	ProxDistNM float64 `yaml:"prox_dist_nm"`
	ProxAltFt  float64 `yaml:"prox_alt_ft"`
}

// DisplayConfig holds the screen and indicator placement settings.
type DisplayConfig struct {
	ScreenWidth       int     `yaml:"screen_width"`
	ScreenHeight      int     `yaml:"screen_height"`
	FovYDeg           float64 `yaml:"fov_y_deg"`
	EdgePaddingPx     float64 `yaml:"edge_padding_px"`
	IndicatorSizePx   float64 `yaml:"indicator_size_px"`
	MaxDistanceNM     float64 `yaml:"max_distance_nm"`
	ShowDistanceLabel bool    `yaml:"show_distance_label"`
	ShowAltitude      bool    `yaml:"show_altitude"`
}

// WeatherConfig holds weather grid settings.
type WeatherConfig struct {
	Resolution int      `yaml:"h3_resolution"`
	HalfLife   Duration `yaml:"half_life"`
	FloorDBZ   float64  `yaml:"floor_dbz"`
}

// AssistantConfig holds LLM assistant settings.
type AssistantConfig struct {
	Provider string `yaml:"provider"` // "gemini", "mock", "" (disabled)
	Model    string `yaml:"model"`
	Key      string `yaml:"key"`
}

// TickerConfig holds the frame loop settings.
type TickerConfig struct {
	FrameLoop Duration `yaml:"frame_loop"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address: "localhost:2450",
		},
		Log: LogConfig{
			Server: LogSettings{
				Path:  "./logs/server.log",
				Level: "INFO",
			},
		},
		DB: DBConfig{
			Path:      "./data/radarhud.db",
			RetainFor: Duration(Day),
		},
		Feed: FeedConfig{
			Provider: "sim",
			URL:      "ws://localhost:2451/feed",
			Backoff: BackoffConfig{
				BaseDelay: Duration(1 * time.Second),
				MaxDelay:  Duration(30 * time.Second),
			},
			TargetTTL: Duration(10 * time.Second),
			Sim: SimConfig{
				CenterLat:    51.6845,
				CenterLon:    14.4234,
				OwnshipAltFt: 4500,
				TrafficCount: 8,
				RadiusNM:     8.0,
				Period:       Duration(90 * time.Second),
				Interval:     Duration(500 * time.Millisecond),
				Weather:      true,
			},
		},
		Radar: RadarConfig{
			RADistNM:   3.0,
			RAAltFt:    600,
			TADistNM:   6.0,
			TAAltFt:    850,
			ProxDistNM: 10.0,
			ProxAltFt:  1200,
		},
		Display: DisplayConfig{
			ScreenWidth:       1920,
			ScreenHeight:      1080,
			FovYDeg:           60,
			EdgePaddingPx:     50,
			IndicatorSizePx:   64,
			MaxDistanceNM:     40,
			ShowDistanceLabel: true,
			ShowAltitude:      true,
		},
		Weather: WeatherConfig{
			Resolution: 5,
			HalfLife:   Duration(2 * time.Minute),
			FloorDBZ:   10,
		},
		Assistant: AssistantConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash-lite",
			Key:      "",
		},
		Ticker: TickerConfig{
			FrameLoop: Duration(100 * time.Millisecond),
		},
	}
}

// Load loads the configuration from the given path.
// If the file does not exist, it creates it with default values. If it
// exists, defaults are merged with file values but nothing is written back,
// to preserve user formatting and comments.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		return cfg, finish(cfg)
	}

	if err := Save(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to save config file: %w", err)
	}
	return cfg, finish(cfg)
}

// finish applies environment fallbacks and validates. The API key is never
// written back to disk.
func finish(cfg *Config) error {
	if cfg.Assistant.Key == "" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			cfg.Assistant.Key = key
		}
	}
	return validate(cfg)
}

func validate(cfg *Config) error {
	if cfg.Display.MaxDistanceNM <= 0 {
		return fmt.Errorf("display.max_distance_nm must be > 0, got %f", cfg.Display.MaxDistanceNM)
	}
	if cfg.Display.EdgePaddingPx < 0 {
		return fmt.Errorf("display.edge_padding_px must be >= 0, got %f", cfg.Display.EdgePaddingPx)
	}
	switch cfg.Feed.Provider {
	case "sim", "websocket":
	default:
		return fmt.Errorf("unknown feed provider %q", cfg.Feed.Provider)
	}
	return nil
}

// Save writes the configuration to the path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# radarhud Configuration
# ----------------------
# Duration units: ns, us, ms, s, m, h, d (day), w (week)

`)
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateDefault creates a default config file at the given path.
// Returns nil if the file already exists.
func GenerateDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}
