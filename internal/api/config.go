package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"radarhud/pkg/config"
)

// ConfigHandler serves a read-only view of the active configuration.
type ConfigHandler struct {
	appCfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{appCfg: cfg}
}

// ConfigResponse is the sanitized config view. Credentials never leave the
// process.
type ConfigResponse struct {
	FeedProvider      string  `json:"feed_provider"`
	FeedURL           string  `json:"feed_url"`
	ScreenWidth       int     `json:"screen_width"`
	ScreenHeight      int     `json:"screen_height"`
	FovYDeg           float64 `json:"fov_y_deg"`
	EdgePaddingPx     float64 `json:"edge_padding_px"`
	IndicatorSizePx   float64 `json:"indicator_size_px"`
	MaxDistanceNM     float64 `json:"max_distance_nm"`
	ShowDistanceLabel bool    `json:"show_distance_label"`
	ShowAltitude      bool    `json:"show_altitude"`
	AssistantProvider string  `json:"assistant_provider"`
	AssistantModel    string  `json:"assistant_model"`
	AssistantEnabled  bool    `json:"assistant_enabled"`
}

func (h *ConfigHandler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.appCfg
	resp := ConfigResponse{
		FeedProvider:      cfg.Feed.Provider,
		FeedURL:           cfg.Feed.URL,
		ScreenWidth:       cfg.Display.ScreenWidth,
		ScreenHeight:      cfg.Display.ScreenHeight,
		FovYDeg:           cfg.Display.FovYDeg,
		EdgePaddingPx:     cfg.Display.EdgePaddingPx,
		IndicatorSizePx:   cfg.Display.IndicatorSizePx,
		MaxDistanceNM:     cfg.Display.MaxDistanceNM,
		ShowDistanceLabel: cfg.Display.ShowDistanceLabel,
		ShowAltitude:      cfg.Display.ShowAltitude,
		AssistantProvider: cfg.Assistant.Provider,
		AssistantModel:    cfg.Assistant.Model,
		AssistantEnabled:  cfg.Assistant.Provider != "" && cfg.Assistant.Key != "",
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode config response", "error", err)
	}
}
