package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"radarhud/pkg/assistant"
	"radarhud/pkg/core"
	"radarhud/pkg/tracker"
	"radarhud/pkg/voice"
)

// CommandHandler dispatches voice-command transcripts and serves on-demand
// traffic advisories.
type CommandHandler struct {
	registry *voice.Registry
	advisor  *assistant.Advisor
	engine   *core.Engine
	trk      *tracker.Tracker
}

func NewCommandHandler(reg *voice.Registry, adv *assistant.Advisor, e *core.Engine, trk *tracker.Tracker) *CommandHandler {
	return &CommandHandler{registry: reg, advisor: adv, engine: e, trk: trk}
}

type CommandRequest struct {
	Transcript string `json:"transcript"`
}

type CommandResponse struct {
	Response string `json:"response"`
}

func (h *CommandHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h.registry.Commands()); err != nil {
		slog.Error("Failed to encode commands response", "error", err)
	}
}

func (h *CommandHandler) HandleDispatch(w http.ResponseWriter, r *http.Request) {
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Transcript == "" {
		http.Error(w, "missing transcript", http.StatusBadRequest)
		return
	}

	result, err := h.registry.Dispatch(r.Context(), req.Transcript)
	if err != nil {
		slog.Debug("command dispatch failed", "transcript", req.Transcript, "error", err)
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	h.trk.TrackCommand()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CommandResponse{Response: result}); err != nil {
		slog.Error("Failed to encode command response", "error", err)
	}
}

func (h *CommandHandler) HandleAdvisory(w http.ResponseWriter, r *http.Request) {
	if h.advisor == nil || !h.advisor.Enabled() {
		http.Error(w, "assistant not configured", http.StatusServiceUnavailable)
		return
	}

	own, targets := h.engine.Picture()
	text, err := h.advisor.Describe(r.Context(), own, targets)
	if err != nil {
		slog.Warn("advisory failed", "error", err)
		http.Error(w, "advisory failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(CommandResponse{Response: text}); err != nil {
		slog.Error("Failed to encode advisory response", "error", err)
	}
}
