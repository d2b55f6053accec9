package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"radarhud/pkg/core"
	"radarhud/pkg/model"
	"radarhud/pkg/track"
)

// TargetsHandler serves the decorated target picture and per-target history.
type TargetsHandler struct {
	engine   *core.Engine
	recorder *track.Recorder
}

func NewTargetsHandler(e *core.Engine, r *track.Recorder) *TargetsHandler {
	return &TargetsHandler{engine: e, recorder: r}
}

type TargetsResponse struct {
	Ownship model.Ownship  `json:"ownship"`
	Targets []model.Target `json:"targets"`
}

func (h *TargetsHandler) HandleTargets(w http.ResponseWriter, r *http.Request) {
	own, targets := h.engine.Picture()
	resp := TargetsResponse{Ownship: own, Targets: targets}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Failed to encode targets response", "error", err)
	}
}

func (h *TargetsHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if h.recorder == nil {
		http.Error(w, "history disabled", http.StatusNotFound)
		return
	}
	id := r.PathValue("id")
	if id == "" {
		http.Error(w, "missing target id", http.StatusBadRequest)
		return
	}

	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	hist, err := h.recorder.History(id, limit)
	if err != nil {
		slog.Error("history query failed", "target", id, "error", err)
		http.Error(w, "history query failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(hist); err != nil {
		slog.Error("Failed to encode history response", "error", err)
	}
}
