// Package api exposes the HTTP and WebSocket surface of the daemon.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"radarhud/pkg/version"
)

// NewServer creates and configures the HTTP server.
// It accepts handlers for all API endpoints and a shutdownFunc for graceful shutdown.
func NewServer(addr string, frames *FrameHandler, status *StatusHandler, targets *TargetsHandler, cfgH *ConfigHandler, cmd *CommandHandler, shutdown func()) *http.Server {
	mux := http.NewServeMux()

	// 1. Health Endpoint
	mux.HandleFunc("GET /health", handleHealth)

	// 2. Version Endpoint
	mux.HandleFunc("GET /api/version", handleVersion)

	// 3. Frame Endpoints
	mux.HandleFunc("GET /api/frame", frames.HandleFrame)
	mux.HandleFunc("GET /ws/frames", frames.HandleWS)

	// 4. Picture Endpoints
	mux.HandleFunc("GET /api/targets", targets.HandleTargets)
	mux.HandleFunc("GET /api/targets/{id}/history", targets.HandleHistory)

	// 5. Status Endpoint
	mux.Handle("GET /api/status", status)

	// 6. Config Endpoint
	mux.HandleFunc("GET /api/config", cfgH.HandleConfig)

	// 7. Command Endpoints
	if cmd != nil {
		mux.HandleFunc("GET /api/commands", cmd.HandleList)
		mux.HandleFunc("POST /api/command", cmd.HandleDispatch)
		mux.HandleFunc("POST /api/advisory", cmd.HandleAdvisory)
	}

	// 8. Shutdown Endpoint
	mux.HandleFunc("POST /api/shutdown", func(w http.ResponseWriter, r *http.Request) {
		slog.Info("Graceful shutdown initiated via API")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("Shutting down...")); err != nil {
			slog.Error("Failed to write shutdown response", "error", err)
		}
		// Call shutdown in a goroutine to allow response to flush
		go func() {
			time.Sleep(100 * time.Millisecond)
			shutdown()
		}()
	})

	return &http.Server{
		Addr:        addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		// WriteTimeout stays 0: the frame WebSocket is long-lived.
		IdleTimeout: 60 * time.Second,
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		slog.Error("Failed to write health response", "error", err)
	}
}

func handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := fmt.Fprintf(w, `{"version": "%s"}`, version.Version); err != nil {
		slog.Error("Failed to write version response", "error", err)
	}
}
