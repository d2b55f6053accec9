// Command mockfeed serves simulated radar batches over WebSocket so the
// daemon's websocket feed can be exercised without a live data link.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"radarhud/pkg/feed/simfeed"
)

var (
	addr     = flag.String("addr", "localhost:2451", "Listen address")
	interval = flag.Duration("interval", 500*time.Millisecond, "Batch interval")
	traffic  = flag.Int("traffic", 8, "Number of simulated traffic targets")
	lat      = flag.Float64("lat", 51.6845, "Center latitude")
	lon      = flag.Float64("lon", 14.4234, "Center longitude")
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func main() {
	flag.Parse()

	sim := simfeed.New(simfeed.Config{
		CenterLat:    *lat,
		CenterLon:    *lon,
		TrafficCount: *traffic,
		Interval:     *interval,
		Weather:      true,
	})

	http.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("upgrade failed", "error", err)
			return
		}
		defer conn.Close()
		slog.Info("feed client connected", "remote", conn.RemoteAddr())

		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteJSON(sim.Generate(time.Now())); err != nil {
				slog.Info("feed client disconnected", "remote", conn.RemoteAddr())
				return
			}
		}
	})

	slog.Info("mockfeed listening", "addr", *addr, "traffic", *traffic)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		fmt.Fprintf(os.Stderr, "mockfeed failed: %v\n", err)
		os.Exit(1)
	}
}
