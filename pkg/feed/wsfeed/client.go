// Package wsfeed implements feed.Source over a WebSocket connection,
// reconnecting with exponential backoff when the link drops.
package wsfeed

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"radarhud/pkg/feed"
	"radarhud/pkg/tracker"
)

// Client is a reconnecting WebSocket feed client.
type Client struct {
	url       string
	baseDelay time.Duration
	maxDelay  time.Duration

	tracker *tracker.Tracker
	updates chan feed.Batch

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates a client for the given ws:// or wss:// URL.
func New(url string, baseDelay, maxDelay time.Duration, tr *tracker.Tracker) *Client {
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if maxDelay < baseDelay {
		maxDelay = 30 * time.Second
	}
	return &Client{
		url:       url,
		baseDelay: baseDelay,
		maxDelay:  maxDelay,
		tracker:   tr,
		updates:   make(chan feed.Batch, 16),
		done:      make(chan struct{}),
	}
}

// Start launches the read loop.
func (c *Client) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil
	}
	c.started = true

	ctx, c.cancel = context.WithCancel(ctx)
	go c.run(ctx)
	return nil
}

// Updates returns the batch channel.
func (c *Client) Updates() <-chan feed.Batch {
	return c.updates
}

// Close stops the client and closes the updates channel.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return nil
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		<-c.done
	}
	return nil
}

func (c *Client) run(ctx context.Context) {
	defer close(c.done)
	defer close(c.updates)

	failures := 0
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			failures++
			delay := c.backoffDelay(failures)
			slog.Warn("Feed connect failed", "url", c.url, "error", err, "retry_in", delay)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			continue
		}

		if failures > 0 && c.tracker != nil {
			c.tracker.TrackFeedReconnect()
		}
		failures = 0
		slog.Info("Feed connected", "url", c.url)

		c.readLoop(ctx, conn)
		conn.Close()
	}
}

// readLoop consumes messages until the connection breaks or ctx ends.
func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn) {
	// Unblock ReadMessage on cancellation. The watcher must not outlive the
	// connection or one goroutine would pile up per reconnect.
	readDone := make(chan struct{})
	defer close(readDone)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-readDone:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				slog.Warn("Feed read failed, reconnecting", "error", err)
			}
			return
		}

		var batch feed.Batch
		if err := json.Unmarshal(data, &batch); err != nil {
			// A malformed message is the sender's bug; drop it and move on.
			slog.Debug("Dropping malformed feed message", "error", err)
			if c.tracker != nil {
				c.tracker.TrackBatchDropped()
			}
			continue
		}

		select {
		case c.updates <- batch:
		case <-ctx.Done():
			return
		default:
			// Consumer is behind; newer data supersedes older anyway.
			if c.tracker != nil {
				c.tracker.TrackBatchDropped()
			}
		}
	}
}

// backoffDelay returns exponential delay with 10% jitter.
func (c *Client) backoffDelay(failures int) time.Duration {
	multiplier := math.Pow(2, float64(failures-1))
	delay := time.Duration(float64(c.baseDelay) * multiplier)
	if delay > c.maxDelay {
		delay = c.maxDelay
	}
	jitter := time.Duration(rand.Float64() * 0.1 * float64(delay))
	return delay + jitter
}
