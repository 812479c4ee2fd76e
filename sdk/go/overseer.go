package overseer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"

	"github.com/SebastienMelki/overseer/internal/observability"
	"github.com/SebastienMelki/overseer/internal/session"
)

// Client reports telemetry for one session at a time.
//
// Sends never block the caller and never return errors: failures are logged,
// counted and passed to the optional error handler. All methods are safe for
// concurrent use.
type Client struct {
	config       Config
	transport    *httpTransport
	tracker      *session.Tracker
	logger       *slog.Logger
	metrics      *observability.Metrics
	errorHandler func(error)

	mu     sync.RWMutex
	worker *worker

	dropWarn rate.Sometimes
}

// New creates a client. No request is made until Initialize.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	metrics := observability.NoopMetrics()
	if o.meter != nil {
		m, err := observability.NewMetrics(o.meter)
		if err != nil {
			return nil, fmt.Errorf("overseer: failed to create metrics: %w", err)
		}
		metrics = m
	}

	return &Client{
		config:       cfg,
		transport:    newHTTPTransport(cfg, o.httpClient, metrics),
		tracker:      session.NewTracker(),
		logger:       o.logger.With("component", "overseer-telemetry"),
		metrics:      metrics,
		errorHandler: o.errorHandler,
		dropWarn:     rate.Sometimes{First: 1, Interval: 10 * time.Second},
	}, nil
}

// Initialize starts a session for playerID, starts the background worker and
// queues the session-start notification. It is a no-op if a session is
// already active.
func (c *Client) Initialize(playerID string, opts ...SessionOption) {
	var so sessionOptions
	for _, opt := range opts {
		opt(&so)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	s, started := c.tracker.Start(playerID, so.startingPlaytime)
	if !started {
		c.logger.Info("telemetry already initialized", "session_id", s.ID)
		return
	}

	c.worker = startWorker(c.config.QueueSize, c.deliver)

	payload := sessionStartPayload{
		SessionID: s.ID,
		UserID:    s.PlayerID,
		OSInfo:    osInfo(),
	}
	if s.StartingPlaytime > 0 {
		secs := int64(s.StartingPlaytime.Seconds())
		payload.StartingTotalPlaytime = &secs
	}
	c.enqueueLocked(job{path: PathSessionStart, payload: payload})

	c.logger.Info("telemetry session started",
		"session_id", s.ID,
		"player_id", s.PlayerID,
		"endpoint", c.config.Endpoint,
	)
}

// IsActive reports whether a session is in progress.
func (c *Client) IsActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.worker != nil
}

// SessionID returns the active session id, or empty string if none.
func (c *Client) SessionID() string {
	s, _ := c.tracker.Current()
	return s.ID
}

// PlayerID returns the active session's player id, or empty string if none.
func (c *Client) PlayerID() string {
	s, _ := c.tracker.Current()
	return s.PlayerID
}

// SendEvent queues a gameplay event. Without an active session the event is
// dropped with a warning and no request is made.
func (c *Client) SendEvent(eventType EventType, x, y float64, meta map[string]any) {
	if meta == nil {
		meta = map[string]any{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.tracker.Current()
	if c.worker == nil || !ok {
		c.notInitialized(string(eventType))
		return
	}

	c.enqueueLocked(job{
		path: c.config.EventPath,
		payload: eventPayload{
			SessionID: s.ID,
			EventType: eventType,
			X:         Coord(x),
			Y:         Coord(y),
			Meta:      meta,
		},
	})
}

// Shutdown ends the session. The session-end notification is sent on the
// calling goroutine and completes (or times out) before the queued payloads
// are drained and the worker stops. It is a no-op without an active session.
func (c *Client) Shutdown() {
	c.mu.Lock()
	w := c.worker
	c.worker = nil
	s, playtime, ok := c.tracker.End()
	c.mu.Unlock()

	if w == nil || !ok {
		return
	}

	payload := sessionEndPayload{
		SessionID:       s.ID,
		PlaytimeSeconds: int64(playtime.Seconds()),
	}
	if s.StartingPlaytime > 0 {
		total := int64((s.StartingPlaytime + playtime).Seconds())
		payload.TotalPlaytimeSeconds = &total
	}
	c.deliver(job{path: PathSessionEnd, payload: payload})

	w.stop()

	c.logger.Info("telemetry session ended",
		"session_id", s.ID,
		"playtime_seconds", payload.PlaytimeSeconds,
	)
}

// enqueueLocked hands j to the worker. Must be called with mu held and an
// active worker.
func (c *Client) enqueueLocked(j job) {
	ctx := context.Background()
	attrs := otelmetric.WithAttributes(attribute.String("path", j.path))

	if !c.worker.offer(j) {
		c.metrics.EventsDropped.Add(ctx, 1, attrs)
		c.dropWarn.Do(func() {
			c.logger.Warn("telemetry queue full, dropping payload",
				"path", j.path,
				"queue_size", c.config.QueueSize,
			)
		})
		c.reportError(fmt.Errorf("%w: %s", ErrQueueFull, j.path))
		return
	}

	c.metrics.EventsEnqueued.Add(ctx, 1, attrs)
}

// deliver sends j and swallows any failure.
func (c *Client) deliver(j job) {
	err := c.transport.post(context.Background(), j.path, j.payload)
	if err == nil {
		return
	}

	c.metrics.SendsFailed.Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("path", j.path)))

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		c.logger.Warn("overseer rejected telemetry",
			"path", j.path,
			"status", statusErr.StatusCode,
		)
	} else {
		c.logger.Error("telemetry failed to send",
			"path", j.path,
			"error", err,
		)
	}

	c.reportError(err)
}

func (c *Client) notInitialized(what string) {
	c.metrics.EventsDropped.Add(context.Background(), 1,
		otelmetric.WithAttributes(attribute.String("path", "none")))
	c.logger.Warn("telemetry not initialized, dropping", "payload", what)
	c.reportError(ErrNotInitialized)
}

func (c *Client) reportError(err error) {
	if c.errorHandler != nil {
		c.errorHandler(err)
	}
}
