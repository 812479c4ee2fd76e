package overseer

import (
	"log/slog"
	"net/http"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	meter        otelmetric.Meter
	httpClient   *http.Client
	errorHandler func(error)
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMeter records client metrics on meter. Defaults to a no-op meter.
func WithMeter(meter otelmetric.Meter) Option {
	return func(o *options) { o.meter = meter }
}

// WithHTTPClient replaces the HTTP client. Its own timeouts apply instead of
// Config.ConnectTimeout and Config.ReadTimeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) { o.httpClient = client }
}

// WithErrorHandler registers fn to observe every dropped or failed send.
// fn runs on the goroutine that hit the failure. It must not block or call
// back into the Client.
func WithErrorHandler(fn func(error)) Option {
	return func(o *options) { o.errorHandler = fn }
}

// SessionOption configures a session started by Initialize.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	startingPlaytime time.Duration
}

// WithStartingPlaytime reports the player's lifetime playtime before this
// session. Overseer keeps the larger of this and its own record.
func WithStartingPlaytime(d time.Duration) SessionOption {
	return func(o *sessionOptions) { o.startingPlaytime = d }
}
