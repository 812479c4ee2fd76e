package observability

import (
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the instruments recorded by the telemetry client.
// Instruments are created once and shared by the client and its transport.
type Metrics struct {
	// Dispatch metrics
	EventsEnqueued otelmetric.Int64Counter
	EventsDropped  otelmetric.Int64Counter
	SendsFailed    otelmetric.Int64Counter

	// Outgoing HTTP metrics
	HTTPClientDuration otelmetric.Float64Histogram
	HTTPClientTotal    otelmetric.Int64Counter
	HTTPClientErrors   otelmetric.Int64Counter
}

// NewMetrics creates all instruments from the given Meter.
func NewMetrics(meter otelmetric.Meter) (*Metrics, error) {
	var m Metrics
	var err error

	m.EventsEnqueued, err = meter.Int64Counter(
		"telemetry.events.enqueued",
		otelmetric.WithDescription("Payloads accepted onto the send queue"),
	)
	if err != nil {
		return nil, err
	}

	m.EventsDropped, err = meter.Int64Counter(
		"telemetry.events.dropped",
		otelmetric.WithDescription("Payloads dropped before sending (no session or queue full)"),
	)
	if err != nil {
		return nil, err
	}

	m.SendsFailed, err = meter.Int64Counter(
		"telemetry.sends.failed",
		otelmetric.WithDescription("Sends that failed (network, timeout, encoding or non-200 status)"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPClientDuration, err = meter.Float64Histogram(
		"http.client.request.duration",
		otelmetric.WithUnit("ms"),
		otelmetric.WithDescription("Outgoing HTTP request duration in milliseconds"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPClientTotal, err = meter.Int64Counter(
		"http.client.request.total",
		otelmetric.WithDescription("Total outgoing HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	m.HTTPClientErrors, err = meter.Int64Counter(
		"http.client.request.errors",
		otelmetric.WithDescription("Outgoing HTTP requests that failed or returned status >= 400"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// NoopMetrics returns instruments that record nothing.
func NoopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("noop"))
	return m
}
