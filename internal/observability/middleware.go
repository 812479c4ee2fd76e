package observability

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// HTTPClientMetrics wraps an http.RoundTripper and records duration, total
// and error counts for each outgoing request. Transport failures are tagged
// with status "error". A nil next uses http.DefaultTransport.
//
// Usage:
//
//	client.Transport = observability.HTTPClientMetrics(metrics, client.Transport)
func HTTPClientMetrics(metrics *Metrics, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(r *http.Request) (*http.Response, error) {
		start := time.Now()

		resp, err := next.RoundTrip(r)

		duration := float64(time.Since(start).Milliseconds())
		status := "error"
		if err == nil {
			status = strconv.Itoa(resp.StatusCode)
		}

		attrs := otelmetric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("path", r.URL.Path),
			attribute.String("status", status),
		)

		metrics.HTTPClientDuration.Record(r.Context(), duration, attrs)
		metrics.HTTPClientTotal.Add(r.Context(), 1, attrs)

		if err != nil || resp.StatusCode >= 400 {
			metrics.HTTPClientErrors.Add(r.Context(), 1, attrs)
		}

		return resp, err
	})
}
