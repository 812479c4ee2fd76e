// Package observability provides OpenTelemetry metrics for the Overseer
// telemetry client, exported in Prometheus format.
package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// Resource attribute keys describing the reporting client.
const (
	attrServiceName    = "service.name"
	attrServiceVersion = "service.version"
	attrSDKName        = "telemetry.sdk.client"
)

// clientResource describes a telemetry client process.
func clientResource(serviceName, sdkVersion string) *resource.Resource {
	return resource.NewSchemaless(
		attribute.String(attrServiceName, serviceName),
		attribute.String(attrServiceVersion, sdkVersion),
		attribute.String(attrSDKName, "overseer-go"),
	)
}

// Module owns the MeterProvider backing a Prometheus exporter.
type Module struct {
	provider *sdkmetric.MeterProvider
	meter    otelmetric.Meter
}

// New configures a Prometheus exporter, installs a MeterProvider reading from
// it as the global OTel provider, and scopes a Meter to serviceName.
// sdkVersion is reported as the service.version resource attribute and as the
// meter's instrumentation version.
func New(serviceName, sdkVersion string) (*Module, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
		sdkmetric.WithResource(clientResource(serviceName, sdkVersion)),
	)
	otel.SetMeterProvider(provider)

	return &Module{
		provider: provider,
		meter: provider.Meter(serviceName,
			otelmetric.WithInstrumentationVersion(sdkVersion),
		),
	}, nil
}

// Meter returns the Meter used to create instruments.
func (m *Module) Meter() otelmetric.Meter {
	return m.meter
}

// MetricsHandler serves the Prometheus exposition format. Mount at "/metrics".
func (m *Module) MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// Shutdown flushes and stops the MeterProvider.
func (m *Module) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
