package overseer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/SebastienMelki/overseer/internal/observability"
)

// httpTransport posts JSON payloads to Overseer.
type httpTransport struct {
	client   *http.Client
	endpoint string
}

// newHTTPTransport creates a transport with connect and read timeouts from cfg.
// A non-nil custom client is used as-is apart from metrics instrumentation.
func newHTTPTransport(cfg Config, custom *http.Client, metrics *observability.Metrics) *httpTransport {
	var client http.Client
	if custom != nil {
		client = *custom
	} else {
		base := http.DefaultTransport.(*http.Transport).Clone()
		base.DialContext = (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext
		base.ResponseHeaderTimeout = cfg.ReadTimeout

		client = http.Client{
			Transport: base,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		}
	}
	client.Transport = observability.HTTPClientMetrics(metrics, client.Transport)

	return &httpTransport{
		client:   &client,
		endpoint: cfg.Endpoint,
	}
}

// post encodes payload and sends it to path.
// Returns nil only on a 200 response; the response body is discarded.
func (t *httpTransport) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("overseer: failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("overseer: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("overseer: request failed: %w", err)
	}

	// Read and discard body to enable connection reuse
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Path: path, StatusCode: resp.StatusCode}
	}

	return nil
}
