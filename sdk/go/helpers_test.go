package overseer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// recordedRequest is one request captured by a recorder.
type recordedRequest struct {
	Method      string
	Path        string
	ContentType string
	Body        []byte
}

// recorder is a fake Overseer that captures every POST.
type recorder struct {
	mu       sync.Mutex
	requests []recordedRequest

	status int
	delay  time.Duration
}

func newRecorder(t *testing.T) (*recorder, *httptest.Server) {
	t.Helper()

	rec := &recorder{status: http.StatusOK}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)

		rec.mu.Lock()
		delay, status := rec.delay, rec.status
		rec.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		rec.mu.Lock()
		rec.requests = append(rec.requests, recordedRequest{
			Method:      r.Method,
			Path:        r.URL.Path,
			ContentType: r.Header.Get("Content-Type"),
			Body:        body,
		})
		rec.mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	return rec, server
}

func (r *recorder) setDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delay = d
}

func (r *recorder) setStatus(code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.status = code
}

func (r *recorder) all() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]recordedRequest, len(r.requests))
	copy(out, r.requests)
	return out
}

func (r *recorder) byPath(path string) []recordedRequest {
	var out []recordedRequest
	for _, req := range r.all() {
		if req.Path == path {
			out = append(out, req)
		}
	}
	return out
}

// errorSink collects errors passed to the client's error handler.
type errorSink struct {
	mu   sync.Mutex
	errs []error
}

func (s *errorSink) handle(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

func (s *errorSink) all() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]error, len(s.errs))
	copy(out, s.errs)
	return out
}

func decodeBody(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil {
		t.Fatalf("invalid JSON body %q: %v", body, err)
	}
	return m
}
