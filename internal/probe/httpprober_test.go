package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/sitewatch/internal/domain"
)

func TestHTTPProber_StatusOK(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("ok"))
	}))
	defer s.Close()

	out := NewHTTPProber().Probe(context.Background(), s.URL, 2*time.Second)
	assert.Equal(t, domain.Up, out.Verdict())
	assert.Equal(t, CauseNone, out.Cause)
	assert.Equal(t, 200, out.StatusCode)
	assert.NoError(t, out.Err)
	assert.GreaterOrEqual(t, out.Latency, time.Duration(0))
}

// Any HTTP response means the target is reachable.
func TestHTTPProber_Status500IsUp(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", 500)
	}))
	defer s.Close()

	out := NewHTTPProber().Probe(context.Background(), s.URL, 2*time.Second)
	assert.Equal(t, domain.Up, out.Verdict())
	assert.Equal(t, 500, out.StatusCode)
}

func TestHTTPProber_ClosedEndpointIsDown(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	// fresh connection per probe, so the second one really dials the closed port
	p := &HTTPProber{Client: &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}}

	open := p.Probe(context.Background(), s.URL, time.Second)
	require.Equal(t, domain.Up, open.Verdict())

	s.Close()
	closed := p.Probe(context.Background(), s.URL, time.Second)
	assert.Equal(t, domain.Down, closed.Verdict())
	assert.Equal(t, CauseRefused, closed.Cause)
	assert.Equal(t, 0, closed.StatusCode)
	assert.Error(t, closed.Err)
}

func TestHTTPProber_TimeoutIsDown(t *testing.T) {
	// Handler holds the request until the client gives up.
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer s.Close()

	out := NewHTTPProber().Probe(context.Background(), s.URL, 50*time.Millisecond)
	assert.Equal(t, domain.Down, out.Verdict())
	assert.Equal(t, CauseTimeout, out.Cause)
	assert.Equal(t, 0, out.StatusCode)
}

// Headers settle the verdict; a body that never finishes must not hold the
// probe until the timeout.
func TestHTTPProber_StalledBodyReturnsOnHeaders(t *testing.T) {
	release := make(chan struct{})
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		w.(http.Flusher).Flush()
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer s.Close()
	defer close(release)

	start := time.Now()
	out := NewHTTPProber().Probe(context.Background(), s.URL, 3*time.Second)
	assert.Equal(t, domain.Up, out.Verdict())
	assert.Equal(t, 200, out.StatusCode)
	assert.Less(t, time.Since(start), time.Second)
}

func TestHTTPProber_InvalidRequest(t *testing.T) {
	out := NewHTTPProber().Probe(context.Background(), "://nope", time.Second)
	assert.Equal(t, domain.Down, out.Verdict())
	assert.Equal(t, CauseInvalidRequest, out.Cause)
}

func TestHTTPProber_ZeroTimeoutUsesDefault(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer s.Close()

	out := NewHTTPProber().Probe(context.Background(), s.URL, 0)
	assert.Equal(t, domain.Up, out.Verdict())
}
