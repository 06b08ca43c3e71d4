package wordpress

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func TestNormalizeSiteURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{" example.com ", "https://example.com"},
		{"exa mple.com", "https://example.com"},
		{"https://example.com/", "https://example.com"},
		{"http://blog.example.it", "http://blog.example.it"},
		{"example.com/blog/", "https://example.com/blog"},
	}
	for _, tt := range tests {
		if got := NormalizeSiteURL(tt.in); got != tt.want {
			t.Errorf("NormalizeSiteURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// probeRecorder responds with okPaths and records the order of probes.
type probeRecorder struct {
	mu      sync.Mutex
	order   []string
	okPaths map[string]bool // keyed by RequestURI
}

func (p *probeRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p.mu.Lock()
	p.order = append(p.order, r.URL.RequestURI())
	ok := p.okPaths[r.URL.RequestURI()]
	p.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Write([]byte(`{"namespace":"wp/v2"}`))
}

func TestResolveEndpointFirstCandidateWins(t *testing.T) {
	rec := &probeRecorder{okPaths: map[string]bool{"/wp-json/wp/v2": true}}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	client := NewClient()
	ep, err := client.ResolveEndpoint(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ResolveEndpoint failed: %v", err)
	}
	if ep.BaseURL != srv.URL+"/wp-json/wp/v2" {
		t.Errorf("BaseURL = %q, want %q", ep.BaseURL, srv.URL+"/wp-json/wp/v2")
	}
	if len(rec.order) != 1 {
		t.Errorf("expected probing to short-circuit after 1 request, got %d: %v", len(rec.order), rec.order)
	}
}

func TestResolveEndpointFallsThroughToThirdCandidate(t *testing.T) {
	rec := &probeRecorder{okPaths: map[string]bool{"/?rest_route=/wp/v2": true}}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	client := NewClient()
	ep, err := client.ResolveEndpoint(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("ResolveEndpoint failed: %v", err)
	}
	if ep.BaseURL != srv.URL+"/?rest_route=/wp/v2" {
		t.Errorf("BaseURL = %q, want rest_route candidate", ep.BaseURL)
	}
	want := []string{"/wp-json/wp/v2", "/wp-json", "/?rest_route=/wp/v2"}
	if len(rec.order) != len(want) {
		t.Fatalf("probe order = %v, want %v", rec.order, want)
	}
	for i := range want {
		if rec.order[i] != want[i] {
			t.Errorf("probe[%d] = %q, want %q", i, rec.order[i], want[i])
		}
	}
}

func TestResolveEndpointAllCandidatesFail(t *testing.T) {
	rec := &probeRecorder{okPaths: map[string]bool{}}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	client := NewClient()
	_, err := client.ResolveEndpoint(context.Background(), srv.URL)
	var unreachable *SiteUnreachableError
	if !errors.As(err, &unreachable) {
		t.Fatalf("expected *SiteUnreachableError, got %v", err)
	}
	if len(unreachable.Attempted) != 3 {
		t.Errorf("Attempted = %v, want all 3 candidates", unreachable.Attempted)
	}
	if !strings.Contains(unreachable.Error(), srv.URL) {
		t.Errorf("error should name the normalized site URL: %v", unreachable)
	}
}
