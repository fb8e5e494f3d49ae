package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Belphemur/AkwamProvider/internal/config"
)

// fakeAkwam is an httptest server routing paths to canned handlers and
// counting requests per path
type fakeAkwam struct {
	*httptest.Server
	mu     sync.Mutex
	routes map[string]http.HandlerFunc
	hits   map[string]int
	agents []string
}

func newFakeAkwam(t *testing.T) *fakeAkwam {
	t.Helper()
	f := &fakeAkwam{routes: map[string]http.HandlerFunc{}, hits: map[string]int{}}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.URL.Path]++
		f.agents = append(f.agents, r.Header.Get("User-Agent"))
		h, ok := f.routes[r.URL.Path]
		f.mu.Unlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func (f *fakeAkwam) handle(path string, h http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes[path] = h
}

func (f *fakeAkwam) html(path, body string) {
	f.handle(path, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(body))
	})
}

func (f *fakeAkwam) hitCount(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[path]
}

func testConfig(mainURL string) *config.Config {
	cfg := &config.Config{
		MainURL:       mainURL,
		ClientTimeout: "10s",
		UserAgent:     "akwam-test-agent",
	}
	cfg.Cache.Provider = "memory"
	cfg.Cache.Size = 100
	cfg.Cache.TTL = "1m"
	cfg.Retry.MaxAttempts = 2
	cfg.Retry.Delay = "1ms"
	cfg.Retry.MaxDelay = "2ms"
	cfg.Links.Concurrency = 4
	return cfg
}

func newTestClient(t *testing.T, mainURL string) *Client {
	t.Helper()
	c := NewClient(testConfig(mainURL))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// fakeRenderer stands in for Chrome
type fakeRenderer struct {
	mu    sync.Mutex
	pages map[string]string
	err      error
	closeErr error
	calls    []string
}

func (r *fakeRenderer) Render(_ context.Context, url string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, url)
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.pages[url]), nil
}

func (r *fakeRenderer) Close() error { return r.closeErr }
