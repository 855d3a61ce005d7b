package sink

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/couchcryptid/weather-panel/internal/domain"
)

// Latest holds the most recent frame and serves it over HTTP.
type Latest struct {
	mu    sync.RWMutex
	frame domain.Frame
	ok    bool
}

func NewLatest() *Latest { return &Latest{} }

func (l *Latest) Name() string { return "latest" }

// Publish replaces the held frame.
func (l *Latest) Publish(_ context.Context, f domain.Frame) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.frame = f
	l.ok = true
	return nil
}

// Frame returns the held frame, if any.
func (l *Latest) Frame() (domain.Frame, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.frame, l.ok
}

// ServeHTTP writes the held PNG. Devices poll with If-None-Match and get 304
// until a new frame is rendered.
func (l *Latest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, ok := l.Frame()
	if !ok {
		http.Error(w, "no panel rendered yet", http.StatusServiceUnavailable)
		return
	}

	etag := strconv.Quote(f.ID)
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", f.RenderedAt.UTC().Format(http.TimeFormat))
	w.Header().Set("Cache-Control", "no-cache")
	if f.Failed() {
		w.Header().Set("X-Panel-Status", "error")
	} else {
		w.Header().Set("X-Panel-Status", "ok")
	}

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(f.PNG)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(f.PNG)
	}
}
