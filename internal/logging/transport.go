package logging

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Transport is an http.RoundTripper that logs each outgoing request.
type Transport struct {
	// Next is the underlying transport. nil means http.DefaultTransport.
	Next http.RoundTripper
}

// NewTransport wraps next with request logging.
func NewTransport(next http.RoundTripper) *Transport {
	return &Transport{Next: next}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	// Skip noisy paths
	if strings.HasPrefix(req.URL.Path, "/static/") {
		return next.RoundTrip(req)
	}

	start := time.Now()
	resp, err := next.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		slog.Log(req.Context(), slog.LevelError, "request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", duration.String(),
			"error", err,
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 500 {
		level = slog.LevelError
	} else if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}

	slog.Log(req.Context(), level, "request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", duration.String(),
	)

	return resp, nil
}

// CloseIdleConnections forwards to the underlying transport when it
// supports it.
func (t *Transport) CloseIdleConnections() {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	if c, ok := next.(interface{ CloseIdleConnections() }); ok {
		c.CloseIdleConnections()
	}
}
