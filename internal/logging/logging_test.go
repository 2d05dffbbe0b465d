package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSetupDevMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	SetupWriter(&buf, true)

	slog.Debug("test debug")
	slog.Info("test info")

	output := buf.String()
	if !bytes.Contains([]byte(output), []byte("test debug")) {
		t.Error("expected debug message visible in dev mode")
	}
	if !bytes.Contains([]byte(output), []byte("test info")) {
		t.Error("expected info message visible in dev mode")
	}
}

func TestSetupProdMode(t *testing.T) {
	old := slog.Default()
	defer slog.SetDefault(old)

	var buf bytes.Buffer
	SetupWriter(&buf, false)

	slog.Debug("hidden")
	slog.Info("prod test")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) {
		t.Error("expected debug message suppressed in prod mode")
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"prod test"`)) {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

// captureLogs installs a debug-level text logger writing to the returned buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	old := slog.Default()
	t.Cleanup(func() { slog.SetDefault(old) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	return &buf
}

func TestTransportLogsRequest(t *testing.T) {
	buf := captureLogs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil)}
	resp, err := client.Post(srv.URL+"/delete_comment/42", "", nil)
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("POST")) {
		t.Error("expected method in log")
	}
	if !bytes.Contains(buf.Bytes(), []byte("/delete_comment/42")) {
		t.Error("expected path in log")
	}
}

func TestTransportSkipsStatic(t *testing.T) {
	buf := captureLogs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil)}
	resp, err := client.Get(srv.URL + "/static/js/JavaScript.js")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if buf.Len() > 0 {
		t.Error("expected no log for static path")
	}
}

func TestTransportCapturesStatus(t *testing.T) {
	buf := captureLogs(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil)}
	resp, err := client.Get(srv.URL + "/missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if err := resp.Body.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	if !bytes.Contains(buf.Bytes(), []byte("404")) {
		t.Error("expected 404 status in log")
	}
	if !bytes.Contains(buf.Bytes(), []byte("level=WARN")) {
		t.Error("expected warn level for 4xx")
	}
}

type failingTransport struct{}

func (failingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestTransportLogsFailure(t *testing.T) {
	buf := captureLogs(t)

	client := &http.Client{Transport: NewTransport(failingTransport{})}
	_, err := client.Get("http://example.invalid/profile")
	if err == nil {
		t.Fatal("expected error")
	}

	if !bytes.Contains(buf.Bytes(), []byte("request failed")) {
		t.Error("expected failure in log")
	}
	if !bytes.Contains(buf.Bytes(), []byte("connection refused")) {
		t.Error("expected error text in log")
	}
}
