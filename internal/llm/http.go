package llm

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// LoggingTransport logs every request and response passing through Base.
// Bodies are never read, so streaming and retries by the SDK are unaffected.
type LoggingTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewHTTPClient returns an http.Client with the given timeout whose transport logs traffic.
func NewHTTPClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: &LoggingTransport{Logger: logger},
	}
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	reqID := uuid.New().String()
	start := time.Now()
	logger.Debug("llm.http.request",
		"req_id", reqID,
		"method", req.Method,
		"url", req.URL.Redacted(),
		"content_length", req.ContentLength,
	)

	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Error("llm.http.send_error", "req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, err
	}

	attrs := []any{
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", resp.ContentLength,
		"elapsed_ms", time.Since(start).Milliseconds(),
	}
	if resp.StatusCode/100 != 2 {
		logger.Warn("llm.http.response", attrs...)
	} else {
		logger.Debug("llm.http.response", attrs...)
	}
	return resp, nil
}
