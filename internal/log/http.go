package log

import (
	"log/slog"
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns an HTTP client that logs every round trip at debug
// level. Authorization headers are masked. headerTimeout bounds the wait for
// response headers only, so long transfers are not cut off while the body
// is still flowing.
func NewHTTPClient(headerTimeout time.Duration) *http.Client {
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.DialContext = (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext
	tr.ResponseHeaderTimeout = headerTimeout
	return &http.Client{
		Transport: &HTTPRoundTripLogger{Transport: tr},
	}
}

// HTTPRoundTripLogger is an http.RoundTripper that logs requests and
// responses.
type HTTPRoundTripLogger struct {
	Transport http.RoundTripper
}

func (h *HTTPRoundTripLogger) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	attrs := []any{
		"method", req.Method,
		"url", req.URL.Redacted(),
	}
	if auth := req.Header.Get("Authorization"); auth != "" {
		attrs = append(attrs, "authorization", MaskToken(auth))
	}
	if id := req.Header.Get("X-Request-ID"); id != "" {
		attrs = append(attrs, "request_id", id)
	}

	transport := h.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	rsp, err := transport.RoundTrip(req)
	attrs = append(attrs, "duration", time.Since(start))
	if err != nil {
		slog.Debug("HTTP request failed", append(attrs, "error", err)...)
		return rsp, err
	}

	slog.Debug("HTTP request", append(attrs,
		"status", rsp.StatusCode,
		"content_length", rsp.ContentLength,
	)...)
	return rsp, nil
}
