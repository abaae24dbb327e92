package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/driveterm/drive/internal/proto"
)

// ErrUnauthorized matches any [APIError] with a 401 status, so callers can
// write errors.Is(err, client.ErrUnauthorized).
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound matches any [APIError] with a 404 status.
var ErrNotFound = errors.New("not found")

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	// Message is the server supplied "error" field, if any.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is implements errors.Is for the status sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// ErrorMessage extracts the text to show the user for err, falling back to
// fallback when the error carries no server message.
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if fallback != "" || err == nil {
		return fallback
	}
	return err.Error()
}

const maxErrorBody = 64 << 10

func checkResponse(rsp *http.Response) error {
	if rsp.StatusCode >= 200 && rsp.StatusCode < 300 {
		return nil
	}
	apiErr := &APIError{StatusCode: rsp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(rsp.Body, maxErrorBody))
	var body proto.Error
	if err := json.Unmarshal(data, &body); err == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	} else if text := strings.TrimSpace(string(data)); text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}
	return apiErr
}
