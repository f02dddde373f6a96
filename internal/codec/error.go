package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	openai "github.com/openai/openai-go/v3"
)

// FormatUpstreamError renders an upstream failure as a single human-readable
// line. API errors carry the HTTP status, the upstream message and the request
// id when one was returned; any other error is rendered as its own text.
func FormatUpstreamError(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	msg := formatStatus(apiErr.StatusCode, apiErr.Message, apiErr.RawJSON())
	if apiErr.Response == nil {
		return msg
	}
	if reqID := RequestID(apiErr.Response.Header); reqID != "" {
		return fmt.Sprintf("%s (request_id: %s)", msg, reqID)
	}
	return msg
}

func formatStatus(statusCode int, message, rawBody string) string {
	status := strconv.Itoa(statusCode)
	if text := http.StatusText(statusCode); text != "" {
		status += " " + text
	}
	msg := strings.TrimSpace(message)
	if msg == "" {
		msg = ExtractUpstreamErrorMessage([]byte(rawBody))
	}
	switch {
	case msg != "":
		return "Upstream returned HTTP " + status + ": " + msg
	case strings.TrimSpace(rawBody) != "":
		return "Upstream returned HTTP " + status + " with unparsed body: " + bodyPreview(rawBody, maxPreviewLen)
	default:
		return "Upstream returned HTTP " + status + " with empty error body"
	}
}

const maxPreviewLen = 280

// ExtractUpstreamErrorMessage returns the first human-readable message found
// in a JSON error body, or "" when there is none.
func ExtractUpstreamErrorMessage(rawBody []byte) string {
	var payload any
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return ""
	}
	return messageIn(payload)
}

// messageIn walks the error shapes seen in practice: OpenAI's
// {"error":{"message":...}}, {"detail":...} and {"errors":[...]}.
func messageIn(v any) string {
	switch v := v.(type) {
	case string:
		return strings.TrimSpace(v)
	case []any:
		for _, item := range v {
			if msg := messageIn(item); msg != "" {
				return msg
			}
		}
	case map[string]any:
		for _, key := range []string{"message", "detail", "error_description", "title", "reason"} {
			if s, ok := v[key].(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s)
			}
		}
		for _, key := range []string{"error", "errors"} {
			if msg := messageIn(v[key]); msg != "" {
				return msg
			}
		}
	}
	return ""
}

func bodyPreview(rawBody string, maxLen int) string {
	clean := strings.Join(strings.Fields(rawBody), " ")
	if len(clean) <= maxLen {
		return clean
	}
	return clean[:maxLen] + "..."
}

// RequestID returns the upstream request id from response headers, if any.
func RequestID(headers http.Header) string {
	for _, key := range []string{"x-request-id", "openai-request-id", "cf-ray"} {
		if v := strings.TrimSpace(headers.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
