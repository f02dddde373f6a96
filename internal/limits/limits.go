package limits

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitWindow is one budget reported by the upstream, requests or tokens.
type RateLimitWindow struct {
	Limit     int            `json:"limit"`
	Remaining int            `json:"remaining"`
	ResetsIn  *time.Duration `json:"resets_in,omitempty"`
}

// RateLimitSnapshot holds the request and token windows of one response.
type RateLimitSnapshot struct {
	Requests *RateLimitWindow `json:"requests,omitempty"`
	Tokens   *RateLimitWindow `json:"tokens,omitempty"`
}

// ParseHeaders extracts rate limit information from upstream response headers.
// It returns nil when neither window is present.
func ParseHeaders(headers http.Header) *RateLimitSnapshot {
	if headers == nil {
		return nil
	}
	requests := parseWindow(headers,
		"x-ratelimit-limit-requests",
		"x-ratelimit-remaining-requests",
		"x-ratelimit-reset-requests",
	)
	tokens := parseWindow(headers,
		"x-ratelimit-limit-tokens",
		"x-ratelimit-remaining-tokens",
		"x-ratelimit-reset-tokens",
	)
	if requests == nil && tokens == nil {
		return nil
	}
	return &RateLimitSnapshot{Requests: requests, Tokens: tokens}
}

func parseWindow(headers http.Header, limitKey, remainingKey, resetKey string) *RateLimitWindow {
	remaining, ok := parseCount(headers.Get(remainingKey))
	if !ok {
		return nil
	}
	w := &RateLimitWindow{Remaining: remaining}
	if limit, ok := parseCount(headers.Get(limitKey)); ok {
		w.Limit = limit
	}
	if v := strings.TrimSpace(headers.Get(resetKey)); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			w.ResetsIn = &d
		}
	}
	return w
}

func parseCount(v string) (int, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return int(n), true
}

// UsedPercent reports how much of the window is consumed, 0 when the limit is unknown.
func (w *RateLimitWindow) UsedPercent() float64 {
	if w == nil || w.Limit <= 0 {
		return 0
	}
	return float64(w.Limit-w.Remaining) / float64(w.Limit) * 100
}

// LogAttrs flattens the snapshot into slog key/value pairs.
func (s *RateLimitSnapshot) LogAttrs() []any {
	if s == nil {
		return nil
	}
	var attrs []any
	if s.Requests != nil {
		attrs = append(attrs, "ratelimit_requests_remaining", s.Requests.Remaining)
		if s.Requests.ResetsIn != nil {
			attrs = append(attrs, "ratelimit_requests_reset", s.Requests.ResetsIn.String())
		}
	}
	if s.Tokens != nil {
		attrs = append(attrs, "ratelimit_tokens_remaining", s.Tokens.Remaining)
		if s.Tokens.ResetsIn != nil {
			attrs = append(attrs, "ratelimit_tokens_reset", s.Tokens.ResetsIn.String())
		}
	}
	return attrs
}

// ComputeResetAt calculates when a rate limit window will reset.
func ComputeResetAt(capturedAt time.Time, w *RateLimitWindow) *time.Time {
	if w == nil || w.ResetsIn == nil {
		return nil
	}
	t := capturedAt.Add(*w.ResetsIn)
	return &t
}
