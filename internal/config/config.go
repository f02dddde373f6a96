package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/n0madic/gpt5-mcp/internal/reasoning"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

// Environment keys read by Resolve.
const (
	EnvAPIKey              = "OPENAI_API_KEY"
	EnvBaseURL             = "OPENAI_BASE_URL"
	EnvOrganization        = "OPENAI_ORGANIZATION"
	EnvProject             = "OPENAI_PROJECT"
	EnvModel               = "OPENAI_MODEL"
	EnvMaxRetries          = "OPENAI_MAX_RETRIES"
	EnvTimeoutMs           = "OPENAI_TIMEOUT_MS"
	EnvReasoningEffort     = "REASONING_EFFORT"
	EnvDefaultVerbosity    = "DEFAULT_VERBOSITY"
	EnvWebSearchEnabled    = "WEB_SEARCH_DEFAULT_ENABLED"
	EnvWebSearchContext    = "WEB_SEARCH_CONTEXT_SIZE"
	EnvImageModel          = "IMAGE_MODEL"
	EnvImageSize           = "IMAGE_SIZE"
	EnvImageQuality        = "IMAGE_QUALITY"
	EnvImageResponseFormat = "IMAGE_RESPONSE_FORMAT"
	EnvVerbose             = "GPT5_MCP_VERBOSE"
)

// Defaults applied when a key is absent, empty or unparsable.
const (
	DefaultModel      = "gpt-5"
	DefaultMaxRetries = 3
	DefaultTimeoutMs  = 60000
)

// Config holds the process-wide settings. It is built once by Resolve and
// never mutated afterwards.
type Config struct {
	APIKey       string `json:"api_key,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	Organization string `json:"organization,omitempty"`
	Project      string `json:"project,omitempty"`
	Model        string `json:"model"`
	MaxRetries   int    `json:"max_retries"`
	TimeoutMs    int    `json:"timeout_ms"`

	ReasoningEffort         types.ReasoningEffort   `json:"reasoning_effort"`
	DefaultVerbosity        types.Verbosity         `json:"default_verbosity"`
	WebSearchDefaultEnabled bool                    `json:"web_search_default_enabled"`
	WebSearchContextSize    types.SearchContextSize `json:"web_search_context_size"`

	ImageModel          types.ImageModel          `json:"image_model"`
	ImageSize           types.ImageSize           `json:"image_size"`
	ImageQuality        types.ImageQuality        `json:"image_quality"`
	ImageResponseFormat types.ImageResponseFormat `json:"image_response_format"`

	Verbose bool `json:"verbose"`
}

// Resolve merges a key/value environment into a Config. Absent or empty keys
// take their defaults, enumerated values are normalized and anything that does
// not parse falls back to the default. It never fails.
func Resolve(env map[string]string) Config {
	get := func(key string) string {
		return strings.TrimSpace(env[key])
	}
	return Config{
		APIKey:       get(EnvAPIKey),
		BaseURL:      get(EnvBaseURL),
		Organization: get(EnvOrganization),
		Project:      get(EnvProject),
		Model:        orDefault(get(EnvModel), DefaultModel),
		MaxRetries:   toCount(get(EnvMaxRetries), DefaultMaxRetries),
		TimeoutMs:    toCount(get(EnvTimeoutMs), DefaultTimeoutMs),

		ReasoningEffort:         reasoning.DefaultEffort(get(EnvReasoningEffort)),
		DefaultVerbosity:        oneOf(get(EnvDefaultVerbosity), types.VerbosityMedium, types.VerbosityLow, types.VerbosityMedium, types.VerbosityHigh),
		WebSearchDefaultEnabled: toBool(get(EnvWebSearchEnabled)),
		WebSearchContextSize:    oneOf(get(EnvWebSearchContext), types.SearchContextMedium, types.SearchContextLow, types.SearchContextMedium, types.SearchContextHigh),

		ImageModel:          oneOf(get(EnvImageModel), types.ImageModelGPTImage1, types.ImageModels()...),
		ImageSize:           oneOf(get(EnvImageSize), types.ImageSize1024, types.ImageSizes()...),
		ImageQuality:        oneOf(get(EnvImageQuality), types.ImageQualityStandard, types.ImageQualityStandard, types.ImageQualityHD, types.ImageQualityLow),
		ImageResponseFormat: oneOf(get(EnvImageResponseFormat), types.ImageResponseURL, types.ImageResponseURL, types.ImageResponseBase64),

		Verbose: toBool(get(EnvVerbose)),
	}
}

// Timeout returns the per-request upstream timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// HasAPIKey reports whether a credential was configured.
func (c Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// Redacted returns a copy safe to print, with the API key masked.
func (c Config) Redacted() Config {
	c.APIKey = maskSecret(c.APIKey)
	return c
}

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 8 {
		return strings.Repeat("*", len(s))
	}
	return s[:3] + strings.Repeat("*", len(s)-7) + s[len(s)-4:]
}

func orDefault(v, defaultVal string) string {
	if v == "" {
		return defaultVal
	}
	return v
}

// toBool accepts exactly 1, true, yes and on, case-insensitively.
func toBool(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes" || v == "on"
}

// toCount parses a finite non-negative number, truncating fractions.
func toCount(v string, defaultVal int) int {
	if v == "" {
		return defaultVal
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 || n > math.MaxInt32 {
		return defaultVal
	}
	return int(n)
}

func oneOf[T ~string](v string, defaultVal T, allowed ...T) T {
	v = strings.ToLower(v)
	for _, a := range allowed {
		if string(a) == v {
			return a
		}
	}
	return defaultVal
}
