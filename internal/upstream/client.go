package upstream

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"

	"github.com/n0madic/gpt5-mcp/internal/codec"
	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/limits"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

// Client makes requests to the OpenAI API. Retries and per-request timeouts
// are left to the SDK; every call here is a single logical request.
type Client struct {
	sdk     openai.Client
	Verbose bool
}

// NewClient creates a new upstream client from the resolved configuration.
func NewClient(cfg *config.Config, version string) *Client {
	c := &Client{Verbose: cfg.Verbose}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
		option.WithRequestTimeout(cfg.Timeout()),
		option.WithHeader("User-Agent", config.UserAgent(version)),
		option.WithMiddleware(c.observe),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}
	if cfg.Project != "" {
		opts = append(opts, option.WithProject(cfg.Project))
	}

	c.sdk = openai.NewClient(opts...)
	return c
}

// CreateResponse sends one text query to the Responses API.
func (c *Client) CreateResponse(ctx context.Context, req types.QueryRequest) (*responses.Response, error) {
	if c.Verbose {
		effort := ""
		if req.Reasoning != nil {
			effort = string(req.Reasoning.Effort)
		}
		slog.Info("upstream.request",
			"api", "responses",
			"model", req.Model,
			"input_chars", len(req.Input),
			"instructions_chars", len(req.Instructions),
			"tools", len(req.Tools),
			"tool_choice", string(req.ToolChoice),
			"parallel_tool_calls", req.ParallelToolCalls,
			"reasoning_effort", effort,
			"max_output_tokens", req.MaxOutputTokens,
		)
	}

	resp, err := c.sdk.Responses.New(ctx, queryRequestToSDK(req))
	if err != nil {
		return nil, fmt.Errorf("create response: %w", err)
	}
	return resp, nil
}

// GenerateImage sends one image generation request to the Images API.
func (c *Client) GenerateImage(ctx context.Context, req types.ImageRequest) (*openai.ImagesResponse, error) {
	if c.Verbose {
		slog.Info("upstream.request",
			"api", "images",
			"model", string(req.Model),
			"size", string(req.Size),
			"response_format", string(req.ResponseFormat),
			"prompt_chars", len(req.Prompt),
		)
	}

	resp, err := c.sdk.Images.Generate(ctx, imageRequestToSDK(req))
	if err != nil {
		return nil, fmt.Errorf("generate image: %w", err)
	}
	return resp, nil
}

// observe logs every HTTP exchange the SDK makes, retries included.
func (c *Client) observe(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
	start := time.Now()
	resp, err := next(req)
	if !c.Verbose {
		return resp, err
	}
	attrs := []any{
		"method", req.Method,
		"path", req.URL.Path,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if err != nil {
		slog.Warn("upstream.response", append(attrs, "error", err)...)
		return resp, err
	}
	attrs = append(attrs, "status", resp.StatusCode)
	if requestID := codec.RequestID(resp.Header); requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	attrs = append(attrs, limits.ParseHeaders(resp.Header).LogAttrs()...)
	slog.Info("upstream.response", attrs...)
	return resp, err
}

// ModelInfo describes the configured model and the rate limits reported with it.
type ModelInfo struct {
	ID         string
	OwnedBy    string
	Created    time.Time
	CapturedAt time.Time
	RateLimits *limits.RateLimitSnapshot
	RequestID  string
}

// CheckModel retrieves a model to verify the credentials and capture the
// current rate limit windows.
func (c *Client) CheckModel(ctx context.Context, model string) (*ModelInfo, error) {
	var httpResp *http.Response
	m, err := c.sdk.Models.Get(ctx, model, option.WithResponseInto(&httpResp))
	if err != nil {
		return nil, fmt.Errorf("retrieve model %s: %w", model, err)
	}
	info := &ModelInfo{
		ID:         m.ID,
		OwnedBy:    m.OwnedBy,
		Created:    time.Unix(m.Created, 0).UTC(),
		CapturedAt: time.Now().UTC(),
	}
	if httpResp != nil {
		info.RateLimits = limits.ParseHeaders(httpResp.Header)
		info.RequestID = codec.RequestID(httpResp.Header)
	}
	return info, nil
}
