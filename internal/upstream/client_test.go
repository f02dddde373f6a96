package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	openai "github.com/openai/openai-go/v3"

	"github.com/n0madic/gpt5-mcp/internal/codec"
	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

type capturedRequest struct {
	Path    string
	Headers http.Header
	Body    map[string]any
}

type fakeOpenAI struct {
	mu       sync.Mutex
	requests []capturedRequest
	status   int
	body     string
	headers  map[string]string
}

func (f *fakeOpenAI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	_ = json.Unmarshal(raw, &body)

	f.mu.Lock()
	f.requests = append(f.requests, capturedRequest{Path: r.URL.Path, Headers: r.Header.Clone(), Body: body})
	f.mu.Unlock()

	for k, v := range f.headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.body)
}

func newTestClient(t *testing.T, fake *fakeOpenAI) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.Resolve(map[string]string{
		config.EnvAPIKey:     "sk-test",
		config.EnvBaseURL:    srv.URL + "/v1",
		config.EnvMaxRetries: "0",
		config.EnvTimeoutMs:  "5000",
		config.EnvVerbose:    "1",
	})
	return NewClient(&cfg, "1.2.3")
}

const responseBody = `{
	"id": "resp_1",
	"object": "response",
	"created_at": 1,
	"status": "completed",
	"model": "gpt-5",
	"output": [{
		"id": "msg_1",
		"type": "message",
		"role": "assistant",
		"status": "completed",
		"content": [{"type": "output_text", "text": "Paris", "annotations": []}]
	}]
}`

func TestCreateResponseSendsCanonicalRequest(t *testing.T) {
	fake := &fakeOpenAI{body: responseBody}
	client := newTestClient(t, fake)

	req := types.QueryRequest{
		Model:             "gpt-5",
		Input:             "Capital of France?",
		Instructions:      "Answer in one word.",
		Tools:             []types.WebSearchTool{{Type: types.WebSearchPreviewType, SearchContextSize: types.SearchContextHigh}},
		ToolChoice:        types.ToolChoiceAuto,
		ParallelToolCalls: true,
		Reasoning:         &types.ReasoningParam{Effort: types.EffortMedium},
		Text:              &types.TextParam{Verbosity: types.VerbosityLow},
		MaxOutputTokens:   128,
	}
	resp, err := client.CreateResponse(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	if got := codec.QueryText(resp); got != "Paris" {
		t.Fatalf("QueryText: got %q, want %q", got, "Paris")
	}

	if len(fake.requests) != 1 {
		t.Fatalf("upstream call count: got %d, want 1", len(fake.requests))
	}
	captured := fake.requests[0]
	if captured.Path != "/v1/responses" {
		t.Errorf("path: got %q, want /v1/responses", captured.Path)
	}
	if got := captured.Headers.Get("Authorization"); got != "Bearer sk-test" {
		t.Errorf("Authorization: got %q", got)
	}
	if got := captured.Headers.Get("User-Agent"); !strings.HasPrefix(got, "gpt5-mcp/1.2.3") {
		t.Errorf("User-Agent: got %q", got)
	}

	want := map[string]any{
		"model":               "gpt-5",
		"input":               "Capital of France?",
		"instructions":        "Answer in one word.",
		"tools":               []any{map[string]any{"type": "web_search_preview", "search_context_size": "high"}},
		"tool_choice":         "auto",
		"parallel_tool_calls": true,
		"reasoning":           map[string]any{"effort": "medium"},
		"text":                map[string]any{"verbosity": "low"},
		"max_output_tokens":   float64(128),
	}
	if diff := cmp.Diff(want, captured.Body); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateResponseOmitsAbsentFields(t *testing.T) {
	fake := &fakeOpenAI{body: responseBody}
	client := newTestClient(t, fake)

	req := types.QueryRequest{
		Model:             "gpt-5",
		Input:             "hi",
		ToolChoice:        types.ToolChoiceNone,
		ParallelToolCalls: false,
	}
	if _, err := client.CreateResponse(context.Background(), req); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}

	want := map[string]any{
		"model":               "gpt-5",
		"input":               "hi",
		"tool_choice":         "none",
		"parallel_tool_calls": false,
	}
	if diff := cmp.Diff(want, fake.requests[0].Body); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateImageSendsTierFields(t *testing.T) {
	fake := &fakeOpenAI{body: `{"created": 1, "data": [{"url": "https://example.com/img.png", "revised_prompt": "a cat"}]}`}
	client := newTestClient(t, fake)

	req := types.ImageRequest{
		Model:             types.ImageModelGPTImage1,
		Prompt:            "a cat",
		Size:              types.ImageSize1024x1536,
		ResponseFormat:    types.ImageResponseURL,
		Quality:           types.ImageQualityLow,
		OutputFormat:      types.ImageOutputJPEG,
		OutputCompression: types.Int64Ptr(80),
	}
	resp, err := client.GenerateImage(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].URL != "https://example.com/img.png" {
		t.Fatalf("response data: got %+v", resp.Data)
	}

	captured := fake.requests[0]
	if captured.Path != "/v1/images/generations" {
		t.Errorf("path: got %q, want /v1/images/generations", captured.Path)
	}
	want := map[string]any{
		"model":              "gpt-image-1",
		"prompt":             "a cat",
		"size":               "1024x1536",
		"response_format":    "url",
		"quality":            "low",
		"output_format":      "jpeg",
		"output_compression": float64(80),
	}
	if diff := cmp.Diff(want, captured.Body); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateImageSendsCount(t *testing.T) {
	fake := &fakeOpenAI{body: `{"created": 1, "data": []}`}
	client := newTestClient(t, fake)

	req := types.ImageRequest{
		Model:          types.ImageModelDallE2,
		Prompt:         "p",
		Size:           types.ImageSize512,
		ResponseFormat: types.ImageResponseBase64,
		N:              types.Int64Ptr(3),
	}
	if _, err := client.GenerateImage(context.Background(), req); err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	want := map[string]any{
		"model":           "dall-e-2",
		"prompt":          "p",
		"size":            "512x512",
		"response_format": "b64_json",
		"n":               float64(3),
	}
	if diff := cmp.Diff(want, fake.requests[0].Body); diff != "" {
		t.Fatalf("request body mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateResponseUpstreamError(t *testing.T) {
	fake := &fakeOpenAI{
		status:  http.StatusBadRequest,
		body:    `{"error": {"message": "Unsupported parameter: 'verbosity'", "type": "invalid_request_error", "param": "text.verbosity", "code": null}}`,
		headers: map[string]string{"x-request-id": "req_abc"},
	}
	client := newTestClient(t, fake)

	_, err := client.CreateResponse(context.Background(), types.QueryRequest{Model: "gpt-5", Input: "q", ToolChoice: types.ToolChoiceAuto})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *openai.Error in chain, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode: got %d, want 400", apiErr.StatusCode)
	}
	want := "Upstream returned HTTP 400 Bad Request: Unsupported parameter: 'verbosity' (request_id: req_abc)"
	if got := codec.FormatUpstreamError(err); got != want {
		t.Errorf("FormatUpstreamError:\n got %q\nwant %q", got, want)
	}
	if len(fake.requests) != 1 {
		t.Errorf("upstream call count: got %d, want 1 with retries disabled", len(fake.requests))
	}
}

func TestNewClientOptionalHeaders(t *testing.T) {
	fake := &fakeOpenAI{body: responseBody}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := config.Resolve(map[string]string{
		config.EnvAPIKey:       "sk-test",
		config.EnvBaseURL:      srv.URL + "/v1",
		config.EnvOrganization: "org-1",
		config.EnvProject:      "proj-1",
		config.EnvMaxRetries:   "0",
	})
	client := NewClient(&cfg, "dev")
	if client.Verbose {
		t.Error("Verbose: got true, want false")
	}
	if _, err := client.CreateResponse(context.Background(), types.QueryRequest{Model: "gpt-5", Input: "q", ToolChoice: types.ToolChoiceAuto}); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}
	headers := fake.requests[0].Headers
	if got := headers.Get("OpenAI-Organization"); got != "org-1" {
		t.Errorf("OpenAI-Organization: got %q", got)
	}
	if got := headers.Get("OpenAI-Project"); got != "proj-1" {
		t.Errorf("OpenAI-Project: got %q", got)
	}
}

func TestCheckModelCapturesRateLimits(t *testing.T) {
	fake := &fakeOpenAI{
		body:    `{"id": "gpt-5", "object": "model", "created": 1754524800, "owned_by": "system"}`,
		headers: map[string]string{
			"x-request-id":                   "req_model",
			"x-ratelimit-limit-requests":     "500",
			"x-ratelimit-remaining-requests": "499",
			"x-ratelimit-reset-requests":     "120ms",
		},
	}
	client := newTestClient(t, fake)

	info, err := client.CheckModel(context.Background(), "gpt-5")
	if err != nil {
		t.Fatalf("CheckModel: %v", err)
	}
	if fake.requests[0].Path != "/v1/models/gpt-5" {
		t.Errorf("path: got %q, want /v1/models/gpt-5", fake.requests[0].Path)
	}
	if info.ID != "gpt-5" || info.OwnedBy != "system" {
		t.Errorf("model: got %+v", info)
	}
	if info.RequestID != "req_model" {
		t.Errorf("RequestID: got %q, want req_model", info.RequestID)
	}
	if info.RateLimits == nil || info.RateLimits.Requests == nil || info.RateLimits.Requests.Remaining != 499 {
		t.Fatalf("RateLimits: got %+v", info.RateLimits)
	}
	if info.RateLimits.Tokens != nil {
		t.Errorf("token window: got %+v, want nil", info.RateLimits.Tokens)
	}
}

func TestCheckModelNotFound(t *testing.T) {
	fake := &fakeOpenAI{
		status: http.StatusNotFound,
		body:   `{"error": {"message": "The model 'gpt-x' does not exist", "type": "invalid_request_error", "code": "model_not_found"}}`,
	}
	client := newTestClient(t, fake)

	_, err := client.CheckModel(context.Background(), "gpt-x")
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("err: got %v, want 404 API error", err)
	}
}
