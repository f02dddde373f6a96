package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/n0madic/gpt5-mcp/internal/codec"
	"github.com/n0madic/gpt5-mcp/internal/pipeline"
	"github.com/n0madic/gpt5-mcp/internal/request"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

func (s *Server) handleQuery(ctx context.Context, _ *mcp.CallToolRequest, in types.QueryInput) (*mcp.CallToolResult, any, error) {
	rc := newRequestContext(ctx)
	start := time.Now()

	text, err := s.Pipeline.RunQuery(rc, in)
	if err != nil {
		return s.toolError(rc, QueryToolName, start, err), nil, nil
	}
	s.logToolDone(rc, QueryToolName, start)
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

func (s *Server) handleImage(ctx context.Context, _ *mcp.CallToolRequest, in types.ImageInput) (*mcp.CallToolResult, any, error) {
	rc := newRequestContext(ctx)
	start := time.Now()

	result, err := s.Pipeline.GenerateImage(rc, in)
	if err != nil {
		return s.toolError(rc, ImageToolName, start, err), nil, nil
	}
	body, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return s.toolError(rc, ImageToolName, start, err), nil, nil
	}
	s.logToolDone(rc, ImageToolName, start, "images", len(result.Images))
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(body)}},
		StructuredContent: result,
	}, nil, nil
}

func newRequestContext(ctx context.Context) *pipeline.RequestContext {
	return &pipeline.RequestContext{
		Context: ctx,
		CallID:  uuid.NewString(),
	}
}

// toolError converts a failure into an error-tagged tool result. Tool
// failures never surface as protocol errors.
func (s *Server) toolError(rc *pipeline.RequestContext, tool string, start time.Time, err error) *mcp.CallToolResult {
	msg := codec.FormatUpstreamError(err)
	attrs := []any{
		"call_id", rc.CallID,
		"tool", tool,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", msg,
	}
	if errors.Is(err, request.ErrInvalidRequest) {
		slog.Warn("tool.rejected", attrs...)
	} else {
		slog.Error("tool.failed", attrs...)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: "Error: " + msg}},
		IsError: true,
	}
}

func (s *Server) logToolDone(rc *pipeline.RequestContext, tool string, start time.Time, extra ...any) {
	if !s.Config.Verbose {
		return
	}
	attrs := []any{
		"call_id", rc.CallID,
		"tool", tool,
		"duration_ms", time.Since(start).Milliseconds(),
	}
	slog.Info("tool.done", append(attrs, extra...)...)
}
