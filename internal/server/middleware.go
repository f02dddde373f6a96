package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/n0madic/gpt5-mcp/internal/config"
)

// verboseMiddleware logs every inbound MCP method when verbose is on.
func verboseMiddleware(cfg *config.Config) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		if cfg == nil || !cfg.Verbose {
			return next
		}
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			start := time.Now()
			result, err := next(ctx, method, req)
			attrs := []any{"method", method, "duration_ms", time.Since(start).Milliseconds()}
			if err != nil {
				slog.Warn("mcp.request", append(attrs, "error", err)...)
			} else {
				slog.Info("mcp.request", attrs...)
			}
			return result, err
		}
	}
}
