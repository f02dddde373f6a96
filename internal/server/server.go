package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/pipeline"
)

// Server is the MCP tool server.
type Server struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
	mcp      *mcp.Server
}

// New creates a new server with both tools registered.
func New(cfg *config.Config, up pipeline.Upstream, version string) *Server {
	s := &Server{
		Config: cfg,
		Pipeline: &pipeline.Pipeline{
			Config:   cfg,
			Upstream: up,
		},
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    config.ServerName,
			Version: version,
		},
		&mcp.ServerOptions{},
	)
	s.mcp.AddReceivingMiddleware(verboseMiddleware(cfg))

	mcp.AddTool(s.mcp, queryTool(), s.handleQuery)
	mcp.AddTool(s.mcp, imageTool(), s.handleImage)

	return s
}

// Run serves MCP over stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// MCP exposes the underlying server, e.g. to connect other transports.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}
