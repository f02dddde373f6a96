package pipeline

import (
	"context"
	"log/slog"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/responses"

	"github.com/n0madic/gpt5-mcp/internal/codec"
	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/request"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

// Upstream is the subset of the OpenAI client the pipeline needs.
type Upstream interface {
	CreateResponse(ctx context.Context, req types.QueryRequest) (*responses.Response, error)
	GenerateImage(ctx context.Context, req types.ImageRequest) (*openai.ImagesResponse, error)
}

// Pipeline orchestrates one tool invocation through the
// build → upstream → shape flow. It holds no per-call state.
type Pipeline struct {
	Config   *config.Config
	Upstream Upstream
}

// RequestContext carries per-invocation metadata.
type RequestContext struct {
	Context context.Context
	CallID  string
}

// RunQuery answers a gpt5_query invocation with the model's output text.
func (p *Pipeline) RunQuery(ctx *RequestContext, in types.QueryInput) (string, error) {
	req := request.BuildQuery(in, p.Config)
	p.logQueryRequest(ctx, req)

	resp, err := p.Upstream.CreateResponse(ctx.Context, req)
	if err != nil {
		return "", err
	}
	return codec.QueryText(resp), nil
}

// GenerateImage answers a generate_image invocation. Constraint violations
// are reported before any upstream call is made.
func (p *Pipeline) GenerateImage(ctx *RequestContext, in types.ImageInput) (types.ImageResult, error) {
	req, err := request.BuildImage(in, p.Config)
	if err != nil {
		return types.ImageResult{}, err
	}
	p.logImageRequest(ctx, req)

	resp, err := p.Upstream.GenerateImage(ctx.Context, req)
	if err != nil {
		return types.ImageResult{}, err
	}
	return codec.Images(resp, req.Model, req.Size), nil
}

func (p *Pipeline) logQueryRequest(ctx *RequestContext, req types.QueryRequest) {
	if !p.Config.Verbose {
		return
	}
	effort := ""
	if req.Reasoning != nil {
		effort = string(req.Reasoning.Effort)
	}
	verbosity := ""
	if req.Text != nil {
		verbosity = string(req.Text.Verbosity)
	}
	slog.Debug("gpt5_query.request",
		"call_id", ctx.CallID,
		"model", req.Model,
		"web_search", len(req.Tools) > 0,
		"reasoning_effort", effort,
		"verbosity", verbosity,
	)
}

func (p *Pipeline) logImageRequest(ctx *RequestContext, req types.ImageRequest) {
	if !p.Config.Verbose {
		return
	}
	n := int64(0)
	if req.N != nil {
		n = *req.N
	}
	slog.Debug("generate_image.request",
		"call_id", ctx.CallID,
		"model", string(req.Model),
		"size", string(req.Size),
		"quality", string(req.Quality),
		"n", n,
	)
}
