package request

import (
	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/reasoning"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

// BuildQuery merges a gpt5_query input with the configuration defaults into
// a canonical Responses API request. It is pure and cannot fail; input shape
// is validated by the tool schema before it gets here.
func BuildQuery(in types.QueryInput, cfg *config.Config) types.QueryRequest {
	var ws types.WebSearchInput
	if in.WebSearch != nil {
		ws = *in.WebSearch
	}
	webSearch := pickPtr(ws.Enabled, cfg.WebSearchDefaultEnabled)

	req := types.QueryRequest{
		Model:             pick(in.Model, cfg.Model),
		Input:             in.Query,
		Instructions:      in.System,
		ToolChoice:        pick(in.ToolChoice, types.ToolChoiceAuto),
		ParallelToolCalls: pickPtr(in.ParallelToolCalls, true),
		Reasoning:         reasoning.BuildReasoningParam(pick(in.ReasoningEffort, string(cfg.ReasoningEffort)), webSearch),
	}

	if verbosity := pick(in.Verbosity, cfg.DefaultVerbosity); verbosity != "" {
		req.Text = &types.TextParam{Verbosity: verbosity}
	}

	// Disabled web search leaves Tools nil so the field is absent, not [].
	if webSearch {
		req.Tools = []types.WebSearchTool{{
			Type:              types.WebSearchPreviewType,
			SearchContextSize: pick(ws.SearchContextSize, cfg.WebSearchContextSize),
		}}
	}

	if in.MaxOutputTokens != nil && *in.MaxOutputTokens > 0 {
		req.MaxOutputTokens = *in.MaxOutputTokens
	}

	return req
}
