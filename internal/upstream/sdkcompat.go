package upstream

import (
	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/packages/param"
	"github.com/openai/openai-go/v3/responses"
	"github.com/openai/openai-go/v3/shared"

	"github.com/n0madic/gpt5-mcp/internal/types"
)

// queryRequestToSDK converts the canonical query request to SDK params.
// Fields absent from the canonical request stay omitted on the wire.
func queryRequestToSDK(req types.QueryRequest) responses.ResponseNewParams {
	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(req.Model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(req.Input),
		},
		ToolChoice: responses.ResponseNewParamsToolChoiceUnion{
			OfToolChoiceMode: param.NewOpt(responses.ToolChoiceOptions(req.ToolChoice)),
		},
		ParallelToolCalls: openai.Bool(req.ParallelToolCalls),
	}
	if req.Instructions != "" {
		params.Instructions = openai.String(req.Instructions)
	}
	for _, tool := range req.Tools {
		params.Tools = append(params.Tools, webSearchToolToSDK(tool))
	}
	if req.Reasoning != nil {
		params.Reasoning = shared.ReasoningParam{
			Effort: shared.ReasoningEffort(req.Reasoning.Effort),
		}
	}
	if req.Text != nil {
		params.Text = responses.ResponseTextConfigParam{
			Verbosity: responses.ResponseTextConfigVerbosity(req.Text.Verbosity),
		}
	}
	if req.MaxOutputTokens > 0 {
		params.MaxOutputTokens = openai.Int(req.MaxOutputTokens)
	}
	return params
}

func webSearchToolToSDK(tool types.WebSearchTool) responses.ToolUnionParam {
	return responses.ToolUnionParam{
		OfWebSearchPreview: &responses.WebSearchPreviewToolParam{
			Type:              responses.WebSearchPreviewToolType(tool.Type),
			SearchContextSize: responses.WebSearchPreviewToolSearchContextSize(tool.SearchContextSize),
		},
	}
}

// imageRequestToSDK converts the canonical image request to SDK params.
func imageRequestToSDK(req types.ImageRequest) openai.ImageGenerateParams {
	params := openai.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openai.ImageModel(req.Model),
		Size:           openai.ImageGenerateParamsSize(req.Size),
		ResponseFormat: openai.ImageGenerateParamsResponseFormat(req.ResponseFormat),
		Quality:        openai.ImageGenerateParamsQuality(req.Quality),
		Style:          openai.ImageGenerateParamsStyle(req.Style),
		OutputFormat:   openai.ImageGenerateParamsOutputFormat(req.OutputFormat),
	}
	if req.N != nil {
		params.N = openai.Int(*req.N)
	}
	if req.OutputCompression != nil {
		params.OutputCompression = openai.Int(*req.OutputCompression)
	}
	return params
}
