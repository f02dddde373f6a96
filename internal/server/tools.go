package server

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/n0madic/gpt5-mcp/internal/types"
)

const (
	QueryToolName = "gpt5_query"
	ImageToolName = "generate_image"

	maxQueryChars = 100_000
	maxImageCount = 10
)

func queryTool() *mcp.Tool {
	schema := mustSchemaFor[types.QueryInput]()
	props := schema.Properties
	props["query"].MaxLength = jsonschema.Ptr(maxQueryChars)
	props["reasoning_effort"].Enum = enumOf("low", types.EffortMinimal, types.EffortMedium, types.EffortHigh)
	props["verbosity"].Enum = enumOf(types.VerbosityLow, types.VerbosityMedium, types.VerbosityHigh)
	props["tool_choice"].Enum = enumOf(types.ToolChoiceAuto, types.ToolChoiceNone)
	props["max_output_tokens"].ExclusiveMinimum = jsonschema.Ptr(0.0)

	webSearch := props["web_search"]
	webSearch.AdditionalProperties = nil
	webSearch.Properties["search_context_size"].Enum = enumOf(types.SearchContextLow, types.SearchContextMedium, types.SearchContextHigh)

	return &mcp.Tool{
		Name:        QueryToolName,
		Description: "Query GPT-5 with optional Web Search Preview. Supports verbosity and reasoning effort.",
		InputSchema: schema,
	}
}

func imageTool() *mcp.Tool {
	schema := mustSchemaFor[types.ImageInput]()
	props := schema.Properties
	props["model"].Enum = enumOf(types.ImageModels()...)
	props["size"].Enum = enumOf(types.ImageSizes()...)
	props["quality"].Enum = enumOf(types.ImageQualityStandard, types.ImageQualityHD, types.ImageQualityLow)
	props["style"].Enum = enumOf(types.ImageStyleNatural, types.ImageStyleVivid)
	props["response_format"].Enum = enumOf(types.ImageResponseURL, types.ImageResponseBase64)
	props["n"].Minimum = jsonschema.Ptr(1.0)
	props["n"].Maximum = jsonschema.Ptr(float64(maxImageCount))
	props["output_format"].Enum = enumOf(types.ImageOutputPNG, types.ImageOutputJPEG)
	props["output_compression"].Minimum = jsonschema.Ptr(1.0)
	props["output_compression"].Maximum = jsonschema.Ptr(100.0)

	return &mcp.Tool{
		Name:        ImageToolName,
		Description: "Generate images with DALL-E 2, DALL-E 3 or gpt-image-1.",
		InputSchema: schema,
	}
}

// mustSchemaFor infers the object schema of an input record. Unknown
// arguments are tolerated and ignored.
func mustSchemaFor[T any]() *jsonschema.Schema {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		panic(fmt.Sprintf("input schema: %v", err))
	}
	schema.AdditionalProperties = nil
	return schema
}

func enumOf[T ~string](values ...T) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
