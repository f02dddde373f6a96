package types

// ReasoningEffort is the canonical reasoning effort sent upstream.
// The input alias "low" never survives normalization.
type ReasoningEffort string

const (
	EffortMinimal ReasoningEffort = "minimal"
	EffortMedium  ReasoningEffort = "medium"
	EffortHigh    ReasoningEffort = "high"
)

// Verbosity controls response length on the Responses API.
type Verbosity string

const (
	VerbosityLow    Verbosity = "low"
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

// SearchContextSize controls how much web context the search tool gathers.
type SearchContextSize string

const (
	SearchContextLow    SearchContextSize = "low"
	SearchContextMedium SearchContextSize = "medium"
	SearchContextHigh   SearchContextSize = "high"
)

// ToolChoice is the tool_choice mode of a text query.
type ToolChoice string

const (
	ToolChoiceAuto ToolChoice = "auto"
	ToolChoiceNone ToolChoice = "none"
)

// WebSearchPreviewType is the tool type of the upstream web search tool.
const WebSearchPreviewType = "web_search_preview"

// QueryInput is the argument record of the gpt5_query tool.
// Zero values and nil pointers mean "not supplied".
type QueryInput struct {
	Query             string          `json:"query" jsonschema:"User question or instruction"`
	Model             string          `json:"model,omitempty" jsonschema:"Model name, e.g. gpt-5"`
	System            string          `json:"system,omitempty" jsonschema:"Optional system prompt/instructions for the model"`
	ReasoningEffort   string          `json:"reasoning_effort,omitempty" jsonschema:"Reasoning effort; low is an alias of minimal"`
	Verbosity         Verbosity       `json:"verbosity,omitempty" jsonschema:"Response verbosity"`
	ToolChoice        ToolChoice      `json:"tool_choice,omitempty" jsonschema:"Tool choice mode"`
	ParallelToolCalls *bool           `json:"parallel_tool_calls,omitempty" jsonschema:"Allow parallel tool calls (default true)"`
	MaxOutputTokens   *int64          `json:"max_output_tokens,omitempty" jsonschema:"Upper bound on generated tokens"`
	WebSearch         *WebSearchInput `json:"web_search,omitempty" jsonschema:"Web Search Preview options"`
}

// WebSearchInput holds the per-call web search overrides.
type WebSearchInput struct {
	Enabled           *bool             `json:"enabled,omitempty" jsonschema:"Enable the web_search_preview tool"`
	SearchContextSize SearchContextSize `json:"search_context_size,omitempty" jsonschema:"Search context size"`
}

// QueryRequest is the canonical Responses API request built for one query.
// Every field present reflects an explicit decision; absent fields are omitted.
type QueryRequest struct {
	Model             string          `json:"model"`
	Input             string          `json:"input"`
	Instructions      string          `json:"instructions,omitempty"`
	Tools             []WebSearchTool `json:"tools,omitempty"`
	ToolChoice        ToolChoice      `json:"tool_choice"`
	ParallelToolCalls bool            `json:"parallel_tool_calls"`
	Reasoning         *ReasoningParam `json:"reasoning,omitempty"`
	Text              *TextParam      `json:"text,omitempty"`
	MaxOutputTokens   int64           `json:"max_output_tokens,omitempty"`
}

// WebSearchTool is the web_search_preview tool descriptor.
type WebSearchTool struct {
	Type              string            `json:"type"`
	SearchContextSize SearchContextSize `json:"search_context_size,omitempty"`
}

// ReasoningParam represents the reasoning parameter for the Responses API.
type ReasoningParam struct {
	Effort ReasoningEffort `json:"effort"`
}

// TextParam carries the text output options.
type TextParam struct {
	Verbosity Verbosity `json:"verbosity"`
}
