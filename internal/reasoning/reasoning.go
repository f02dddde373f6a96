package reasoning

import (
	"strings"

	"github.com/n0madic/gpt5-mcp/internal/types"
)

// NormalizeEffort maps a raw effort string onto the canonical set.
// "low" is accepted as an alias of "minimal". The second result is false
// when the value is empty or unrecognized.
func NormalizeEffort(raw string) (types.ReasoningEffort, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "low", "minimal":
		return types.EffortMinimal, true
	case "medium":
		return types.EffortMedium, true
	case "high":
		return types.EffortHigh, true
	default:
		return "", false
	}
}

// DefaultEffort normalizes a configured effort, falling back to medium.
func DefaultEffort(raw string) types.ReasoningEffort {
	if effort, ok := NormalizeEffort(raw); ok {
		return effort
	}
	return types.EffortMedium
}

// ForWebSearch raises minimal effort to medium when web search is on.
// The web_search_preview tool is unreliable at minimal effort.
func ForWebSearch(effort types.ReasoningEffort, webSearch bool) types.ReasoningEffort {
	if webSearch && effort == types.EffortMinimal {
		return types.EffortMedium
	}
	return effort
}

// BuildReasoningParam constructs the reasoning parameter for the Responses API.
// It returns nil when no recognizable effort was resolved.
func BuildReasoningParam(rawEffort string, webSearch bool) *types.ReasoningParam {
	effort, ok := NormalizeEffort(rawEffort)
	if !ok {
		return nil
	}
	return &types.ReasoningParam{Effort: ForWebSearch(effort, webSearch)}
}
