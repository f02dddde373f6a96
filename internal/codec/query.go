package codec

import (
	"github.com/openai/openai-go/v3/responses"
)

// NoResponseText is returned when the upstream response carries no output text.
const NoResponseText = "No response text available."

// QueryText extracts the aggregated output text of a Responses API result.
// A nil response or one without text yields NoResponseText.
func QueryText(resp *responses.Response) string {
	if resp == nil {
		return NoResponseText
	}
	if text := resp.OutputText(); text != "" {
		return text
	}
	return NoResponseText
}
