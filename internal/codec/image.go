package codec

import (
	openai "github.com/openai/openai-go/v3"

	"github.com/n0madic/gpt5-mcp/internal/types"
)

// Images shapes an Images API result, keeping only the fields each record
// actually carries and echoing the requested model and size.
func Images(resp *openai.ImagesResponse, model types.ImageModel, size types.ImageSize) types.ImageResult {
	result := types.ImageResult{
		Images: []types.GeneratedImage{},
		Model:  model,
		Size:   size,
	}
	if resp == nil {
		return result
	}
	for _, img := range resp.Data {
		result.Images = append(result.Images, types.GeneratedImage{
			URL:           img.URL,
			B64JSON:       img.B64JSON,
			RevisedPrompt: img.RevisedPrompt,
		})
	}
	return result
}
