package request

import (
	"errors"
	"fmt"

	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/models"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

// ErrInvalidRequest marks cross-field constraint violations that the tool
// schema cannot express.
var ErrInvalidRequest = errors.New("invalid request")

const defaultImageCount int64 = 1

// BuildImage merges a generate_image input with the configuration defaults
// into a canonical Images API request. Parameters the selected tier does not
// accept are never set.
func BuildImage(in types.ImageInput, cfg *config.Config) (types.ImageRequest, error) {
	model := pick(in.Model, cfg.ImageModel)
	tier, err := models.TierFor(model)
	if err != nil {
		return types.ImageRequest{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	n := pickPtr(in.N, defaultImageCount)
	if !tier.AllowsCount(n) {
		return types.ImageRequest{}, fmt.Errorf("%w: %s only supports generating %d image at a time",
			ErrInvalidRequest, model, tier.MaxCount)
	}

	req := types.ImageRequest{
		Model:          model,
		Prompt:         in.Prompt,
		Size:           pick(in.Size, cfg.ImageSize),
		ResponseFormat: pick(in.ResponseFormat, cfg.ImageResponseFormat),
	}

	if tier.StyleQuality {
		req.Style = in.Style
		req.Quality = pick(in.Quality, cfg.ImageQuality)
	}

	if tier.OutputOptions {
		req.OutputFormat = in.OutputFormat
		if in.OutputCompression != nil {
			req.OutputCompression = types.Int64Ptr(*in.OutputCompression)
		}
	}

	// gpt-image-1 does not take n; a caller asking for more is not rejected.
	if tier.SendsCount {
		req.N = types.Int64Ptr(n)
	}

	return req, nil
}
