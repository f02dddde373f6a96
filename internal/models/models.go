package models

import (
	"fmt"

	"github.com/n0madic/gpt5-mcp/internal/types"
)

// ImageTier describes which optional parameters an image model accepts.
// The upstream API rejects parameters a tier does not know, so every
// builder decision is read from here.
type ImageTier struct {
	Model types.ImageModel
	// StyleQuality allows the style and quality parameters.
	StyleQuality bool
	// OutputOptions allows output_format and output_compression.
	OutputOptions bool
	// SendsCount is false when n must not be sent at all.
	SendsCount bool
	// MaxCount is the largest accepted n; 0 means no limit beyond the schema.
	MaxCount int64
}

// TierFor returns the capabilities of a supported image model.
func TierFor(model types.ImageModel) (ImageTier, error) {
	switch model {
	case types.ImageModelDallE2:
		return ImageTier{Model: model, SendsCount: true}, nil
	case types.ImageModelDallE3:
		return ImageTier{Model: model, StyleQuality: true, SendsCount: true, MaxCount: 1}, nil
	case types.ImageModelGPTImage1:
		// n is dropped for this tier rather than validated.
		return ImageTier{Model: model, StyleQuality: true, OutputOptions: true}, nil
	default:
		return ImageTier{}, fmt.Errorf("unsupported image model %q", model)
	}
}

// ImageTiers returns the capabilities of every supported image model.
func ImageTiers() []ImageTier {
	var tiers []ImageTier
	for _, m := range types.ImageModels() {
		tier, err := TierFor(m)
		if err != nil {
			panic(err)
		}
		tiers = append(tiers, tier)
	}
	return tiers
}

// AllowsCount reports whether n images may be requested from this tier.
func (t ImageTier) AllowsCount(n int64) bool {
	return t.MaxCount == 0 || n <= t.MaxCount
}
