package types

// ImageModel is one of the supported image generation tiers.
type ImageModel string

const (
	// ImageModelDallE2 is the basic tier: no style or quality, multi-image allowed.
	ImageModelDallE2 ImageModel = "dall-e-2"
	// ImageModelDallE3 adds style and quality but generates one image per call.
	ImageModelDallE3 ImageModel = "dall-e-3"
	// ImageModelGPTImage1 adds output format and compression; n is not sent.
	ImageModelGPTImage1 ImageModel = "gpt-image-1"
)

// ImageSize is a supported output resolution.
type ImageSize string

const (
	ImageSize256       ImageSize = "256x256"
	ImageSize512       ImageSize = "512x512"
	ImageSize1024      ImageSize = "1024x1024"
	ImageSize1024x1792 ImageSize = "1024x1792"
	ImageSize1792x1024 ImageSize = "1792x1024"
	ImageSize1024x1536 ImageSize = "1024x1536"
)

// ImageQuality is the requested rendering quality.
type ImageQuality string

const (
	ImageQualityStandard ImageQuality = "standard"
	ImageQualityHD       ImageQuality = "hd"
	ImageQualityLow      ImageQuality = "low"
)

// ImageStyle is the dall-e-3 style preference.
type ImageStyle string

const (
	ImageStyleNatural ImageStyle = "natural"
	ImageStyleVivid   ImageStyle = "vivid"
)

// ImageResponseFormat selects URL or inline base64 delivery.
type ImageResponseFormat string

const (
	ImageResponseURL    ImageResponseFormat = "url"
	ImageResponseBase64 ImageResponseFormat = "b64_json"
)

// ImageOutputFormat is the encoded file format for gpt-image-1.
type ImageOutputFormat string

const (
	ImageOutputPNG  ImageOutputFormat = "png"
	ImageOutputJPEG ImageOutputFormat = "jpeg"
)

// ImageInput is the argument record of the generate_image tool.
type ImageInput struct {
	Prompt            string              `json:"prompt" jsonschema:"Text description of the image to generate"`
	Model             ImageModel          `json:"model,omitempty" jsonschema:"Image generation model to use"`
	Size              ImageSize           `json:"size,omitempty" jsonschema:"Image dimensions"`
	Quality           ImageQuality        `json:"quality,omitempty" jsonschema:"Image quality level"`
	Style             ImageStyle          `json:"style,omitempty" jsonschema:"Image style preference"`
	ResponseFormat    ImageResponseFormat `json:"response_format,omitempty" jsonschema:"Response format for generated image"`
	N                 *int64              `json:"n,omitempty" jsonschema:"Number of images to generate (dall-e-2 only)"`
	OutputFormat      ImageOutputFormat   `json:"output_format,omitempty" jsonschema:"Output file format (gpt-image-1 only)"`
	OutputCompression *int64              `json:"output_compression,omitempty" jsonschema:"Output compression level (gpt-image-1 only)"`
}

// ImageRequest is the canonical Images API request.
// Parameters the selected tier does not accept are never set.
type ImageRequest struct {
	Model             ImageModel          `json:"model"`
	Prompt            string              `json:"prompt"`
	Size              ImageSize           `json:"size"`
	ResponseFormat    ImageResponseFormat `json:"response_format"`
	Quality           ImageQuality        `json:"quality,omitempty"`
	Style             ImageStyle          `json:"style,omitempty"`
	N                 *int64              `json:"n,omitempty"`
	OutputFormat      ImageOutputFormat   `json:"output_format,omitempty"`
	OutputCompression *int64              `json:"output_compression,omitempty"`
}

// GeneratedImage is one image in the shaped result.
type GeneratedImage struct {
	URL           string `json:"url,omitempty"`
	B64JSON       string `json:"b64_json,omitempty"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
}

// ImageResult is what the generate_image tool returns to the caller.
type ImageResult struct {
	Images []GeneratedImage `json:"images"`
	Model  ImageModel       `json:"model"`
	Size   ImageSize        `json:"size"`
}
