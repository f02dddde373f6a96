package request

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/n0madic/gpt5-mcp/internal/config"
	"github.com/n0madic/gpt5-mcp/internal/types"
)

func TestBuildImageDefaults(t *testing.T) {
	got, err := BuildImage(types.ImageInput{Prompt: "a red fox"}, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	want := types.ImageRequest{
		Model:          types.ImageModelGPTImage1,
		Prompt:         "a red fox",
		Size:           types.ImageSize1024,
		ResponseFormat: types.ImageResponseURL,
		Quality:        types.ImageQualityStandard,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildImage mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildImageDallE3RejectsMultipleImages(t *testing.T) {
	in := types.ImageInput{Prompt: "p", Model: types.ImageModelDallE3, N: types.Int64Ptr(2)}
	_, err := BuildImage(in, testConfig())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err: got %v, want ErrInvalidRequest", err)
	}
	if !strings.Contains(err.Error(), "only supports generating 1 image at a time") {
		t.Fatalf("err message: %q", err.Error())
	}
}

func TestBuildImageDallE3CountCheckUsesConfiguredModel(t *testing.T) {
	cfg := testConfig(func(c *config.Config) { c.ImageModel = types.ImageModelDallE3 })
	_, err := BuildImage(types.ImageInput{Prompt: "p", N: types.Int64Ptr(3)}, cfg)
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err: got %v, want ErrInvalidRequest", err)
	}
}

func TestBuildImageDallE2(t *testing.T) {
	in := types.ImageInput{
		Prompt:  "p",
		Model:   types.ImageModelDallE2,
		N:       types.Int64Ptr(3),
		Size:    types.ImageSize512,
		Quality: types.ImageQualityHD,
		Style:   types.ImageStyleVivid,
	}
	got, err := BuildImage(in, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"model":"dall-e-2","prompt":"p","size":"512x512","response_format":"url","n":3}`
	if string(data) != want {
		t.Fatalf("JSON: got %s, want %s", data, want)
	}
}

func TestBuildImageDallE3StyleAndQuality(t *testing.T) {
	in := types.ImageInput{
		Prompt:       "p",
		Model:        types.ImageModelDallE3,
		Quality:      types.ImageQualityHD,
		Style:        types.ImageStyleVivid,
		N:            types.Int64Ptr(1),
		OutputFormat: types.ImageOutputJPEG,
	}
	got, err := BuildImage(in, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	want := types.ImageRequest{
		Model:          types.ImageModelDallE3,
		Prompt:         "p",
		Size:           types.ImageSize1024,
		ResponseFormat: types.ImageResponseURL,
		Quality:        types.ImageQualityHD,
		Style:          types.ImageStyleVivid,
		N:              types.Int64Ptr(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildImage mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildImageGPTImage1OutputOptions(t *testing.T) {
	in := types.ImageInput{
		Prompt:            "p",
		Model:             types.ImageModelGPTImage1,
		OutputFormat:      types.ImageOutputJPEG,
		OutputCompression: types.Int64Ptr(80),
		Quality:           types.ImageQualityLow,
	}
	got, err := BuildImage(in, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	want := types.ImageRequest{
		Model:             types.ImageModelGPTImage1,
		Prompt:            "p",
		Size:              types.ImageSize1024,
		ResponseFormat:    types.ImageResponseURL,
		Quality:           types.ImageQualityLow,
		OutputFormat:      types.ImageOutputJPEG,
		OutputCompression: types.Int64Ptr(80),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildImage mismatch (-want +got):\n%s", diff)
	}
}

// gpt-image-1 does not reject n > 1 the way dall-e-3 does; the count is
// dropped and a single image comes back. This asymmetry is intentional.
func TestBuildImageGPTImage1DropsCount(t *testing.T) {
	in := types.ImageInput{Prompt: "p", Model: types.ImageModelGPTImage1, N: types.Int64Ptr(5)}
	got, err := BuildImage(in, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if got.N != nil {
		t.Fatalf("N: got %d, want omitted", *got.N)
	}
}

func TestBuildImageBase64ResponseFormat(t *testing.T) {
	in := types.ImageInput{Prompt: "p", ResponseFormat: types.ImageResponseBase64}
	got, err := BuildImage(in, testConfig())
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	if got.ResponseFormat != types.ImageResponseBase64 {
		t.Fatalf("ResponseFormat: got %q", got.ResponseFormat)
	}
}

func TestBuildImageConfigDefaults(t *testing.T) {
	cfg := testConfig(func(c *config.Config) {
		c.ImageModel = types.ImageModelDallE3
		c.ImageSize = types.ImageSize1792x1024
		c.ImageQuality = types.ImageQualityHD
		c.ImageResponseFormat = types.ImageResponseBase64
	})
	got, err := BuildImage(types.ImageInput{Prompt: "p"}, cfg)
	if err != nil {
		t.Fatalf("BuildImage: %v", err)
	}
	want := types.ImageRequest{
		Model:          types.ImageModelDallE3,
		Prompt:         "p",
		Size:           types.ImageSize1792x1024,
		ResponseFormat: types.ImageResponseBase64,
		Quality:        types.ImageQualityHD,
		N:              types.Int64Ptr(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("BuildImage mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildImageUnknownModel(t *testing.T) {
	_, err := BuildImage(types.ImageInput{Prompt: "p", Model: "dall-e-9"}, testConfig())
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("err: got %v, want ErrInvalidRequest", err)
	}
}
