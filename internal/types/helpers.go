package types

// BoolPtr returns a pointer to the given bool.
func BoolPtr(b bool) *bool {
	return &b
}

// Int64Ptr returns a pointer to the given int64.
func Int64Ptr(n int64) *int64 {
	return &n
}

// ImageModels lists every supported image tier in catalog order.
func ImageModels() []ImageModel {
	return []ImageModel{ImageModelDallE2, ImageModelDallE3, ImageModelGPTImage1}
}

// ImageSizes lists every supported image resolution.
func ImageSizes() []ImageSize {
	return []ImageSize{
		ImageSize256, ImageSize512, ImageSize1024,
		ImageSize1024x1792, ImageSize1792x1024, ImageSize1024x1536,
	}
}
