package request

// pick applies the override resolution order shared by every builder field:
// the per-call value when supplied, otherwise the configured default. A zero
// result means the field is omitted from the request.
func pick[T comparable](override, fallback T) T {
	var zero T
	if override != zero {
		return override
	}
	return fallback
}

// pickPtr is pick for optional inputs where the zero value is meaningful,
// such as an explicit false or 0.
func pickPtr[T any](override *T, fallback T) T {
	if override != nil {
		return *override
	}
	return fallback
}
