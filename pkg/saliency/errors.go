package saliency

import "github.com/pkg/errors"

// Error kinds surfaced by the pipeline. Call sites wrap these with context, so
// callers can test with errors.Is.
var (
	// ErrInvalidInputShape reports an input whose channels disagree in shape
	// or whose spatial extent cannot support the requested pyramid depth.
	ErrInvalidInputShape = errors.New("invalid input shape")

	// ErrInvalidPyramidDepth reports a (center, delta) pair referencing a
	// pyramid level beyond the depth actually constructed.
	ErrInvalidPyramidDepth = errors.New("invalid pyramid depth")

	// ErrInvalidParameter reports an out-of-range configuration value.
	ErrInvalidParameter = errors.New("invalid parameter")
)
