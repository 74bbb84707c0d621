// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds returned across the pipeline. Every one of them aborts a run;
// callers match them with errors.Is.
var (
	// ErrConfig reports an invalid layer or rarity configuration.
	ErrConfig = errors.New("configuration error")

	// ErrSamplingInconsistency reports a cumulative lookup that found no
	// interval for an in-range draw.
	ErrSamplingInconsistency = errors.New("sampling inconsistency")

	// ErrRender reports a renderer that could not produce or save an image.
	ErrRender = errors.New("render failure")

	// ErrCapacity reports that the requested number of distinct
	// combinations cannot be reached.
	ErrCapacity = errors.New("capacity exceeded")
)
