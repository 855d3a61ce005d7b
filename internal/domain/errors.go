package domain

import "errors"

// Render failure taxonomy. Adapters wrap these with context using %w so that
// callers can classify a failed render pass with errors.Is.
var (
	// ErrFetchTimeout means a collaborator did not become ready within its
	// bounded wait. It is never retried inside a render pass.
	ErrFetchTimeout = errors.New("fetch timed out")

	// ErrFetch covers every other collaborator failure (bad status, transport
	// error, open circuit breaker).
	ErrFetch = errors.New("fetch failed")

	// ErrDecode means the bytes returned by a collaborator are not a raster.
	ErrDecode = errors.New("decode raster")

	// ErrDimensionMismatch means a sub-panel does not have the size its
	// layout placement assumes.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrParse means a scraped forecast cell has an unexpected format.
	ErrParse = errors.New("parse forecast cell")
)
