package core

import "errors"

// Construction errors.
var (
	// ErrInvalidSize indicates a surface or buffer with a zero or negative dimension.
	ErrInvalidSize = errors.New("invalid size")

	// ErrPaletteSize indicates a palette that does not have exactly PaletteSize entries.
	ErrPaletteSize = errors.New("palette must have 16 entries")
)
