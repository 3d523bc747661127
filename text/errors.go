package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoGlyph is returned when the font has no glyph for a rune.
	ErrNoGlyph = errors.New("text: no glyph for rune")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("text: font size must be positive")
)
