// Package errs defines the sentinel errors shared by the color engine and
// the pixel pipeline. Callers wrap them with fmt.Errorf("...: %w") and
// test with errors.Is.
package errs

import "errors"

var (
	// ErrInvalidColorFormat reports a malformed hex or CSS color string.
	ErrInvalidColorFormat = errors.New("invalid color format")

	// ErrInvalidBufferDimensions reports a pixel buffer whose length does
	// not match width*height*4.
	ErrInvalidBufferDimensions = errors.New("invalid buffer dimensions")

	// ErrDegenerateInput reports too few colors or stops for an operation.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrConversionOverflow reports a color-space round trip that produced
	// non-finite output.
	ErrConversionOverflow = errors.New("conversion overflow")

	// ErrUnknownKind reports an unrecognized enum name (effect kind,
	// blend mode, color space, quality).
	ErrUnknownKind = errors.New("unknown kind")
)
