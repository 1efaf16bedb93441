package pdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by [Build] and [InspectJPEG].
var (
	// ErrMissingInput is returned when Build is called without any pages.
	// A PDF with zero pages is not defined.
	ErrMissingInput = errors.New("pdf: no page images")

	// ErrInvalidDimensions is returned for a page whose width or height is
	// not a positive integer.
	ErrInvalidDimensions = errors.New("pdf: invalid image dimensions")

	// ErrEmptyImage is returned for a page without image data.
	ErrEmptyImage = errors.New("pdf: empty image data")

	// ErrInvalidName is returned when a resource name contains characters
	// that cannot appear unescaped in a PDF name token.
	ErrInvalidName = errors.New("pdf: invalid resource name")

	// ErrDuplicateName is returned when two pages share a resource name.
	ErrDuplicateName = errors.New("pdf: duplicate resource name")

	// ErrNotJPEG is returned by InspectJPEG for data that is not a
	// well-formed JPEG stream.
	ErrNotJPEG = errors.New("pdf: not a JPEG image")

	// ErrUnsupportedJPEG is returned for JPEG data that DCTDecode readers
	// are not required to handle: progressive, lossless, hierarchical and
	// arithmetic-coded images, or sample precision other than 8 bits.
	ErrUnsupportedJPEG = errors.New("pdf: unsupported JPEG coding process")
)

// PageError records a precondition failure for a single page image.
type PageError struct {
	Index int // 0-based position in the input list
	Err   error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Index+1, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
