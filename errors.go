package webclip

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Capturer].
	ErrClosed = errors.New("webclip: capturer is closed")

	// ErrNoPages is returned when a document is requested without any
	// input images.
	ErrNoPages = errors.New("webclip: no images to compose")

	// ErrEmptyImage is returned for a zero-length image input.
	ErrEmptyImage = errors.New("webclip: empty image")

	// ErrEmptySelection is returned when a crop or stitch rectangle does
	// not cover any pixels.
	ErrEmptySelection = errors.New("webclip: selection is empty")
)
