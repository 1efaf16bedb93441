package webclip

import "time"

// Viewport represents browser window dimensions in CSS pixels.
type Viewport struct {
	Width  int64 // Width in CSS pixels.
	Height int64 // Height in CSS pixels.
}

// Common viewport sizes.
var (
	Desktop = Viewport{Width: 1280, Height: 800}
	Laptop  = Viewport{Width: 1440, Height: 900}
	FullHD  = Viewport{Width: 1920, Height: 1080}
	Tablet  = Viewport{Width: 768, Height: 1024}
	Mobile  = Viewport{Width: 390, Height: 844}
)

// Orientation represents the viewport orientation.
type Orientation int

const (
	// AsGiven uses the viewport dimensions unchanged. It is the default.
	AsGiven Orientation = iota
	// Landscape puts the longer side horizontally.
	Landscape
	// Portrait puts the longer side vertically.
	Portrait
)

// Mode selects what part of a page a capture covers.
type Mode int

const (
	// ModeViewport captures what is visible in the viewport.
	ModeViewport Mode = iota
	// ModeFullPage captures the whole scrollable page in one shot.
	ModeFullPage
	// ModeScroll scrolls through the page one viewport at a time and
	// stitches the screenshots together. Use it for pages whose layout
	// depends on the scroll position, such as lazily loaded images.
	ModeScroll
)

// CaptureConfig controls how a page is captured.
//
// A nil CaptureConfig or zero-value fields will use sensible defaults:
// a 1280x800 desktop viewport at device scale 1, capturing the visible
// viewport once the body element is ready.
type CaptureConfig struct {
	// Viewport is the browser window size. Defaults to Desktop.
	Viewport Viewport

	// Orientation swaps the viewport sides when they do not match.
	// Defaults to AsGiven.
	Orientation Orientation

	// DeviceScaleFactor is the device pixel ratio. Screenshots are this
	// many times larger than the viewport. Defaults to 1.
	DeviceScaleFactor float64

	// Mode selects viewport, full-page or scrolling capture.
	Mode Mode

	// WaitSelector is a CSS selector that must be ready before the
	// screenshot is taken. Defaults to "body".
	WaitSelector string

	// ScrollDelay is how long to wait after each scroll step in
	// ModeScroll so that the page can settle. Defaults to 150ms.
	ScrollDelay time.Duration

	// MaxScrollSteps bounds the number of screenshots in ModeScroll.
	// Defaults to 50.
	MaxScrollSteps int
}

// DefaultCaptureConfig returns a CaptureConfig with sensible defaults.
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		Viewport:          Desktop,
		Orientation:       AsGiven,
		DeviceScaleFactor: 1.0,
		Mode:              ModeViewport,
		WaitSelector:      "body",
		ScrollDelay:       150 * time.Millisecond,
		MaxScrollSteps:    50,
	}
}

// resolved returns a CaptureConfig with all zero values replaced by
// defaults.
func (c *CaptureConfig) resolved() CaptureConfig {
	d := DefaultCaptureConfig()
	if c == nil {
		return d
	}
	r := *c
	if r.Viewport.Width <= 0 || r.Viewport.Height <= 0 {
		r.Viewport = d.Viewport
	}
	if r.DeviceScaleFactor <= 0 {
		r.DeviceScaleFactor = d.DeviceScaleFactor
	}
	if r.WaitSelector == "" {
		r.WaitSelector = d.WaitSelector
	}
	if r.ScrollDelay <= 0 {
		r.ScrollDelay = d.ScrollDelay
	}
	if r.MaxScrollSteps <= 0 {
		r.MaxScrollSteps = d.MaxScrollSteps
	}
	return r
}

// dimensions returns the viewport width and height, accounting for
// orientation.
func (c *CaptureConfig) dimensions() (width, height int64) {
	r := c.resolved()
	w, h := r.Viewport.Width, r.Viewport.Height
	switch {
	case r.Orientation == Landscape && h > w, r.Orientation == Portrait && w > h:
		return h, w
	}
	return w, h
}
