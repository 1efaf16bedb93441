package webclip

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Clip is one screenshot taken from a web page.
type Clip struct {
	Title      string
	URL        string
	Image      []byte // PNG
	Width      int    // in device pixels
	Height     int    // in device pixels
	CapturedAt time.Time
}

// Filename returns the file name of the clip as the n-th clip of its
// page. See [ClipFilename].
func (c *Clip) Filename(n int) string {
	return ClipFilename(c.Title, n, ".png")
}

// Capturer takes screenshots of web pages and turns them into PDF
// documents.
//
// A Capturer manages a headless browser instance that is reused across
// multiple captures for performance. It is safe for concurrent use.
//
// Call [Capturer.Close] when the Capturer is no longer needed to release
// browser resources.
type Capturer struct {
	cfg           config
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewCapturer creates a Capturer with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Capturer.Close] when finished.
func NewCapturer(opts ...Option) (*Capturer, error) {
	cfg := newConfig(opts)

	path, err := browserPath(cfg)
	if err != nil {
		return nil, err
	}
	cfg.chromePath = path

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("webclip: starting browser: %w", err)
	}

	return &Capturer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Capturer, including the
// browser process. Close is idempotent.
func (c *Capturer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// CaptureURL takes a screenshot of the web page at rawURL.
// If cc is nil, [DefaultCaptureConfig] values are used.
func (c *Capturer) CaptureURL(ctx context.Context, rawURL string, cc *CaptureConfig) (*Clip, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := checkURL(rawURL); err != nil {
		return nil, err
	}
	return c.capture(ctx, rawURL, cc, modeShot(cc))
}

// CaptureFile takes a screenshot of a local HTML file.
// If cc is nil, [DefaultCaptureConfig] values are used.
func (c *Capturer) CaptureFile(ctx context.Context, path string, cc *CaptureConfig) (*Clip, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("webclip: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("webclip: %w", err)
	}
	return c.capture(ctx, "file://"+abs, cc, modeShot(cc))
}

// CaptureHTML renders an HTML string and takes a screenshot of it.
// If cc is nil, [DefaultCaptureConfig] values are used.
func (c *Capturer) CaptureHTML(ctx context.Context, html string, cc *CaptureConfig) (*Clip, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "webclip-*.html")
	if err != nil {
		return nil, fmt.Errorf("webclip: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("webclip: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("webclip: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("webclip: resolving path: %w", err)
	}
	clip, err := c.capture(ctx, "file://"+abs, cc, modeShot(cc))
	if err != nil {
		return nil, err
	}
	clip.URL = ""
	return clip, nil
}

// CaptureElement takes a screenshot of the first element on the page at
// rawURL that matches the CSS selector. The element is scrolled into
// view first. cc.Mode is ignored.
func (c *Capturer) CaptureElement(ctx context.Context, rawURL, selector string, cc *CaptureConfig) (*Clip, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := checkURL(rawURL); err != nil {
		return nil, err
	}
	return c.capture(ctx, rawURL, cc, func(ctx context.Context, _ CaptureConfig) ([]byte, error) {
		var buf []byte
		err := chromedp.Screenshot(selector, &buf, chromedp.NodeVisible, chromedp.ByQuery).Do(ctx)
		return buf, err
	})
}

// CaptureRegion takes a screenshot of the rectangle r, in CSS pixels
// relative to the top-left corner of the document, of the page at rawURL.
// The rectangle may extend beyond the viewport. cc.Mode is ignored.
func (c *Capturer) CaptureRegion(ctx context.Context, rawURL string, r Rect, cc *CaptureConfig) (*Clip, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if err := checkURL(rawURL); err != nil {
		return nil, err
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, ErrEmptySelection
	}
	return c.capture(ctx, rawURL, cc, func(ctx context.Context, _ CaptureConfig) ([]byte, error) {
		return page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithCaptureBeyondViewport(true).
			WithClip(&page.Viewport{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Scale: 1}).
			Do(ctx)
	})
}

// ClipToPDF captures every URL with [Capturer.CaptureURL] and returns a
// PDF document with one page per URL, in order.
func (c *Capturer) ClipToPDF(ctx context.Context, urls []string, cc *CaptureConfig) (*Result, error) {
	if len(urls) == 0 {
		return nil, ErrNoPages
	}
	images := make([][]byte, 0, len(urls))
	for _, u := range urls {
		clip, err := c.CaptureURL(ctx, u, cc)
		if err != nil {
			return nil, err
		}
		images = append(images, clip.Image)
	}
	return c.cfg.compose(ctx, images)
}

// shootFunc takes the screenshot once the page is ready and returns PNG
// bytes.
type shootFunc func(ctx context.Context, cc CaptureConfig) ([]byte, error)

// capture performs navigation and hands the ready page to shoot.
func (c *Capturer) capture(ctx context.Context, targetURL string, cc *CaptureConfig, shoot shootFunc) (*Clip, error) {
	resolved := cc.resolved()
	width, height := cc.dimensions()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	var (
		title string
		buf   []byte
	)
	if err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(width, height, chromedp.EmulateScale(resolved.DeviceScaleFactor)),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady(resolved.WaitSelector, chromedp.ByQuery),
		chromedp.Title(&title),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, err = shoot(ctx, resolved)
			return err
		}),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("webclip: capture failed: %w", err)
	}

	size, err := png.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return nil, fmt.Errorf("webclip: reading screenshot: %w", err)
	}
	return &Clip{
		Title:      title,
		URL:        targetURL,
		Image:      buf,
		Width:      size.Width,
		Height:     size.Height,
		CapturedAt: time.Now(),
	}, nil
}

// modeShot returns the screenshot step for cc.Mode.
func modeShot(cc *CaptureConfig) shootFunc {
	switch cc.resolved().Mode {
	case ModeFullPage:
		return func(ctx context.Context, _ CaptureConfig) ([]byte, error) {
			var buf []byte
			// Quality 100 makes chromedp produce PNG.
			err := chromedp.FullScreenshot(&buf, 100).Do(ctx)
			return buf, err
		}
	case ModeScroll:
		return scrollShot
	default:
		return func(ctx context.Context, _ CaptureConfig) ([]byte, error) {
			return page.CaptureScreenshot().
				WithFormat(page.CaptureScreenshotFormatPng).
				Do(ctx)
		}
	}
}

const metricsJS = `({
	scrollHeight: Math.max(document.documentElement.scrollHeight, document.body ? document.body.scrollHeight : 0),
	width: window.innerWidth,
	height: window.innerHeight,
	scale: window.devicePixelRatio
})`

// scrollShot scrolls through the page one viewport at a time, takes a
// screenshot at every position and stitches them together.
func scrollShot(ctx context.Context, cc CaptureConfig) ([]byte, error) {
	var m struct {
		ScrollHeight float64 `json:"scrollHeight"`
		Width        float64 `json:"width"`
		Height       float64 `json:"height"`
		Scale        float64 `json:"scale"`
	}
	if err := chromedp.Evaluate(metricsJS, &m).Do(ctx); err != nil {
		return nil, fmt.Errorf("reading page metrics: %w", err)
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, ErrEmptySelection
	}

	var (
		parts   []Part
		covered float64
	)
	for step := 0; covered < m.ScrollHeight && step < cc.MaxScrollSteps; step++ {
		var scrollY float64
		js := fmt.Sprintf("window.scrollTo(0, %d), window.scrollY", round(covered))
		if err := chromedp.Evaluate(js, &scrollY).Do(ctx); err != nil {
			return nil, fmt.Errorf("scrolling: %w", err)
		}
		if err := chromedp.Sleep(cc.ScrollDelay).Do(ctx); err != nil {
			return nil, err
		}

		buf, err := page.CaptureScreenshot().WithFormat(page.CaptureScreenshotFormatPng).Do(ctx)
		if err != nil {
			return nil, err
		}
		img, err := png.Decode(bytes.NewReader(buf))
		if err != nil {
			return nil, fmt.Errorf("decoding screenshot: %w", err)
		}
		parts = append(parts, Part{
			Image:   img,
			Visible: Rect{Width: m.Width, Height: m.Height},
			OffsetY: scrollY,
		})
		covered = scrollY + m.Height
	}

	stitched, err := Stitch(m.Width, min(covered, m.ScrollHeight), m.Scale, parts)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := png.Encode(&out, stitched); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func checkURL(rawURL string) error {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return fmt.Errorf("webclip: invalid URL %q: %w", rawURL, err)
	}
	return nil
}

func (c *Capturer) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// --- Package-level convenience functions ---

// CaptureURL takes a screenshot of a web page using a temporary
// [Capturer]. For repeated use, create a [Capturer] with [NewCapturer] to
// reuse the browser instance.
func CaptureURL(ctx context.Context, rawURL string, cc *CaptureConfig, opts ...Option) (*Clip, error) {
	capt, err := NewCapturer(opts...)
	if err != nil {
		return nil, err
	}
	defer capt.Close()
	return capt.CaptureURL(ctx, rawURL, cc)
}

// ClipToPDF captures web pages into a PDF using a temporary [Capturer].
func ClipToPDF(ctx context.Context, urls []string, cc *CaptureConfig, opts ...Option) (*Result, error) {
	capt, err := NewCapturer(opts...)
	if err != nil {
		return nil, err
	}
	defer capt.Close()
	return capt.ClipToPDF(ctx, urls, cc)
}
