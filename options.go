package webclip

import (
	"runtime"
	"time"
)

// DefaultQuality is the JPEG quality used when re-encoding page images.
const DefaultQuality = 92

// config holds internal configuration shared by a Capturer and the
// page preparation functions.
type config struct {
	chromePath   string
	timeout      time.Duration
	noSandbox    bool
	headless     string
	autoDownload bool

	quality    int
	workers    int
	strictJPEG bool
}

func defaultConfig() config {
	return config{
		timeout:  30 * time.Second,
		headless: "new",
		quality:  DefaultQuality,
		workers:  runtime.NumCPU(),
	}
}

func newConfig(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// Option configures a [Capturer] or a page preparation call.
type Option func(*config)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithTimeout sets the maximum duration for a single capture.
// Defaults to 30 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *config) {
		c.noSandbox = true
	}
}

// WithAutoDownload downloads a Chromium build if no browser path is
// configured and none is installed. The download is cached, so only the
// first Capturer pays for it.
func WithAutoDownload() Option {
	return func(c *config) {
		c.autoDownload = true
	}
}

// WithQuality sets the JPEG quality, 1 to 100, used for images that have
// to be re-encoded. Out of range values are clamped. Defaults to
// [DefaultQuality].
func WithQuality(q int) Option {
	return func(c *config) {
		c.quality = min(max(q, 1), 100)
	}
}

// WithWorkers sets how many images are prepared in parallel.
// Values below 1 mean one worker. Defaults to the number of CPUs.
func WithWorkers(n int) Option {
	return func(c *config) {
		c.workers = max(n, 1)
	}
}

// WithStrictJPEG makes JPEG inputs that cannot be embedded as they are
// (progressive, grayscale, CMYK, ...) an error instead of re-encoding
// them.
func WithStrictJPEG() Option {
	return func(c *config) {
		c.strictJPEG = true
	}
}
