// webclip captures web pages and bundles images into image-only PDF files.
//
// Usage:
//
//	webclip build [options] <image>...
//	webclip capture [options] <url>...
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/porticus-lab/webclip"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch os.Args[1] {
	case "build":
		err = runBuild(ctx, os.Args[2:])
	case "capture":
		err = runCapture(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`webclip - web clips to PDF

Usage:
  webclip build [options] <image>...
  webclip capture [options] <url>...

Commands:
  build     Bundle JPEG, PNG, GIF, BMP, TIFF or WebP images into a PDF
  capture   Screenshot web pages and bundle the clips into a PDF

Common options:
  -o <file>         Output file, "-" for stdout (default: WebClip-<millis>.pdf)
  -q <quality>      JPEG quality for re-encoded images, 1-100 (default: 92)

Build options:
  -p <range>        Images to include, e.g. "1", "1-5", "1,3,5" (default: all)
  -strict           Fail on JPEGs that would need re-encoding

Capture options:
  -s <selector>     Clip the first element matching the CSS selector
  -full             Capture the full page in one screenshot
  -scroll           Capture the full page by scrolling and stitching
  -keep <dir>       Also save every clip as PNG in dir
  -auto-download    Download Chromium if no browser is installed
  -no-sandbox       Disable the Chrome sandbox (needed as root)

Examples:
  webclip build shot1.png shot2.jpg
  webclip build -p 2-3 -o picked.pdf *.png
  webclip capture -scroll https://example.com
  webclip capture -s main -keep clips -o - https://example.com > out.pdf
`)
}

// options holds the parsed command line of either command.
type options struct {
	output       string
	pageRange    string
	quality      int
	strict       bool
	selector     string
	full         bool
	scroll       bool
	keepDir      string
	autoDownload bool
	noSandbox    bool
	inputs       []string
}

// parseArgs parses the options of cmd. Options and inputs may be mixed.
func parseArgs(cmd string, args []string) (*options, error) {
	opts := &options{quality: webclip.DefaultQuality}

	value := func(i *int) (string, error) {
		name := args[*i]
		*i++
		if *i >= len(args) {
			return "", fmt.Errorf("%s requires an argument", name)
		}
		return args[*i], nil
	}

	for i := 0; i < len(args); i++ {
		var err error
		switch arg := args[i]; {
		case arg == "-o":
			opts.output, err = value(&i)
		case arg == "-q":
			var q string
			if q, err = value(&i); err == nil {
				opts.quality, err = strconv.Atoi(q)
				if err != nil || opts.quality < 1 || opts.quality > 100 {
					err = fmt.Errorf("invalid quality %q (1-100)", q)
				}
			}
		case arg == "-p" && cmd == "build":
			opts.pageRange, err = value(&i)
		case arg == "-strict" && cmd == "build":
			opts.strict = true
		case arg == "-s" && cmd == "capture":
			opts.selector, err = value(&i)
		case arg == "-full" && cmd == "capture":
			opts.full = true
		case arg == "-scroll" && cmd == "capture":
			opts.scroll = true
		case arg == "-keep" && cmd == "capture":
			opts.keepDir, err = value(&i)
		case arg == "-auto-download" && cmd == "capture":
			opts.autoDownload = true
		case arg == "-no-sandbox" && cmd == "capture":
			opts.noSandbox = true
		case arg == "-":
			return nil, fmt.Errorf("reading input from stdin is not supported")
		case strings.HasPrefix(arg, "-"):
			return nil, fmt.Errorf("unknown option: %s", arg)
		default:
			opts.inputs = append(opts.inputs, arg)
		}
		if err != nil {
			return nil, err
		}
	}

	if len(opts.inputs) == 0 {
		return nil, fmt.Errorf("no input specified")
	}
	if opts.full && opts.scroll {
		return nil, fmt.Errorf("-full and -scroll are mutually exclusive")
	}
	if opts.selector != "" && (opts.full || opts.scroll) {
		return nil, fmt.Errorf("-s cannot be combined with -full or -scroll")
	}
	return opts, nil
}

func (o *options) libOptions() []webclip.Option {
	lib := []webclip.Option{webclip.WithQuality(o.quality)}
	if o.strict {
		lib = append(lib, webclip.WithStrictJPEG())
	}
	if o.autoDownload {
		lib = append(lib, webclip.WithAutoDownload())
	}
	if o.noSandbox {
		lib = append(lib, webclip.WithNoSandbox())
	}
	return lib
}

// runBuild implements the "build" command.
func runBuild(ctx context.Context, args []string) error {
	opts, err := parseArgs("build", args)
	if err != nil {
		return err
	}

	indices, err := parsePageRange(opts.pageRange, len(opts.inputs))
	if err != nil {
		return fmt.Errorf("invalid page range %q: %w", opts.pageRange, err)
	}

	images := make([][]byte, 0, len(indices))
	for _, idx := range indices {
		data, err := os.ReadFile(opts.inputs[idx])
		if err != nil {
			return fmt.Errorf("reading image: %w", err)
		}
		images = append(images, data)
	}

	res, err := webclip.Compose(ctx, images, opts.libOptions()...)
	if err != nil {
		return err
	}
	return writeResult(res, opts.output)
}

// runCapture implements the "capture" command.
func runCapture(ctx context.Context, args []string) error {
	opts, err := parseArgs("capture", args)
	if err != nil {
		return err
	}

	c, err := webclip.NewCapturer(opts.libOptions()...)
	if err != nil {
		return err
	}
	defer c.Close()

	cc := webclip.DefaultCaptureConfig()
	switch {
	case opts.full:
		cc.Mode = webclip.ModeFullPage
	case opts.scroll:
		cc.Mode = webclip.ModeScroll
	}

	if opts.keepDir != "" {
		if err := os.MkdirAll(opts.keepDir, 0o755); err != nil {
			return fmt.Errorf("creating clip directory: %w", err)
		}
	}

	images := make([][]byte, 0, len(opts.inputs))
	counts := make(map[string]int)
	for _, u := range opts.inputs {
		var clip *webclip.Clip
		if opts.selector != "" {
			clip, err = c.CaptureElement(ctx, u, opts.selector, &cc)
		} else {
			clip, err = c.CaptureURL(ctx, u, &cc)
		}
		if err != nil {
			return fmt.Errorf("capturing %s: %w", u, err)
		}
		fmt.Fprintf(os.Stderr, "captured %s (%dx%d)\n", u, clip.Width, clip.Height)

		if opts.keepDir != "" {
			counts[clip.Title]++
			path := filepath.Join(opts.keepDir, clip.Filename(counts[clip.Title]))
			if err := os.WriteFile(path, clip.Image, 0o644); err != nil {
				return fmt.Errorf("saving clip: %w", err)
			}
		}
		images = append(images, clip.Image)
	}

	res, err := webclip.Compose(ctx, images, opts.libOptions()...)
	if err != nil {
		return err
	}
	return writeResult(res, opts.output)
}

var errTerminal = errors.New("refusing to write PDF data to a terminal")

// writeResult writes res to path, to stdout for "-" or to a new
// WebClip-<millis>.pdf in the working directory when path is empty.
func writeResult(res *webclip.Result, path string) error {
	switch path {
	case "-":
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errTerminal
		}
		_, err := res.WriteTo(os.Stdout)
		return err
	case "":
		path = webclip.PDFFilename(time.Now())
	}
	if err := res.WriteToFile(path, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d pages, %d bytes)\n", path, res.Pages(), res.Len())
	return nil
}

// parsePageRange converts a page range string to a slice of 0-based indices.
// Supported formats: "" (all), "3" (single page), "1-5" (range), "1,3,5" (list).
// Pages keep the order in which they are listed; repeats are dropped.
func parsePageRange(expr string, total int) ([]int, error) {
	if expr == "" {
		indices := make([]int, total)
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	var indices []int
	seen := make(map[int]bool)
	add := func(p int) {
		if !seen[p] {
			indices = append(indices, p-1)
			seen[p] = true
		}
	}

	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		start, end, isRange := strings.Cut(part, "-")
		if !isRange {
			p, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid page number: %s", part)
			}
			if p < 1 || p > total {
				return nil, fmt.Errorf("page %d out of bounds (1-%d)", p, total)
			}
			add(p)
			continue
		}

		first, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", start)
		}
		last, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return nil, fmt.Errorf("invalid page number: %s", end)
		}
		if first < 1 || last > total || first > last {
			return nil, fmt.Errorf("page range %d-%d out of bounds (1-%d)", first, last, total)
		}
		for p := first; p <= last; p++ {
			add(p)
		}
	}
	return indices, nil
}
