// Package webclip turns web page screenshots and other images into
// image-only PDF documents.
//
// # Images to PDF
//
// [Compose] builds a document with one page per image, in input order.
// Each page is exactly as large as its image, one PDF unit per pixel:
//
//	res, err := webclip.Compose(ctx, [][]byte{shot1, shot2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res.WriteToFile("clips.pdf", 0o644)
//
// Baseline RGB JPEGs are embedded byte for byte. PNG, GIF, BMP, TIFF and
// WebP inputs, and JPEGs that a PDF reader cannot take as they are, are
// re-encoded as JPEG first. Use [WithQuality] to pick the JPEG quality,
// [WithWorkers] to bound the parallelism and [WithStrictJPEG] to reject
// unsuitable JPEGs instead of converting them.
//
// The serializer itself lives in package [github.com/porticus-lab/webclip/pdf]
// and can be used directly with prepared [pdf.PageImage] values:
//
//	data, err := pdf.Build([]pdf.PageImage{{Width: 800, Height: 600, Data: jpg}})
//
// # Capturing web pages
//
// A [Capturer] drives a headless Chrome via the DevTools Protocol and
// reuses the browser across captures:
//
//	c, err := webclip.NewCapturer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	clip, err := c.CaptureURL(ctx, "https://example.com", nil)
//	clip, err  = c.CaptureElement(ctx, "https://example.com", "main", nil)
//	clip, err  = c.CaptureRegion(ctx, "https://example.com", webclip.Rect{Y: 400, Width: 600, Height: 300}, nil)
//	res, err  := c.ClipToPDF(ctx, []string{"https://a.example", "https://b.example"}, nil)
//
// Use [CaptureConfig] to control the viewport, the device scale and how much
// of the page is captured:
//
//	cc := &webclip.CaptureConfig{
//	    Viewport: webclip.Mobile,
//	    Mode:     webclip.ModeScroll,
//	}
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	c, err := webclip.NewCapturer(webclip.WithAutoDownload())
//
// A [Result] gives flexible access to the generated PDF bytes:
//
//	res.Bytes()                       // []byte
//	res.Base64()                      // base64 string (RFC 4648)
//	res.DataURL()                     // data:application/pdf;base64,...
//	res.Reader()                      // *bytes.Reader
//	res.WriteTo(w)                    // io.WriterTo
//	res.WriteToFile("out.pdf", 0o644) // write to disk
package webclip
