package webclip

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/porticus-lab/webclip/pdf"
)

// PreparePage turns one encoded image into a page image for [pdf.Build].
// index is the 0-based page position and determines the resource name.
//
// A baseline RGB JPEG is embedded byte for byte. Every other input (PNG,
// GIF, BMP, TIFF, WebP, or a JPEG that cannot go under /DCTDecode as it
// is) is decoded and re-encoded as JPEG at the configured quality.
func PreparePage(data []byte, index int, opts ...Option) (pdf.PageImage, error) {
	cfg := newConfig(opts)
	return cfg.preparePage(data, index)
}

// EncodePage encodes a decoded image as the JPEG page image for page
// index.
func EncodePage(img image.Image, index int, opts ...Option) (pdf.PageImage, error) {
	cfg := newConfig(opts)
	return cfg.encodePage(img, index)
}

func (cfg *config) preparePage(data []byte, index int) (pdf.PageImage, error) {
	if len(data) == 0 {
		return pdf.PageImage{}, fmt.Errorf("webclip: image %d: %w", index+1, ErrEmptyImage)
	}

	if info, err := pdf.InspectJPEG(data); err == nil {
		err := info.Embeddable()
		if err == nil {
			return pdf.PageImage{
				Name:   pdf.DefaultName(index),
				Width:  info.Width,
				Height: info.Height,
				Data:   data,
			}, nil
		}
		if cfg.strictJPEG {
			return pdf.PageImage{}, fmt.Errorf("webclip: image %d: %w", index+1, err)
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return pdf.PageImage{}, fmt.Errorf("webclip: decoding image %d: %w", index+1, err)
	}
	return cfg.encodePage(img, index)
}

func (cfg *config) encodePage(img image.Image, index int) (pdf.PageImage, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return pdf.PageImage{}, fmt.Errorf("webclip: image %d: %w", index+1, pdf.ErrInvalidDimensions)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: cfg.quality}); err != nil {
		return pdf.PageImage{}, fmt.Errorf("webclip: encoding image %d: %w", index+1, err)
	}
	return pdf.PageImage{
		Name:   pdf.DefaultName(index),
		Width:  b.Dx(),
		Height: b.Dy(),
		Data:   buf.Bytes(),
	}, nil
}

// flatten returns an image that image/jpeg writes with three components:
// gray images are widened to RGB and translucent pixels are composed over
// white.
func flatten(img image.Image) image.Image {
	_, gray := img.(*image.Gray)
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() && !gray {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
