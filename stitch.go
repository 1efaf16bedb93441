package webclip

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Rect is a rectangle in CSS pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Part is one viewport screenshot taken while scrolling through a region
// larger than the viewport.
type Part struct {
	// Image is the screenshot in device pixels.
	Image image.Image

	// Visible is the part of the screenshot that belongs to the region,
	// in CSS pixels relative to the viewport.
	Visible Rect

	// OffsetX and OffsetY locate Visible within the region, in CSS
	// pixels.
	OffsetX, OffsetY float64
}

// Crop cuts the selection r, given in CSS pixels relative to the viewport,
// out of a screenshot of that viewport. The screenshot may be larger than
// the viewport on high-density displays; the scale is derived from the
// two sizes. The selection is clamped to the screenshot.
func Crop(img image.Image, r Rect, viewport Viewport) (*image.RGBA, error) {
	b := img.Bounds()
	if viewport.Width <= 0 || viewport.Height <= 0 {
		return nil, ErrEmptySelection
	}
	scaleX := float64(b.Dx()) / float64(viewport.Width)
	scaleY := float64(b.Dy()) / float64(viewport.Height)

	sx := max(0, round(r.X*scaleX))
	sy := max(0, round(r.Y*scaleY))
	sw := min(round(r.Width*scaleX), b.Dx()-sx)
	sh := min(round(r.Height*scaleY), b.Dy()-sy)
	if sw <= 0 || sh <= 0 {
		return nil, ErrEmptySelection
	}

	dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.Draw(dst, dst.Bounds(), img, b.Min.Add(image.Pt(sx, sy)), draw.Src)
	return dst, nil
}

// Stitch assembles scrolled viewport parts into one image of a region of
// size width x height CSS pixels. scale is the device pixel ratio of the
// screenshots; values below or equal to zero mean 1. Areas no part
// covers stay transparent.
func Stitch(width, height, scale float64, parts []Part) (*image.RGBA, error) {
	if scale <= 0 {
		scale = 1
	}
	w, h := round(width*scale), round(height*scale)
	if w <= 0 || h <= 0 {
		return nil, ErrEmptySelection
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))

	for _, p := range parts {
		if p.Image == nil {
			continue
		}
		b := p.Image.Bounds()
		sx, sy := round(p.Visible.X*scale), round(p.Visible.Y*scale)
		sw, sh := round(p.Visible.Width*scale), round(p.Visible.Height*scale)
		dx, dy := round(p.OffsetX*scale), round(p.OffsetY*scale)

		dr := image.Rect(dx, dy, dx+sw, dy+sh)
		draw.Draw(canvas, dr, p.Image, b.Min.Add(image.Pt(sx, sy)), draw.Src)
	}
	return canvas, nil
}

func round(f float64) int {
	return int(math.Round(f))
}
