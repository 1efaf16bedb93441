package pdf

import (
	"encoding/binary"
	"fmt"
)

// JPEGProcess identifies the coding process declared by a JPEG
// start-of-frame marker.
type JPEGProcess byte

// Start-of-frame markers.
const (
	Baseline              JPEGProcess = 0xC0
	ExtendedSequential    JPEGProcess = 0xC1
	Progressive           JPEGProcess = 0xC2
	Lossless              JPEGProcess = 0xC3
	ArithmeticSequential  JPEGProcess = 0xC9
	ArithmeticProgressive JPEGProcess = 0xCA
	ArithmeticLossless    JPEGProcess = 0xCB

	differentialFirst JPEGProcess = 0xC5
	differentialLast  JPEGProcess = 0xCF
)

const (
	markerDHT  = 0xC4
	markerJPG  = 0xC8
	markerDAC  = 0xCC
	markerRST0 = 0xD0
	markerRST7 = 0xD7
	markerSOI  = 0xD8
	markerEOI  = 0xD9
	markerSOS  = 0xDA
	markerTEM  = 0x01

	maxFillBytes = 64
)

func (p JPEGProcess) String() string {
	switch p {
	case Baseline:
		return "baseline"
	case ExtendedSequential:
		return "extended sequential"
	case Progressive:
		return "progressive"
	case Lossless:
		return "lossless"
	case ArithmeticSequential, ArithmeticProgressive, ArithmeticLossless:
		return "arithmetic"
	}
	if p >= differentialFirst && p <= differentialLast {
		return "hierarchical"
	}
	return fmt.Sprintf("SOF 0x%02X", byte(p))
}

// JPEGInfo describes the frame header of a JPEG stream.
type JPEGInfo struct {
	Width      int
	Height     int
	Components int // 1 for grayscale, 3 for YCbCr/RGB, 4 for CMYK
	Precision  int // bits per sample
	Process    JPEGProcess
}

// Embeddable returns nil if the image can be placed under /DCTDecode
// with /ColorSpace /DeviceRGB and /BitsPerComponent 8 by Build.
func (info JPEGInfo) Embeddable() error {
	if info.Process != Baseline && info.Process != ExtendedSequential {
		return fmt.Errorf("%w: %s", ErrUnsupportedJPEG, info.Process)
	}
	if info.Precision != 8 {
		return fmt.Errorf("%w: %d-bit samples", ErrUnsupportedJPEG, info.Precision)
	}
	if info.Components != 3 {
		return fmt.Errorf("%w: %d components", ErrUnsupportedJPEG, info.Components)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return ErrInvalidDimensions
	}
	return nil
}

// InspectJPEG reads the markers of a JPEG stream up to the first
// start-of-frame segment and returns the frame parameters. The entropy
// coded data is not decoded.
func InspectJPEG(data []byte) (JPEGInfo, error) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != markerSOI {
		return JPEGInfo{}, ErrNotJPEG
	}

	pos := 2
	for pos < len(data) {
		if data[pos] != 0xFF {
			return JPEGInfo{}, fmt.Errorf("%w: expected marker at offset %d", ErrNotJPEG, pos)
		}
		fill := 0
		for pos < len(data) && data[pos] == 0xFF {
			pos++
			fill++
			if fill > maxFillBytes {
				return JPEGInfo{}, fmt.Errorf("%w: too many fill bytes", ErrNotJPEG)
			}
		}
		if pos >= len(data) {
			break
		}
		marker := data[pos]
		pos++

		switch {
		case marker == markerEOI, marker == markerSOS:
			return JPEGInfo{}, fmt.Errorf("%w: no frame header", ErrNotJPEG)
		case marker == markerTEM, marker >= markerRST0 && marker <= markerRST7:
			continue
		}

		if pos+2 > len(data) {
			break
		}
		length := int(binary.BigEndian.Uint16(data[pos:]))
		if length < 2 || pos+length > len(data) {
			return JPEGInfo{}, fmt.Errorf("%w: bad segment length at offset %d", ErrNotJPEG, pos)
		}
		segment := data[pos+2 : pos+length]
		pos += length

		if !isSOF(marker) {
			continue
		}
		if len(segment) < 6 {
			return JPEGInfo{}, fmt.Errorf("%w: short frame header", ErrNotJPEG)
		}
		return JPEGInfo{
			Precision:  int(segment[0]),
			Height:     int(binary.BigEndian.Uint16(segment[1:])),
			Width:      int(binary.BigEndian.Uint16(segment[3:])),
			Components: int(segment[5]),
			Process:    JPEGProcess(marker),
		}, nil
	}
	return JPEGInfo{}, fmt.Errorf("%w: truncated", ErrNotJPEG)
}

// CheckJPEG returns nil if data is a JPEG stream that Build can embed
// under /DCTDecode as an 8-bit RGB image of the given size.
func CheckJPEG(data []byte, width, height int) error {
	info, err := InspectJPEG(data)
	if err != nil {
		return err
	}
	if err := info.Embeddable(); err != nil {
		return err
	}
	if info.Width != width || info.Height != height {
		return fmt.Errorf("%w: JPEG is %dx%d, page declares %dx%d",
			ErrInvalidDimensions, info.Width, info.Height, width, height)
	}
	return nil
}

func isSOF(marker byte) bool {
	if marker < byte(Baseline) || marker > byte(differentialLast) {
		return false
	}
	switch marker {
	case markerDHT, markerJPG, markerDAC:
		return false
	}
	return true
}
