package stamp

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	"golang.org/x/image/draw"
)

// NormalizeUpload turns an uploaded file into a stamp data URI. SVG goes
// through Normalize; PNG and JPEG wider than TargetWidth are downscaled,
// smaller ones are embedded as is.
func NormalizeUpload(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty upload", ErrUnsupportedFormat)
	}
	if s := string(data); IsSVG(s) || IsRasterDataURI(s) {
		return Normalize(s)
	}

	ct := http.DetectContentType(data)
	if ct != "image/png" && ct != "image/jpeg" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, ct)
	}
	if len(data) > MaxRasterBytes {
		return "", fmt.Errorf("%w: upload exceeds %d bytes", ErrTooLarge, MaxRasterBytes)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if cfg.Width <= TargetWidth {
		return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(data), nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return EncodePNG(Downscale(src, TargetWidth))
}

// Downscale resizes src to width pixels, preserving aspect ratio.
func Downscale(src image.Image, width int) *image.NRGBA {
	b := src.Bounds()
	height := scaledHeight(width, float64(b.Dx()), float64(b.Dy()))
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
