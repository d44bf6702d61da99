package stamp

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"strings"
)

const (
	// DisplayWidth is the stamp width on the page, in points.
	DisplayWidth = 150.0
	// TargetWidth oversamples DisplayWidth three times for print quality.
	TargetWidth = 450

	MaxRasterBytes = 2 << 20
	MaxSVGBytes    = 200 << 10
	maxHeight      = TargetWidth * 10
)

var (
	ErrUnsupportedFormat = errors.New("stamp: unsupported format")
	ErrDecode            = errors.New("stamp: decode failed")
	ErrTooLarge          = errors.New("stamp: input too large")
)

var rasterPrefixes = []string{"data:image/png", "data:image/jpeg", "data:image/jpg"}

// IsRasterDataURI reports whether s is a PNG or JPEG data URI, the only
// forms the PDF renderer embeds.
func IsRasterDataURI(s string) bool {
	head := strings.ToLower(s[:min(len(s), 16)])
	for _, p := range rasterPrefixes {
		if strings.HasPrefix(head, p) {
			return true
		}
	}
	return false
}

// IsSVG reports whether s is inline SVG markup. Leading XML comments,
// processing instructions and a doctype may precede the root element.
func IsSVG(s string) bool {
	t := strings.TrimLeft(strings.TrimPrefix(s, "\ufeff"), " \t\r\n")
	for {
		var end string
		switch {
		case strings.HasPrefix(t, "<!--"):
			end = "-->"
		case strings.HasPrefix(t, "<?"):
			end = "?>"
		case len(t) >= 9 && strings.EqualFold(t[:9], "<!doctype"):
			end = ">"
		default:
			return len(t) >= 4 && strings.EqualFold(t[:4], "<svg")
		}
		i := strings.Index(t, end)
		if i < 0 {
			return false
		}
		t = strings.TrimLeft(t[i+len(end):], " \t\r\n")
	}
}

// Normalize converts a stamp into a raster data URI. PNG and JPEG data
// URIs pass through unchanged; SVG is rasterized to TargetWidth pixels
// wide on a transparent background. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string) (string, error) {
	switch {
	case raw == "":
		return "", fmt.Errorf("%w: empty input", ErrUnsupportedFormat)
	case IsRasterDataURI(raw):
		if encodedSize(raw) > MaxRasterBytes {
			return "", fmt.Errorf("%w: raster exceeds %d bytes", ErrTooLarge, MaxRasterBytes)
		}
		return raw, nil
	case IsSVG(raw):
		if len(raw) > MaxSVGBytes {
			return "", fmt.Errorf("%w: svg exceeds %d bytes", ErrTooLarge, MaxSVGBytes)
		}
		img, err := Rasterize([]byte(raw), TargetWidth)
		if err != nil {
			return "", err
		}
		return EncodePNG(img)
	default:
		return "", ErrUnsupportedFormat
	}
}

// EncodePNG returns img as a PNG data URI.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("stamp: encode png: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func scaledHeight(width int, srcW, srcH float64) int {
	h := int(math.Round(float64(width) * srcH / srcW))
	if h < 1 {
		h = 1
	}
	return h
}

// encodedSize estimates the decoded payload size of a data URI.
func encodedSize(uri string) int {
	i := strings.IndexByte(uri, ',')
	if i < 0 {
		return len(uri)
	}
	payload := len(uri) - i - 1
	if strings.Contains(strings.ToLower(uri[:i]), ";base64") {
		return payload * 3 / 4
	}
	return payload
}
