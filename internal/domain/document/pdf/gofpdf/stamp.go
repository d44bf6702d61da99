package gofpdf

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"

	"tradedocs/go_backend/internal/domain/stamp"
)

const (
	stampImage  = "stamp"
	stampBottom = 30.0
)

// overlayStamp overlays a raster data URI at the bottom right of the last page.
// Anything that is not an embeddable PNG or JPEG is skipped without error,
// which covers legacy stamps stored as raw SVG.
func (p *page) overlayStamp(value string) {
	if !stamp.IsRasterDataURI(value) {
		return
	}
	mediaType, data, err := stamp.DecodeDataURI(value)
	if err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	if mediaType != "image/png" {
		opts.ImageType = "JPG"
	}

	w, h, ok := probeImage(data, opts)
	if !ok {
		return
	}

	info := p.pdf.RegisterImageOptionsReader(stampImage, opts, bytes.NewReader(data))
	if info == nil || !p.pdf.Ok() {
		return
	}
	dispH := stamp.DisplayWidth * h / w
	x := pageW - margin - stamp.DisplayWidth
	y := pageH - stampBottom - dispH
	p.pdf.ImageOptions(stampImage, x, y, stamp.DisplayWidth, dispH, false, opts, 0, "")
}

// probeImage parses the image on a scratch document so a corrupt payload
// cannot put the real one into an error state.
func probeImage(data []byte, opts gofpdf.ImageOptions) (float64, float64, bool) {
	scratch := gofpdf.New("P", "pt", "A4", "")
	info := scratch.RegisterImageOptionsReader(stampImage, opts, bytes.NewReader(data))
	if info == nil || !scratch.Ok() {
		return 0, 0, false
	}
	w, h := info.Width(), info.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
