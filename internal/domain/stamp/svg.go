package stamp

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize draws an SVG document width pixels wide, keeping the aspect
// ratio of its intrinsic size, onto a transparent canvas.
func Rasterize(svg []byte, width int) (*image.RGBA, error) {
	if err := checkWellFormed(svg); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	vb := icon.ViewBox
	if vb.W <= 0 || vb.H <= 0 {
		return nil, fmt.Errorf("%w: svg has no intrinsic size", ErrDecode)
	}

	height := scaledHeight(width, vb.W, vb.H)
	if height > maxHeight {
		return nil, fmt.Errorf("%w: rasterized height %d", ErrTooLarge, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	icon.SetTarget(0, 0, float64(width), float64(height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(width, height, scanner), 1)
	return img, nil
}

// checkWellFormed walks the token stream and requires a balanced document
// rooted at an svg element.
func checkWellFormed(svg []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(svg))
	dec.Strict = true
	depth, sawRoot := 0, false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				if t.Name.Local != "svg" || sawRoot {
					return fmt.Errorf("%w: root element is %q", ErrDecode, t.Name.Local)
				}
				sawRoot = true
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if !sawRoot || depth != 0 {
		return fmt.Errorf("%w: truncated svg", ErrDecode)
	}
	return nil
}
