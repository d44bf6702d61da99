package gofpdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW    = 595.28
	pageH    = 841.89
	margin   = 40.0
	contentW = pageW - 2*margin

	lineH = 12.0
)

var (
	cInk   = [3]int{0, 0, 0}
	cText  = [3]int{51, 51, 51}
	cMuted = [3]int{102, 102, 102}
	cRule  = [3]int{221, 221, 221}
	cWhite = [3]int{255, 255, 255}
)

const MissingDataMessage = "Missing required data"

type Generator struct{}

func New() *Generator { return &Generator{} }

// page wraps one gofpdf document with the cp1252 translator the core
// fonts need. Strings passed to cell and split are UTF-8.
type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func newPage(title string) *page {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.SetCellMargin(0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("tradedocs", true)
	pdf.AddPage()
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDraw(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

func (p *page) font(style string, size float64, c [3]int) {
	p.pdf.SetFont("Helvetica", style, size)
	setText(p.pdf, c)
}

// cell writes one line at (x, y) and leaves the cursor below it.
func (p *page) cell(x, y, w, h float64, s, align string) {
	p.pdf.SetXY(x, y)
	p.pdf.CellFormat(w, h, p.tr(s), "", 2, align, false, 0, "")
}

// split wraps s to width w, keeping embedded line breaks. The returned
// lines are already translated and must be drawn with rawCell.
func (p *page) split(s string, w float64) []string {
	var out []string
	for _, b := range p.pdf.SplitLines([]byte(p.tr(s)), w) {
		out = append(out, string(b))
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

func (p *page) rawCell(x, y, w, h float64, s, align string) {
	p.pdf.SetXY(x, y)
	p.pdf.CellFormat(w, h, s, "", 2, align, false, 0, "")
}

func (p *page) rule(y, width float64, c [3]int) {
	setDraw(p.pdf, c)
	p.pdf.SetLineWidth(width)
	p.pdf.Line(margin, y, pageW-margin, y)
}

// ensureSpace starts a new page when needed points do not fit above the
// bottom margin, and returns the y to continue at.
func (p *page) ensureSpace(needed float64) float64 {
	y := p.pdf.GetY()
	if y+needed > pageH-margin {
		p.pdf.AddPage()
		return margin
	}
	return y
}

// paragraph draws wrapped text starting at the cursor, breaking pages
// line by line.
func (p *page) paragraph(s string, w, h float64, align string) {
	x := p.pdf.GetX()
	for _, line := range p.split(s, w) {
		y := p.ensureSpace(h)
		p.rawCell(x, y, w, h, line, align)
	}
}

func (p *page) output() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("document pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Placeholder renders a single page carrying message.
func (g *Generator) Placeholder(message string) ([]byte, error) {
	p := newPage(message)
	p.font("", 12, cInk)
	p.cell(margin, margin, contentW, 16, message, "L")
	return p.output()
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
