package gofpdf

import (
	"strings"

	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/narrative"
)

func (g *Generator) Inspection(req document.InspectionRequest, supplier *document.Supplier, client *document.Client) ([]byte, error) {
	if supplier == nil || client == nil {
		return g.Placeholder(MissingDataMessage)
	}

	p := newPage(narrative.Title)
	p.supplierHeader(*supplier)

	p.font("BU", 18, cInk)
	y := p.pdf.GetY()
	p.cell(margin, y, contentW, 22, narrative.Title, "C")
	p.pdf.SetXY(margin, p.pdf.GetY()+20)

	p.font("", 11, cInk)
	for _, para := range narrative.Paragraphs(*supplier, *client, req) {
		p.paragraph(para, contentW, 17.6, "L")
		p.pdf.SetXY(margin, p.pdf.GetY()+15)
	}

	p.attachments(req)
	p.overlayStamp(supplier.Stamp)
	return p.output()
}

func (p *page) supplierHeader(s document.Supplier) {
	y := margin
	p.font("B", 14, cInk)
	p.cell(margin, y, contentW, 18, s.Name, "L")
	y += 22

	lines := []string{
		s.Address,
		strings.TrimSpace(s.ZipCode + " " + s.City + ", " + s.Country),
		s.Email,
		s.Phone,
	}
	if s.VATNumber != "" {
		lines = append(lines, "P.IVA: "+s.VATNumber)
	}
	if s.CF != "" {
		lines = append(lines, "CF: "+s.CF)
	}
	p.font("", 9, cText)
	for _, l := range lines {
		p.cell(margin, y, contentW, lineH, l, "L")
		y += lineH
	}

	y += 10
	p.rule(y, 1, cInk)
	p.pdf.SetY(y + 30)
}

func (p *page) attachments(req document.InspectionRequest) {
	items := narrative.Attachments(req)
	y := p.ensureSpace(30 + 15 + 16 + float64(len(items))*14)
	y += 15
	p.rule(y, 1, cRule)
	y += 15
	p.font("B", 12, cInk)
	p.cell(margin, y, contentW, 14, narrative.AttachmentLabel, "L")
	y += 18
	p.font("", 10, cInk)
	for _, it := range items {
		p.cell(margin+10, y, contentW-10, 14, it, "L")
		y += 14
	}
	p.pdf.SetY(y)
}
