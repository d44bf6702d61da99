package gofpdf

import (
	"math"

	"tradedocs/go_backend/internal/domain/document"
)

var colWidths = [5]float64{contentW * 0.40, contentW * 0.15, contentW * 0.15, contentW * 0.15, contentW * 0.15}
var colAligns = [5]string{"L", "R", "R", "R", "R"}

const (
	cellPad = 8.0
	rowPad  = 6.0
)

func (g *Generator) Invoice(doc document.MonetaryDocument, supplier *document.Supplier) ([]byte, error) {
	d := doc.Normalized()
	totals := d.Totals()

	p := newPage(d.Title())
	p.invoiceHeader(d)
	p.parties(d)
	p.itemsTable(d)
	p.totals(d, totals)
	p.notes(d.Notes)
	p.bankDetails(d.BankDetails)
	if supplier != nil {
		p.overlayStamp(supplier.Stamp)
	}
	return p.output()
}

func (p *page) invoiceHeader(d document.MonetaryDocument) {
	y := margin

	p.font("B", 32, cInk)
	p.cell(margin, y, contentW*0.6, 32, d.Title(), "L")

	label := "INVOICE DETAILS"
	if d.DocumentType == document.TypeProforma {
		label = "PROFORMA INVOICE DETAILS"
	}
	number := d.InvoiceNumber
	if number == "" {
		number = "N/A"
	}
	rx, rw := margin+contentW*0.5, contentW*0.5
	p.font("", 8, cMuted)
	p.cell(rx, y+2, rw, 10, label, "R")
	p.font("B", 10, cInk)
	p.cell(rx, p.pdf.GetY()+2, rw, 12, "#"+number, "R")
	p.font("", 9, cMuted)
	p.cell(rx, p.pdf.GetY()+2, rw, 11, document.FormatDateEU(d.Date), "R")

	ruleY := y + 52
	p.rule(ruleY, 2, cInk)
	p.pdf.SetY(ruleY + 20)
}

type partyLine struct {
	text string
	bold bool
}

func partyLines(pt document.Party, from bool) []partyLine {
	ph := [5]string{"Client Name", "Client Address", "client@email.com", "Client Phone", "Client Country"}
	if from {
		ph = [5]string{"Your Company Name", "Your Address", "your@email.com", "Your Phone", "Your Country"}
	}
	lines := []partyLine{
		{or(pt.Name, ph[0]), true},
		{or(pt.Address, ph[1]), false},
		{or(pt.Email, ph[2]), false},
		{or(pt.Phone, ph[3]), false},
		{or(pt.Country, ph[4]), false},
	}
	if pt.PIVA != "" {
		lines = append(lines, partyLine{"P.IVA: " + pt.PIVA, false})
	}
	if pt.CF != "" {
		lines = append(lines, partyLine{"CF: " + pt.CF, false})
	}
	return lines
}

func (p *page) parties(d document.MonetaryDocument) {
	top := p.pdf.GetY()
	colW := contentW * 0.48
	left := p.partyColumn(margin, top, colW, "From:", partyLines(d.From, true))
	right := p.partyColumn(pageW-margin-colW, top, colW, "To:", partyLines(d.To, false))
	p.pdf.SetY(math.Max(left, right) + 20)
}

// partyColumn draws one party block and returns its bottom y.
func (p *page) partyColumn(x, y, w float64, heading string, lines []partyLine) float64 {
	p.font("B", 11, cInk)
	p.cell(x, y, w, 14, heading, "L")
	y += 18
	for _, l := range lines {
		if l.bold {
			p.font("B", 9, cInk)
		} else {
			p.font("", 9, cText)
		}
		for _, s := range p.split(l.text, w) {
			p.rawCell(x, y, w, lineH, s, "L")
			y += lineH
		}
	}
	return y
}

func (p *page) tableHeader() {
	y := p.pdf.GetY()
	h := 9 + 2*rowPad
	setFill(p.pdf, cInk)
	p.pdf.Rect(margin, y, contentW, h, "F")
	p.font("B", 9, cWhite)
	x := margin
	for i, title := range [5]string{"Description", "Qty", "Unit", "Rate", "Amount"} {
		p.cell(x+cellPad, y+rowPad, colWidths[i]-2*cellPad, 9, title, colAligns[i])
		x += colWidths[i]
	}
	p.pdf.SetY(y + h)
}

func (p *page) itemsTable(d document.MonetaryDocument) {
	p.ensureSpace(60)
	p.tableHeader()

	for _, it := range d.LineItems {
		p.font("", 9, cInk)
		desc := p.split(or(it.Description, "-"), colWidths[0]-2*cellPad)
		h := float64(len(desc))*lineH + 2*rowPad

		y := p.pdf.GetY()
		if y+h > pageH-margin {
			p.pdf.AddPage()
			p.tableHeader()
			p.font("", 9, cInk)
			y = p.pdf.GetY()
		}

		unit := ""
		if it.Unit != document.UnitNone {
			unit = string(it.Unit)
		}
		cols := [5]string{
			"",
			document.FormatQuantity(it.Quantity),
			unit,
			document.FormatMoney(d.Currency, it.Rate.Float()),
			document.FormatMoney(d.Currency, it.Amount.Float()),
		}

		for i, line := range desc {
			p.rawCell(margin+cellPad, y+rowPad+float64(i)*lineH, colWidths[0]-2*cellPad, lineH, line, "L")
		}
		x := margin + colWidths[0]
		for i := 1; i < len(cols); i++ {
			p.cell(x+cellPad, y+rowPad, colWidths[i]-2*cellPad, lineH, cols[i], colAligns[i])
			x += colWidths[i]
		}

		setDraw(p.pdf, cRule)
		p.pdf.SetLineWidth(1)
		p.pdf.Line(margin, y+h, pageW-margin, y+h)
		p.pdf.SetY(y + h)
	}
	p.pdf.SetY(p.pdf.GetY() + 20)
}

func (p *page) totals(d document.MonetaryDocument, t document.Totals) {
	rows := 2
	if d.VATEnabled {
		rows++
	}
	const rowH = 19.0
	y := p.ensureSpace(float64(rows)*rowH + 10)

	w := contentW * 0.5
	x := pageW - margin - w
	row := func(label, value string) {
		p.font("", 9, cMuted)
		p.cell(x, y+5, w/2, 9, label, "L")
		p.font("B", 9, cInk)
		p.cell(x+w/2, y+5, w/2, 9, value, "R")
		y += rowH
	}

	row("Subtotal:", document.FormatMoney(d.Currency, t.Subtotal))
	if d.VATEnabled {
		row("VAT ("+document.FormatPercent(d.VATRate)+"%):", document.FormatMoney(d.Currency, t.VATAmount))
	}

	setDraw(p.pdf, cInk)
	p.pdf.SetLineWidth(2)
	p.pdf.Line(x, y+2, pageW-margin, y+2)
	y += 2
	p.font("B", 10, cInk)
	p.cell(x, y+8, w/2, 10, "Total "+string(d.ShippingTerm)+":", "L")
	p.cell(x+w/2, y+8, w/2, 10, document.FormatMoney(d.Currency, t.Total), "R")
	p.pdf.SetY(y + rowH + 5 + 20)
}

func (p *page) notes(notes string) {
	if isBlank(notes) {
		return
	}
	y := p.ensureSpace(40)
	p.font("B", 11, cInk)
	p.cell(margin, y, contentW, 14, "Notes:", "L")
	p.pdf.SetXY(margin, p.pdf.GetY()+4)
	p.font("", 9, cText)
	p.paragraph(notes, contentW, 13.5, "L")
	p.pdf.SetY(p.pdf.GetY() + 20)
}

func (p *page) bankDetails(b document.BankDetails) {
	lines := []string{}
	if b.BankName != "" {
		lines = append(lines, "Bank: "+b.BankName)
	}
	lines = append(lines,
		"Account Name: "+or(b.AccountName, "N/A"),
		"IBAN: "+or(b.IBAN, "N/A"),
		"BIC: "+or(b.BIC, "N/A"),
	)

	y := p.ensureSpace(15 + 18 + float64(len(lines))*lineH)
	p.rule(y, 1, cRule)
	y += 15
	p.font("B", 11, cInk)
	p.cell(margin, y, contentW, 14, "Bank Details:", "L")
	y += 18
	p.font("", 9, cText)
	for _, l := range lines {
		p.cell(margin, y, contentW, lineH, l, "L")
		y += lineH
	}
}
