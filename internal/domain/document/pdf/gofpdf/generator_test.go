package gofpdf

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/narrative"
)

func pdfText(t *testing.T, data []byte) (string, int) {
	t.Helper()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			t.Fatalf("page %d text: %v", i, err)
		}
		b.WriteString(text)
	}
	return b.String(), r.NumPage()
}

// squash drops all whitespace, so wrapped PDF lines compare equal to the
// source text.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}

func imageCount(data []byte) int {
	return bytes.Count(data, []byte("/Subtype /Image"))
}

func pngStamp(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 90, 45))
	for y := 0; y < 45; y++ {
		for x := 0; x < 90; x++ {
			img.Set(x, y, color.NRGBA{B: 180, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func sampleInvoice() document.MonetaryDocument {
	return document.MonetaryDocument{
		InvoiceNumber: "2024-017",
		Date:          "2024-11-18",
		DocumentType:  document.TypeInvoice,
		Currency:      document.EUR,
		ShippingTerm:  document.ShippingCIF,
		From:          document.Party{Name: "Acme Srl", Address: "Via Roma 1", PIVA: "IT01234567890"},
		To:            document.Party{Name: "Matadi Imports"},
		LineItems: []document.LineItem{
			{Description: "Frozen chicken legs", Quantity: 2, Unit: document.UnitKG, Rate: 50},
			{Quantity: 1, Unit: document.UnitNone, Rate: 25.005},
		},
		BankDetails: document.BankDetails{IBAN: "IT60X0542811101000000123456"},
	}
}

func TestInvoiceWithoutVATOrNotes(t *testing.T) {
	data, err := New().Invoice(sampleInvoice(), nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text, pages := pdfText(t, data)
	if pages != 1 {
		t.Fatalf("pages = %d, want 1", pages)
	}
	for _, want := range []string{"INVOICE", "INVOICE DETAILS", "#2024-017", "18/11/2024", "From:", "To:",
		"Acme Srl", "P.IVA: IT01234567890", "Your Phone", "Client Address", "Frozen chicken legs",
		"Subtotal:", "Total CIF:", "Bank Details:", "Account Name: N/A", "BIC: N/A"} {
		if !strings.Contains(text, want) {
			t.Errorf("pdf text missing %q", want)
		}
	}
	for _, absent := range []string{"VAT (", "Notes:", "Bank:", "CF:", "None"} {
		if strings.Contains(text, absent) {
			t.Errorf("pdf text should not contain %q", absent)
		}
	}
}

func TestInvoiceWithVATAndNotes(t *testing.T) {
	d := sampleInvoice()
	d.DocumentType = document.TypeProforma
	d.VATEnabled = true
	d.VATRate = 22
	d.Notes = "Payment within 30 days.\nGoods travel at buyer's risk."
	d.BankDetails.BankName = "Banca Uno"

	data, err := New().Invoice(d, nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text, _ := pdfText(t, data)
	for _, want := range []string{"PROFORMA INVOICE DETAILS", "VAT (22%):", "Notes:", "Payment within 30 days.",
		"Goods travel at buyer's risk.", "Bank: Banca Uno"} {
		if !strings.Contains(text, want) {
			t.Errorf("pdf text missing %q", want)
		}
	}
}

func TestInvoiceStampOverlay(t *testing.T) {
	g := New()

	plain, err := g.Invoice(sampleInvoice(), &document.Supplier{Name: "Acme Srl"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := imageCount(plain); n != 0 {
		t.Fatalf("supplier without stamp embedded %d images", n)
	}

	stamped, err := g.Invoice(sampleInvoice(), &document.Supplier{Stamp: pngStamp(t)})
	if err != nil {
		t.Fatalf("render stamped: %v", err)
	}
	if n := imageCount(stamped); n != 1 {
		t.Fatalf("stamped invoice has %d images, want 1", n)
	}

	plainText, _ := pdfText(t, plain)
	stampedText, _ := pdfText(t, stamped)
	if plainText != stampedText {
		t.Fatal("stamp changed the text layout")
	}
}

func TestInvoiceSkipsUnusableStamps(t *testing.T) {
	for name, value := range map[string]string{
		"svg":     `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"></svg>`,
		"corrupt": "data:image/png;base64,bm90IGEgcG5n",
		"badb64":  "data:image/jpeg;base64,@@@",
	} {
		data, err := New().Invoice(sampleInvoice(), &document.Supplier{Stamp: value})
		if err != nil {
			t.Fatalf("%s: render failed: %v", name, err)
		}
		if n := imageCount(data); n != 0 {
			t.Fatalf("%s: embedded %d images", name, n)
		}
	}
}

func TestInvoiceManyItemsBreaksPages(t *testing.T) {
	d := sampleInvoice()
	d.LineItems = nil
	for i := 0; i < 80; i++ {
		d.LineItems = append(d.LineItems, document.LineItem{Description: "Pallet", Quantity: 1, Rate: 10})
	}

	data, err := New().Invoice(d, &document.Supplier{Stamp: pngStamp(t)})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text, pages := pdfText(t, data)
	if pages < 2 {
		t.Fatalf("pages = %d, want at least 2", pages)
	}
	if strings.Count(text, "Description") != pages {
		t.Fatalf("table header should repeat on each of %d pages", pages)
	}
	if imageCount(data) != 1 {
		t.Fatal("stamp should be drawn once")
	}
}

func TestInspection(t *testing.T) {
	s := &document.Supplier{
		Name: "Acme Srl", Address: "Via Roma 1", ZipCode: "20100", City: "Milano", Country: "Italia",
		VATNumber: "IT01234567890", Stamp: pngStamp(t),
	}
	c := &document.Client{Name: "Matadi Imports"}
	req := document.InspectionRequest{LicenseNumber: "LIC-42", InspectionDate: "2024-11-18", InspectionTime: "08:00"}

	data, err := New().Inspection(req, s, c)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text, _ := pdfText(t, data)
	for _, want := range []string{"RICHIESTA ISPEZIONE", "20100 Milano, Italia", "P.IVA: IT01234567890",
		"Matadi Imports", "Allegato:", "Fattura Proforma", "Licenza LIC-42", "Request for information"} {
		if !strings.Contains(text, want) {
			t.Errorf("pdf text missing %q", want)
		}
	}
	if strings.Contains(text, "CF:") {
		t.Error("empty CF should be omitted")
	}
	if imageCount(data) != 1 {
		t.Error("stamp missing")
	}
	if body := narrative.Text(*s, *c, req); !strings.Contains(squash(text), squash(body)) {
		t.Errorf("pdf body does not match the preview narrative:\n%s", body)
	}
}

func TestInspectionMissingPartyRendersPlaceholder(t *testing.T) {
	req := document.InspectionRequest{InspectionDate: "2024-11-18", InspectionTime: "08:00"}

	for _, tc := range []struct {
		name string
		s    *document.Supplier
		c    *document.Client
	}{
		{"no supplier", nil, &document.Client{Name: "Matadi Imports"}},
		{"no client", &document.Supplier{Name: "Acme Srl"}, nil},
	} {
		data, err := New().Inspection(req, tc.s, tc.c)
		if err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		text, pages := pdfText(t, data)
		if pages != 1 || !strings.Contains(text, MissingDataMessage) {
			t.Fatalf("%s: got %d pages, text %q", tc.name, pages, text)
		}
	}
}
