package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/document/pdf"
	"tradedocs/go_backend/internal/domain/narrative"
)

// PlaceholderHeader marks a PDF that only reports missing data.
const PlaceholderHeader = "X-Document-Placeholder"

type totalsResponse struct {
	document.Totals
	Formatted formattedTotals `json:"formatted"`
}

type formattedTotals struct {
	Subtotal  string `json:"subtotal"`
	VATAmount string `json:"vatAmount"`
	Total     string `json:"total"`
}

type narrativeResponse struct {
	Title       string   `json:"title"`
	Text        string   `json:"text"`
	Attachments []string `json:"attachments"`
}

func (h *Handlers) sendPDF(w http.ResponseWriter, r *http.Request, f pdf.File, err error) {
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	if f.Placeholder {
		w.Header().Set(PlaceholderHeader, "true")
	}
	writePDF(w, f)
}

// Totals computes the totals of an unsaved document.
func (h *Handlers) Totals(w http.ResponseWriter, r *http.Request) {
	var d document.MonetaryDocument
	if !decodeJSON(w, r, &d) {
		return
	}
	d = d.Normalized()
	t := d.Totals()
	writeJSON(w, http.StatusOK, totalsResponse{
		Totals: t,
		Formatted: formattedTotals{
			Subtotal:  document.FormatMoney(d.Currency, t.Subtotal),
			VATAmount: document.FormatMoney(d.Currency, t.VATAmount),
			Total:     document.FormatMoney(d.Currency, t.Total),
		},
	})
}

func (h *Handlers) RenderInvoice(w http.ResponseWriter, r *http.Request) {
	var d document.MonetaryDocument
	if !decodeJSON(w, r, &d) {
		return
	}
	f, err := h.PDF.Invoice(r.Context(), d)
	h.sendPDF(w, r, f, err)
}

func (h *Handlers) StoredInvoicePDF(w http.ResponseWriter, r *http.Request) {
	f, err := h.PDF.StoredInvoice(r.Context(), chi.URLParam(r, "id"))
	h.sendPDF(w, r, f, err)
}

func (h *Handlers) RenderInspection(w http.ResponseWriter, r *http.Request) {
	var req document.InspectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	f, err := h.PDF.Inspection(r.Context(), req)
	h.sendPDF(w, r, f, err)
}

func (h *Handlers) StoredInspectionPDF(w http.ResponseWriter, r *http.Request) {
	f, err := h.PDF.StoredInspection(r.Context(), chi.URLParam(r, "id"))
	h.sendPDF(w, r, f, err)
}

// InspectionPreview returns the letter text for an unsaved request, or
// the prompt to pick both parties.
func (h *Handlers) InspectionPreview(w http.ResponseWriter, r *http.Request) {
	var req document.InspectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.writeNarrative(w, r, req.Normalized())
}

func (h *Handlers) StoredInspectionNarrative(w http.ResponseWriter, r *http.Request) {
	req, err := h.PDF.InspectionRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	h.writeNarrative(w, r, req.Normalized())
}

func (h *Handlers) writeNarrative(w http.ResponseWriter, r *http.Request, req document.InspectionRequest) {
	supplier, client, err := h.PDF.Parties(r.Context(), req)
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	resp := narrativeResponse{
		Title: narrative.Title,
		Text:  narrative.Preview(supplier, client, req),
	}
	if supplier != nil && client != nil {
		resp.Attachments = narrative.Attachments(req)
	}
	writeJSON(w, http.StatusOK, resp)
}

// NewInvoice returns a blank invoice with today's defaults.
func (h *Handlers) NewInvoice(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, document.NewMonetaryDocument(h.Now()))
}

func (h *Handlers) NewInspectionRequest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, document.NewInspectionRequest(h.Now()))
}
