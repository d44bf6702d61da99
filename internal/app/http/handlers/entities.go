package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/editor"
	sentryutil "tradedocs/go_backend/internal/infra/sentry"
)

type saveResponse struct {
	editor.SaveResult
	Messages []dialog.Message `json:"messages"`
}

func (h *Handlers) respondSave(w http.ResponseWriter, r *http.Request, rec *dialog.Recorder, res editor.SaveResult, err error) {
	if err != nil {
		h.fail(w, r, err, rec)
		return
	}
	if res.Warning != "" {
		sentryutil.CaptureWarning(res.Warning, map[string]string{"path": r.URL.Path, "id": res.ID})
	}
	status := http.StatusOK
	if res.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, saveResponse{SaveResult: res, Messages: rec.Messages()})
}

func (h *Handlers) SaveSupplier(w http.ResponseWriter, r *http.Request) {
	var s document.Supplier
	if !decodeJSON(w, r, &s) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		s.ID = id
	}
	rec := &dialog.Recorder{}
	res, err := h.editor(rec).SaveSupplier(r.Context(), s)
	h.respondSave(w, r, rec, res, err)
}

func (h *Handlers) SaveClient(w http.ResponseWriter, r *http.Request) {
	var c document.Client
	if !decodeJSON(w, r, &c) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		c.ID = id
	}
	rec := &dialog.Recorder{}
	res, err := h.editor(rec).SaveClient(r.Context(), c)
	h.respondSave(w, r, rec, res, err)
}

func (h *Handlers) SaveInvoice(w http.ResponseWriter, r *http.Request) {
	var d document.MonetaryDocument
	if !decodeJSON(w, r, &d) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		d.ID = id
	}
	rec := &dialog.Recorder{}
	res, err := h.editor(rec).SaveInvoice(r.Context(), d)
	h.respondSave(w, r, rec, res, err)
}

func (h *Handlers) SaveInspectionRequest(w http.ResponseWriter, r *http.Request) {
	var req document.InspectionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if id := chi.URLParam(r, "id"); id != "" {
		req.ID = id
	}
	rec := &dialog.Recorder{}
	res, err := h.editor(rec).SaveInspectionRequest(r.Context(), req)
	h.respondSave(w, r, rec, res, err)
}

type licenseRequest struct {
	ClientID      string `json:"clientId"`
	SupplierID    string `json:"supplierId"`
	LicenseNumber string `json:"licenseNumber"`
}

func (h *Handlers) ListLicenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ls, err := h.editor(&dialog.Recorder{}).Licenses(r.Context(), q.Get("clientId"), q.Get("supplierId"))
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, ls)
}

func (h *Handlers) AddLicense(w http.ResponseWriter, r *http.Request) {
	var in licenseRequest
	if !decodeJSON(w, r, &in) {
		return
	}
	rec := &dialog.Recorder{}
	l, err := h.editor(rec).AddLicense(r.Context(), in.ClientID, in.SupplierID, in.LicenseNumber)
	if err != nil {
		h.fail(w, r, err, rec)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}
