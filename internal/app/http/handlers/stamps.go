package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/stamp"
)

const maxUpload = 8 << 20

type stampRequest struct {
	Stamp string `json:"stamp"`
}

type stampResponse struct {
	Stamp string `json:"stamp"`
}

// readStamp accepts a multipart "file" upload or a JSON {"stamp": ...}
// body holding a data URI or SVG text, and returns it as a stamp value.
// Uploads are normalized on the way in.
func readStamp(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUpload); err != nil {
			http.Error(w, "invalid multipart form", http.StatusBadRequest)
			return "", false, nil
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file is required", http.StatusBadRequest)
			return "", false, nil
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUpload))
		if err != nil {
			http.Error(w, "file read failed", http.StatusBadRequest)
			return "", false, nil
		}
		uri, err := stamp.NormalizeUpload(data)
		return uri, true, err
	}

	var in stampRequest
	if !decodeJSON(w, r, &in) {
		return "", false, nil
	}
	if strings.TrimSpace(in.Stamp) == "" {
		http.Error(w, "stamp is required", http.StatusBadRequest)
		return "", false, nil
	}
	return in.Stamp, true, nil
}

// NormalizeStamp converts an upload or SVG into the stored PNG form
// without saving it.
func (h *Handlers) NormalizeStamp(w http.ResponseWriter, r *http.Request) {
	raw, ok, err := readStamp(w, r)
	if !ok {
		return
	}
	if err == nil {
		raw, err = stamp.Normalize(raw)
	}
	if err != nil {
		h.fail(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, stampResponse{Stamp: raw})
}

func (h *Handlers) SetSupplierStamp(w http.ResponseWriter, r *http.Request) {
	raw, ok, err := readStamp(w, r)
	if !ok {
		return
	}
	rec := &dialog.Recorder{}
	if err != nil {
		_ = rec.Alert(r.Context(), "Stamp Error", err.Error(), dialog.Error)
		h.fail(w, r, err, rec)
		return
	}
	res, err := h.editor(rec).SetSupplierStamp(r.Context(), chi.URLParam(r, "id"), raw)
	h.respondSave(w, r, rec, res, err)
}
