package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/editor"
	"tradedocs/go_backend/internal/domain/store"
)

const ConfirmPasswordHeader = "X-Confirm-Password"

type deleteResponse struct {
	Deleted  bool             `json:"deleted"`
	Messages []dialog.Message `json:"messages"`
}

func (h *Handlers) ListRecords(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recs, err := h.Store.List(r.Context(), collection)
		if err != nil {
			h.fail(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func (h *Handlers) GetRecord(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := store.Find(r.Context(), h.Store, collection, chi.URLParam(r, "id"))
		if err != nil {
			h.fail(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// PutRecord stores the request body verbatim under id.
func (h *Handlers) PutRecord(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
		if err != nil || !json.Valid(body) {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		rec := store.Record{ID: chi.URLParam(r, "id"), Data: body}
		if err := h.Store.Put(r.Context(), collection, rec); err != nil {
			h.fail(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

// DeleteRecord deletes through the editor workflow: invoices need
// ?confirm=true, the other entities the admin password in
// X-Confirm-Password. Licenses are deleted directly.
func (h *Handlers) DeleteRecord(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		rec := &dialog.Recorder{ConfirmAnswer: r.URL.Query().Get("confirm") == "true"}
		if pw, ok := r.Header[http.CanonicalHeaderKey(ConfirmPasswordHeader)]; ok && len(pw) > 0 {
			answer := strings.TrimSpace(pw[0])
			rec.Password = &answer
		}
		ed := h.editor(rec)

		var deleted bool
		var err error
		switch {
		case collection == store.Invoices:
			deleted, err = ed.DeleteInvoice(r.Context(), id)
		case editor.RequiresPassword(collection):
			deleted, err = ed.DeleteWithPassword(r.Context(), collection, id)
		default:
			err = h.Store.Delete(r.Context(), collection, id)
			deleted = err == nil
		}
		if err != nil {
			h.fail(w, r, err, rec)
			return
		}
		writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted, Messages: rec.Messages()})
	}
}
