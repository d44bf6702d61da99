package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"go.uber.org/zap"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document/pdf"
	"tradedocs/go_backend/internal/domain/editor"
	"tradedocs/go_backend/internal/domain/stamp"
	"tradedocs/go_backend/internal/domain/store"
	sentryutil "tradedocs/go_backend/internal/infra/sentry"
)

const maxBody = 4 << 20

type errorResponse struct {
	Error    string           `json:"error"`
	Messages []dialog.Message `json:"messages,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writePDF(w http.ResponseWriter, f pdf.File) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.WriteHeader(http.StatusOK)
	w.Write(f.Data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBody)).Decode(v); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUnknownCollection):
		return http.StatusNotFound
	case editor.IsValidation(err), errors.Is(err, stamp.ErrDecode):
		return http.StatusUnprocessableEntity
	case errors.Is(err, editor.ErrIncorrectPassword):
		return http.StatusForbidden
	case errors.Is(err, stamp.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, stamp.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err with its status and the dialog messages collected so
// far. Server errors are logged and reported.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error, rec *dialog.Recorder) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		sentryutil.CaptureError(err, map[string]string{"path": r.URL.Path, "method": r.Method})
	}
	resp := errorResponse{Error: err.Error()}
	if rec != nil {
		resp.Messages = rec.Messages()
	}
	writeJSON(w, status, resp)
}
