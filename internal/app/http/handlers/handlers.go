package handlers

import (
	"time"

	"go.uber.org/zap"

	"tradedocs/go_backend/internal/app/config"
	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document/pdf"
	pdfgen "tradedocs/go_backend/internal/domain/document/pdf/gofpdf"
	"tradedocs/go_backend/internal/domain/editor"
	"tradedocs/go_backend/internal/domain/store"
)

type Handlers struct {
	Store store.Store
	Cfg   config.Config
	Log   *zap.Logger
	PDF   *pdf.Service
	Now   func() time.Time
}

func New(st store.Store, cfg config.Config, log *zap.Logger) *Handlers {
	return &Handlers{
		Store: st,
		Cfg:   cfg,
		Log:   log,
		PDF:   pdf.NewService(st, pdfgen.New()),
		Now:   time.Now,
	}
}

// editor returns a workflow service whose dialog answers come from the
// request and whose alerts end up in the response.
func (h *Handlers) editor(rec *dialog.Recorder) *editor.Service {
	svc := editor.New(h.Store, rec)
	svc.Now = h.Now
	return svc
}
