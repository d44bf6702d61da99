package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"tradedocs/go_backend/internal/app/config"
	"tradedocs/go_backend/internal/app/http/handlers"
	"tradedocs/go_backend/internal/app/http/middleware"
	"tradedocs/go_backend/internal/domain/store"
)

func NewRouter(cfg config.Config, st store.Store, log *zap.Logger) (http.Handler, error) {
	gate, err := middleware.AccessGate(cfg.AccessPassword)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logging(log))
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))

	h := handlers.New(st, cfg, log)

	r.Get("/health", h.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Use(gate)
		r.Use(middleware.InternalAuth(cfg.InternalToken))

		r.Route("/suppliers", func(r chi.Router) {
			r.Get("/", h.ListRecords(store.Suppliers))
			r.Post("/", h.SaveSupplier)
			r.Get("/{id}", h.GetRecord(store.Suppliers))
			r.Put("/{id}", h.SaveSupplier)
			r.Delete("/{id}", h.DeleteRecord(store.Suppliers))
			r.Put("/{id}/stamp", h.SetSupplierStamp)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", h.ListRecords(store.Clients))
			r.Post("/", h.SaveClient)
			r.Get("/{id}", h.GetRecord(store.Clients))
			r.Put("/{id}", h.SaveClient)
			r.Delete("/{id}", h.DeleteRecord(store.Clients))
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Get("/", h.ListRecords(store.Invoices))
			r.Post("/", h.SaveInvoice)
			r.Get("/new", h.NewInvoice)
			r.Get("/{id}", h.GetRecord(store.Invoices))
			r.Put("/{id}", h.SaveInvoice)
			r.Delete("/{id}", h.DeleteRecord(store.Invoices))
			r.Get("/{id}/pdf", h.StoredInvoicePDF)
		})

		r.Route("/inspection-requests", func(r chi.Router) {
			r.Get("/", h.ListRecords(store.InspectionRequests))
			r.Post("/", h.SaveInspectionRequest)
			r.Get("/new", h.NewInspectionRequest)
			r.Get("/{id}", h.GetRecord(store.InspectionRequests))
			r.Put("/{id}", h.SaveInspectionRequest)
			r.Delete("/{id}", h.DeleteRecord(store.InspectionRequests))
			r.Get("/{id}/pdf", h.StoredInspectionPDF)
			r.Get("/{id}/narrative", h.StoredInspectionNarrative)
		})

		r.Route("/licenses", func(r chi.Router) {
			r.Get("/", h.ListLicenses)
			r.Post("/", h.AddLicense)
			r.Put("/{id}", h.PutRecord(store.ClientSupplierLicenses))
			r.Delete("/{id}", h.DeleteRecord(store.ClientSupplierLicenses))
		})

		r.Post("/stamps/normalize", h.NormalizeStamp)
		r.Post("/totals", h.Totals)
		r.Post("/render/invoice", h.RenderInvoice)
		r.Post("/render/inspection", h.RenderInspection)
		r.Post("/inspection/preview", h.InspectionPreview)
	})

	return r, nil
}
