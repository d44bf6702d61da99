package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/store"
)

// File is a rendered document ready for download.
type File struct {
	Name string
	Data []byte
	// Placeholder is set when a required party did not resolve and the
	// file only explains that data is missing.
	Placeholder bool
}

// Service resolves related records from a store and renders them.
type Service struct {
	Store store.Store
	Gen   Generator
	Now   func() time.Time
}

func NewService(s store.Store, g Generator) *Service {
	return &Service{Store: s, Gen: g, Now: time.Now}
}

// Invoice renders d, overlaying the stamp of d.SupplierID when it resolves.
func (s *Service) Invoice(ctx context.Context, d document.MonetaryDocument) (File, error) {
	supplier, err := s.supplier(ctx, d.SupplierID)
	if err != nil {
		return File{}, err
	}
	data, err := s.Gen.Invoice(d, supplier)
	if err != nil {
		return File{}, fmt.Errorf("render invoice: %w", err)
	}
	return File{Name: document.InvoiceFilename(d.Normalized(), s.Now()), Data: data}, nil
}

func (s *Service) StoredInvoice(ctx context.Context, id string) (File, error) {
	rec, err := store.Find(ctx, s.Store, store.Invoices, id)
	if err != nil {
		return File{}, err
	}
	d, err := document.DecodeMonetaryDocument(rec.ID, rec.Data)
	if err != nil {
		return File{}, err
	}
	return s.Invoice(ctx, d)
}

// Inspection renders req. A supplier or client that does not resolve
// produces a placeholder file and no error.
func (s *Service) Inspection(ctx context.Context, req document.InspectionRequest) (File, error) {
	supplier, client, err := s.Parties(ctx, req)
	if err != nil {
		return File{}, err
	}
	data, err := s.Gen.Inspection(req, supplier, client)
	if err != nil {
		return File{}, fmt.Errorf("render inspection: %w", err)
	}
	f := File{Data: data, Placeholder: supplier == nil || client == nil}
	if client != nil {
		f.Name = document.InspectionFilename(*client, req)
	} else {
		f.Name = document.InspectionFilename(document.Client{}, req)
	}
	return f, nil
}

func (s *Service) StoredInspection(ctx context.Context, id string) (File, error) {
	req, err := s.InspectionRequest(ctx, id)
	if err != nil {
		return File{}, err
	}
	return s.Inspection(ctx, req)
}

func (s *Service) InspectionRequest(ctx context.Context, id string) (document.InspectionRequest, error) {
	rec, err := store.Find(ctx, s.Store, store.InspectionRequests, id)
	if err != nil {
		return document.InspectionRequest{}, err
	}
	return document.DecodeInspectionRequest(rec.ID, rec.Data)
}

// Parties resolves the supplier and client of req; either may be nil.
func (s *Service) Parties(ctx context.Context, req document.InspectionRequest) (*document.Supplier, *document.Client, error) {
	supplier, err := s.supplier(ctx, req.SupplierID)
	if err != nil {
		return nil, nil, err
	}
	client, err := s.client(ctx, req.ClientID)
	if err != nil {
		return nil, nil, err
	}
	return supplier, client, nil
}

// supplier and client treat a record that cannot be decoded like a
// missing one.
func (s *Service) supplier(ctx context.Context, id string) (*document.Supplier, error) {
	if id == "" {
		return nil, nil
	}
	rec, err := store.Find(ctx, s.Store, store.Suppliers, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sup, err := document.DecodeSupplier(rec.ID, rec.Data)
	if err != nil {
		return nil, nil
	}
	return &sup, nil
}

func (s *Service) client(ctx context.Context, id string) (*document.Client, error) {
	if id == "" {
		return nil, nil
	}
	rec, err := store.Find(ctx, s.Store, store.Clients, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c, err := document.DecodeClient(rec.ID, rec.Data)
	if err != nil {
		return nil, nil
	}
	return &c, nil
}
