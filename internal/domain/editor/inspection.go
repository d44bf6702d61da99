package editor

import (
	"context"
	"strings"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/store"
)

func (s *Service) SaveInspectionRequest(ctx context.Context, r document.InspectionRequest) (SaveResult, error) {
	switch {
	case r.SupplierID == "":
		return SaveResult{}, s.invalid(ctx, "Please select a supplier.")
	case r.ClientID == "":
		return SaveResult{}, s.invalid(ctx, "Please select a client.")
	case strings.TrimSpace(r.LicenseNumber) == "":
		return SaveResult{}, s.invalid(ctx, "Please select or enter a license number.")
	case strings.TrimSpace(r.InspectionDate) == "":
		return SaveResult{}, s.invalid(ctx, "Inspection date is required.")
	case strings.TrimSpace(r.InspectionTime) == "":
		return SaveResult{}, s.invalid(ctx, "Inspection time is required.")
	}

	r = r.Normalized()
	id := r.ID
	r.ID = ""
	if id == "" {
		r.CreatedAt = s.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	return s.save(ctx, store.InspectionRequests, id, "inspection request", r)
}

// Licenses returns the licenses recorded for a client and supplier pair,
// oldest first.
func (s *Service) Licenses(ctx context.Context, clientID, supplierID string) ([]document.License, error) {
	recs, err := s.Store.List(ctx, store.ClientSupplierLicenses)
	if err != nil {
		return nil, err
	}
	out := []document.License{}
	for _, rec := range recs {
		l, err := document.DecodeLicense(rec.ID, rec.Data)
		if err != nil {
			continue
		}
		if l.ClientID == clientID && l.SupplierID == supplierID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *Service) AddLicense(ctx context.Context, clientID, supplierID, number string) (document.License, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return document.License{}, s.invalid(ctx, "License number is required.")
	}
	if clientID == "" || supplierID == "" {
		return document.License{}, s.invalid(ctx, "Please select a client and supplier first.")
	}

	l := document.License{
		ClientID:      clientID,
		SupplierID:    supplierID,
		LicenseNumber: number,
		CreatedAt:     s.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
	id, err := store.Save(ctx, s.Store, store.ClientSupplierLicenses, "", l)
	if err != nil {
		_ = s.Dialog.Alert(ctx, "Error", "Error adding license. Please try again.", dialog.Error)
		return document.License{}, err
	}
	l.ID = id
	if err := s.Dialog.Alert(ctx, "Success", "License added successfully.", dialog.Success); err != nil {
		return document.License{}, err
	}
	return l, nil
}
