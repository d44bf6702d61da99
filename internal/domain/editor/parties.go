package editor

import (
	"context"
	"errors"
	"strings"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/stamp"
	"tradedocs/go_backend/internal/domain/store"
)

const stampFallbackMessage = "The stamp could not be converted to PNG. The original SVG was saved and will not appear on PDFs."

// SaveSupplier validates and stores a supplier. An SVG stamp is
// normalized before it is written; if the SVG cannot be decoded the raw
// text is kept and the result carries a warning.
func (s *Service) SaveSupplier(ctx context.Context, sup document.Supplier) (SaveResult, error) {
	if strings.TrimSpace(sup.Name) == "" {
		return SaveResult{}, s.invalid(ctx, "Supplier name is required.")
	}
	if strings.TrimSpace(sup.Email) == "" {
		return SaveResult{}, s.invalid(ctx, "Email is required.")
	}

	value, warning, err := s.normalizeStamp(ctx, sup.Stamp)
	if err != nil {
		return SaveResult{}, err
	}
	sup.Stamp = value

	id := sup.ID
	sup.ID = ""
	res, err := s.save(ctx, store.Suppliers, id, "supplier", sup)
	res.Warning = warning
	return res, err
}

// SetSupplierStamp replaces the stamp of an existing supplier.
func (s *Service) SetSupplierStamp(ctx context.Context, supplierID, raw string) (SaveResult, error) {
	rec, err := store.Find(ctx, s.Store, store.Suppliers, supplierID)
	if err != nil {
		return SaveResult{}, err
	}
	sup, err := document.DecodeSupplier(rec.ID, rec.Data)
	if err != nil {
		return SaveResult{}, err
	}

	value, warning, err := s.normalizeStamp(ctx, raw)
	if err != nil {
		return SaveResult{}, err
	}
	sup.Stamp = value
	sup.ID = ""
	if _, err := store.Save(ctx, s.Store, store.Suppliers, supplierID, sup); err != nil {
		_ = s.Dialog.Alert(ctx, "Error", "Error updating stamp", dialog.Error)
		return SaveResult{}, err
	}
	return SaveResult{ID: supplierID, Warning: warning}, nil
}

func (s *Service) normalizeStamp(ctx context.Context, raw string) (string, string, error) {
	if raw == "" {
		return "", "", nil
	}
	out, err := stamp.Normalize(raw)
	switch {
	case err == nil:
		return out, "", nil
	case errors.Is(err, stamp.ErrDecode) && stamp.IsSVG(raw):
		if aerr := s.Dialog.Alert(ctx, "Stamp Warning", stampFallbackMessage, dialog.Warning); aerr != nil {
			return "", "", aerr
		}
		return raw, stampFallbackMessage, nil
	default:
		_ = s.Dialog.Alert(ctx, "Stamp Error", err.Error(), dialog.Error)
		return "", "", err
	}
}

func (s *Service) SaveClient(ctx context.Context, c document.Client) (SaveResult, error) {
	if strings.TrimSpace(c.Name) == "" {
		return SaveResult{}, s.invalid(ctx, "Client name is required.")
	}
	id := c.ID
	c.ID = ""
	return s.save(ctx, store.Clients, id, "client", c)
}

// SaveInvoice stores a monetary document with its enums defaulted and line
// amounts recomputed.
func (s *Service) SaveInvoice(ctx context.Context, d document.MonetaryDocument) (SaveResult, error) {
	d = d.Normalized()
	id := d.ID
	d.ID = ""
	return s.save(ctx, store.Invoices, id, "invoice", d)
}
