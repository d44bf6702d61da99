package pdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/store"
	"tradedocs/go_backend/internal/infra/store/memory"
)

type fakeGen struct {
	supplier *document.Supplier
	client   *document.Client
}

func (f *fakeGen) Invoice(d document.MonetaryDocument, s *document.Supplier) ([]byte, error) {
	f.supplier = s
	return []byte("%PDF-invoice"), nil
}

func (f *fakeGen) Inspection(r document.InspectionRequest, s *document.Supplier, c *document.Client) ([]byte, error) {
	f.supplier, f.client = s, c
	return []byte("%PDF-inspection"), nil
}

func newService(t *testing.T) (*Service, *fakeGen, store.Store) {
	t.Helper()
	st := memory.New()
	gen := &fakeGen{}
	svc := NewService(st, gen)
	svc.Now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }
	return svc, gen, st
}

func TestStoredInvoiceResolvesSupplier(t *testing.T) {
	ctx := context.Background()
	svc, gen, st := newService(t)
	if _, err := store.Save(ctx, st, store.Suppliers, "sup-1", document.Supplier{Name: "Acme Srl", Stamp: "data:image/png;base64,AAAA"}); err != nil {
		t.Fatal(err)
	}
	inv := document.MonetaryDocument{Date: "2024-11-18", SupplierID: "sup-1", From: document.Party{Name: "Acme Srl"}, To: document.Party{Name: "Matadi Imports"}}
	if _, err := store.Save(ctx, st, store.Invoices, "inv-1", inv); err != nil {
		t.Fatal(err)
	}

	f, err := svc.StoredInvoice(ctx, "inv-1")
	if err != nil {
		t.Fatalf("stored invoice: %v", err)
	}
	if gen.supplier == nil || gen.supplier.ID != "sup-1" || gen.supplier.Stamp == "" {
		t.Fatalf("supplier not resolved: %+v", gen.supplier)
	}
	if f.Name != "Acme_Srl_to_Matadi_Imports_Invoice_2024-11-18.pdf" {
		t.Fatalf("name = %q", f.Name)
	}
}

func TestStoredInvoiceMissing(t *testing.T) {
	svc, _, _ := newService(t)
	if _, err := svc.StoredInvoice(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestInvoiceWithDanglingSupplier(t *testing.T) {
	svc, gen, _ := newService(t)

	if _, err := svc.Invoice(context.Background(), document.MonetaryDocument{SupplierID: "gone"}); err != nil {
		t.Fatalf("invoice: %v", err)
	}
	if gen.supplier != nil {
		t.Fatal("dangling supplier should render without a stamp")
	}
}

func TestInspectionPlaceholderFlag(t *testing.T) {
	ctx := context.Background()
	svc, gen, st := newService(t)
	if _, err := store.Save(ctx, st, store.Clients, "cli-1", document.Client{Name: "Matadi Imports"}); err != nil {
		t.Fatal(err)
	}
	req := document.InspectionRequest{SupplierID: "gone", ClientID: "cli-1", InspectionDate: "2024-11-18"}
	if _, err := store.Save(ctx, st, store.InspectionRequests, "req-1", req); err != nil {
		t.Fatal(err)
	}

	f, err := svc.StoredInspection(ctx, "req-1")
	if err != nil {
		t.Fatalf("stored inspection: %v", err)
	}
	if !f.Placeholder || gen.supplier != nil || gen.client == nil {
		t.Fatalf("file = %+v, supplier = %v, client = %v", f, gen.supplier, gen.client)
	}
	if f.Name != "Inspection_Request_Matadi_Imports_2024-11-18.pdf" {
		t.Fatalf("name = %q", f.Name)
	}
}

func TestStoredInvoiceWithLooselyTypedRecords(t *testing.T) {
	ctx := context.Background()
	svc, gen, st := newService(t)
	if err := st.Put(ctx, store.Suppliers, store.Record{ID: "sup-1", Data: []byte(`{"name":"Acme","zipCode":20100,"stamp":"data:image/png;base64,AAAA"}`)}); err != nil {
		t.Fatal(err)
	}
	if err := st.Put(ctx, store.Invoices, store.Record{ID: "inv-1", Data: []byte(`{"invoiceNumber":17,"date":"2024-11-18","supplierId":"sup-1","from":{"name":"Acme"},"to":{"name":"Beta"}}`)}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.StoredInvoice(ctx, "inv-1"); err != nil {
		t.Fatalf("stored invoice: %v", err)
	}
	if gen.supplier == nil || gen.supplier.ZipCode != "20100" {
		t.Fatalf("supplier = %+v", gen.supplier)
	}
}

func TestUndecodableSupplierIsUnresolved(t *testing.T) {
	ctx := context.Background()
	svc, gen, st := newService(t)
	if err := st.Put(ctx, store.Suppliers, store.Record{ID: "sup-1", Data: []byte(`{"name":`)}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Save(ctx, st, store.Clients, "cli-1", document.Client{Name: "Matadi Imports"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Invoice(ctx, document.MonetaryDocument{SupplierID: "sup-1"}); err != nil || gen.supplier != nil {
		t.Fatalf("invoice: err = %v, supplier = %+v", err, gen.supplier)
	}
	f, err := svc.Inspection(ctx, document.InspectionRequest{SupplierID: "sup-1", ClientID: "cli-1"})
	if err != nil || !f.Placeholder {
		t.Fatalf("inspection: err = %v, placeholder = %v", err, f.Placeholder)
	}
}
