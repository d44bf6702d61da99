package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"tradedocs/go_backend/internal/domain/dialog"
	"tradedocs/go_backend/internal/domain/document"
	"tradedocs/go_backend/internal/domain/stamp"
	"tradedocs/go_backend/internal/domain/store"
	"tradedocs/go_backend/internal/infra/store/memory"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="100" height="50"><rect width="100" height="50" fill="red"/></svg>`

func newService() (*Service, *dialog.Recorder, *memory.Store) {
	st := memory.New()
	rec := &dialog.Recorder{}
	svc := New(st, rec)
	svc.Now = func() time.Time { return time.Date(2024, 11, 18, 9, 30, 0, 0, time.UTC) }
	return svc, rec, st
}

func lastMessage(t *testing.T, r *dialog.Recorder) dialog.Message {
	t.Helper()
	msgs := r.Messages()
	if len(msgs) == 0 {
		t.Fatal("no dialog messages")
	}
	return msgs[len(msgs)-1]
}

func TestSaveSupplierNormalizesSVGStamp(t *testing.T) {
	ctx := context.Background()
	svc, rec, st := newService()

	res, err := svc.SaveSupplier(ctx, document.Supplier{Name: "Acme Srl", Email: "info@acme.it", Stamp: testSVG})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !res.Created || res.Warning != "" {
		t.Fatalf("result = %+v", res)
	}
	var got document.Supplier
	if err := store.Get(ctx, st, store.Suppliers, res.ID, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stamp.IsRasterDataURI(got.Stamp) {
		t.Fatalf("stored stamp is not raster: %.30q", got.Stamp)
	}
	if m := lastMessage(t, rec); m.Message != "Supplier created successfully." || m.Kind != dialog.Success {
		t.Fatalf("message = %+v", m)
	}
}

func TestSaveSupplierKeepsUndecodableSVG(t *testing.T) {
	ctx := context.Background()
	svc, rec, st := newService()
	broken := `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><g>`

	res, err := svc.SaveSupplier(ctx, document.Supplier{Name: "Acme Srl", Email: "info@acme.it", Stamp: broken})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Warning == "" {
		t.Fatal("expected a warning")
	}
	var got document.Supplier
	if err := store.Get(ctx, st, store.Suppliers, res.ID, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stamp != broken {
		t.Fatal("raw svg should be stored as fallback")
	}
	if rec.Messages()[0].Kind != dialog.Warning {
		t.Fatalf("messages = %+v", rec.Messages())
	}
}

func TestSaveSupplierRejectsOversizedStamp(t *testing.T) {
	svc, _, st := newService()
	huge := "data:image/png;base64," + string(make([]byte, stamp.MaxRasterBytes*2))

	_, err := svc.SaveSupplier(context.Background(), document.Supplier{Name: "Acme", Email: "a@b.c", Stamp: huge})
	if !errors.Is(err, stamp.ErrTooLarge) {
		t.Fatalf("err = %v", err)
	}
	if recs, _ := st.List(context.Background(), store.Suppliers); len(recs) != 0 {
		t.Fatal("nothing should be stored")
	}
}

func TestSaveSupplierValidation(t *testing.T) {
	svc, rec, _ := newService()

	_, err := svc.SaveSupplier(context.Background(), document.Supplier{Name: "Acme"})
	if !IsValidation(err) || err.Error() != "Email is required." {
		t.Fatalf("err = %v", err)
	}
	if m := lastMessage(t, rec); m.Title != "Validation Error" || m.Kind != dialog.Error {
		t.Fatalf("message = %+v", m)
	}
}

func TestSetSupplierStamp(t *testing.T) {
	ctx := context.Background()
	svc, _, st := newService()
	if _, err := store.Save(ctx, st, store.Suppliers, "sup-1", document.Supplier{Name: "Acme"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.SetSupplierStamp(ctx, "sup-1", testSVG); err != nil {
		t.Fatalf("set stamp: %v", err)
	}
	var got document.Supplier
	if err := store.Get(ctx, st, store.Suppliers, "sup-1", &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "Acme" || !stamp.IsRasterDataURI(got.Stamp) {
		t.Fatalf("supplier = %+v", got)
	}
	if _, err := svc.SetSupplierStamp(ctx, "missing", testSVG); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("missing supplier err = %v", err)
	}
}

func TestSaveInspectionRequestValidation(t *testing.T) {
	full := document.InspectionRequest{
		SupplierID: "s", ClientID: "c", LicenseNumber: "L-1", InspectionDate: "2024-11-18", InspectionTime: "08:00",
	}
	cases := []struct {
		edit func(*document.InspectionRequest)
		want string
	}{
		{func(r *document.InspectionRequest) { r.SupplierID = "" }, "Please select a supplier."},
		{func(r *document.InspectionRequest) { r.ClientID = "" }, "Please select a client."},
		{func(r *document.InspectionRequest) { r.LicenseNumber = " " }, "Please select or enter a license number."},
		{func(r *document.InspectionRequest) { r.InspectionDate = "" }, "Inspection date is required."},
		{func(r *document.InspectionRequest) { r.InspectionTime = "" }, "Inspection time is required."},
	}
	for _, c := range cases {
		svc, _, _ := newService()
		r := full
		c.edit(&r)
		if _, err := svc.SaveInspectionRequest(context.Background(), r); err == nil || err.Error() != c.want {
			t.Errorf("err = %v, want %q", err, c.want)
		}
	}
}

func TestSaveInspectionRequestStampsCreation(t *testing.T) {
	ctx := context.Background()
	svc, _, st := newService()
	r := document.InspectionRequest{SupplierID: "s", ClientID: "c", LicenseNumber: "L-1", InspectionDate: "2024-11-18", InspectionTime: "08:00"}

	res, err := svc.SaveInspectionRequest(ctx, r)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	var got document.InspectionRequest
	if err := store.Get(ctx, st, store.InspectionRequests, res.ID, &got); err != nil {
		t.Fatal(err)
	}
	if got.CreatedAt != "2024-11-18T09:30:00.000Z" {
		t.Fatalf("createdAt = %q", got.CreatedAt)
	}
	if got.ContainerType != document.DefaultContainerType {
		t.Fatalf("containerType = %q", got.ContainerType)
	}
}

func TestLicenses(t *testing.T) {
	ctx := context.Background()
	svc, rec, _ := newService()

	if _, err := svc.AddLicense(ctx, "c1", "s1", "  LIC-1 "); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddLicense(ctx, "c2", "s1", "LIC-X"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddLicense(ctx, "c1", "s1", "LIC-2"); err != nil {
		t.Fatalf("add: %v", err)
	}

	got, err := svc.Licenses(ctx, "c1", "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].LicenseNumber != "LIC-1" || got[1].LicenseNumber != "LIC-2" {
		t.Fatalf("licenses = %+v", got)
	}

	if _, err := svc.AddLicense(ctx, "c1", "s1", " "); err == nil || err.Error() != "License number is required." {
		t.Fatalf("blank err = %v", err)
	}
	if _, err := svc.AddLicense(ctx, "", "s1", "LIC-3"); err == nil || err.Error() != "Please select a client and supplier first." {
		t.Fatalf("no client err = %v", err)
	}
	if m := lastMessage(t, rec); m.Kind != dialog.Error {
		t.Fatalf("message = %+v", m)
	}
}

func TestDeleteWithPassword(t *testing.T) {
	ctx := context.Background()
	pw := func(s string) *string { return &s }

	cases := []struct {
		name     string
		password *string
		deleted  bool
		err      error
	}{
		{"dismissed", nil, false, nil},
		{"empty", pw(""), false, nil},
		{"wrong", pw("letmein"), false, ErrIncorrectPassword},
		{"lowercase", pw("admin"), true, nil},
		{"exact", pw("ADMIN"), true, nil},
	}
	for _, c := range cases {
		svc, rec, st := newService()
		rec.Password = c.password
		if _, err := store.Save(ctx, st, store.Clients, "c1", document.Client{Name: "Matadi"}); err != nil {
			t.Fatal(err)
		}

		deleted, err := svc.DeleteWithPassword(ctx, store.Clients, "c1")
		if deleted != c.deleted || !errors.Is(err, c.err) {
			t.Errorf("%s: deleted=%v err=%v", c.name, deleted, err)
		}
		_, findErr := store.Find(ctx, st, store.Clients, "c1")
		if gone := errors.Is(findErr, store.ErrNotFound); gone != c.deleted {
			t.Errorf("%s: record gone = %v", c.name, gone)
		}
		if c.name == "wrong" && lastMessage(t, rec).Message != "Incorrect password." {
			t.Errorf("wrong password should alert")
		}
	}
}

func TestDeleteInvoiceNeedsConfirmation(t *testing.T) {
	ctx := context.Background()
	svc, rec, st := newService()
	if _, err := store.Save(ctx, st, store.Invoices, "i1", document.MonetaryDocument{}); err != nil {
		t.Fatal(err)
	}

	if ok, err := svc.DeleteInvoice(ctx, "i1"); ok || err != nil {
		t.Fatalf("unconfirmed delete = %v, %v", ok, err)
	}
	rec.ConfirmAnswer = true
	if ok, err := svc.DeleteInvoice(ctx, "i1"); !ok || err != nil {
		t.Fatalf("confirmed delete = %v, %v", ok, err)
	}
}

func TestSessionGuard(t *testing.T) {
	ctx := context.Background()
	rec := &dialog.Recorder{}
	inv := document.NewMonetaryDocument(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	s, err := NewSession(inv)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := s.Guard(ctx, rec); !ok {
		t.Fatal("clean session should not block")
	}

	inv.Notes = "edited"
	if err := s.Update(inv); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Fatal("session should be dirty")
	}
	if ok, _ := s.Guard(ctx, rec); ok {
		t.Fatal("dirty session should block when the user declines")
	}
	rec.ConfirmAnswer = true
	if ok, _ := s.Guard(ctx, rec); !ok {
		t.Fatal("dirty session should allow leaving once confirmed")
	}

	s.MarkSaved()
	if s.Dirty() {
		t.Fatal("saved session should be clean")
	}

	other, _ := NewSession(document.Client{})
	if other.Dirty() {
		t.Fatal("sessions must not share state")
	}
}
