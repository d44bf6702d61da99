package memory

import (
	"context"
	"errors"
	"testing"

	"tradedocs/go_backend/internal/domain/store"
)

func TestStoreKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	for _, id := range []string{"c", "a", "b"} {
		if err := s.Put(ctx, store.Clients, store.Record{ID: id, Data: []byte(`{"name":"` + id + `"}`)}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
	}
	if err := s.Put(ctx, store.Clients, store.Record{ID: "a", Data: []byte(`{"name":"A"}`)}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	recs, err := s.List(ctx, store.Clients)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 3 || recs[0].ID != "c" || recs[1].ID != "a" || recs[2].ID != "b" {
		t.Fatalf("order = %+v", recs)
	}
	if string(recs[1].Data) != `{"name":"A"}` {
		t.Fatalf("replaced data = %s", recs[1].Data)
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := store.Save(ctx, s, store.Suppliers, "", map[string]string{"name": "Acme"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.Delete(ctx, store.Suppliers, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Find(ctx, s, store.Suppliers, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("find after delete: %v", err)
	}
	if err := s.Delete(ctx, store.Suppliers, id); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestStoreRejectsUnknownCollection(t *testing.T) {
	if _, err := New().List(context.Background(), "users"); !errors.Is(err, store.ErrUnknownCollection) {
		t.Fatalf("err = %v", err)
	}
}

func TestGetDecodes(t *testing.T) {
	ctx := context.Background()
	s := New()
	id, err := store.Save(ctx, s, store.Clients, "", map[string]string{"name": "Matadi Imports"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	var got struct{ Name string }
	if err := store.Get(ctx, s, store.Clients, id, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Matadi Imports" {
		t.Fatalf("name = %q", got.Name)
	}
}
