package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	Invoices               = "invoices"
	InspectionRequests     = "inspectionRequests"
	Suppliers              = "suppliers"
	Clients                = "clients"
	ClientSupplierLicenses = "clientSupplierLicenses"
)

var Collections = []string{Invoices, InspectionRequests, Suppliers, Clients, ClientSupplierLicenses}

var (
	ErrNotFound          = errors.New("store: record not found")
	ErrUnknownCollection = errors.New("store: unknown collection")
)

// Record is one schemaless entry of a collection.
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Store is the document-database contract. Backends keep records of a
// collection in insertion order; Put on an existing id replaces the data.
type Store interface {
	List(ctx context.Context, collection string) ([]Record, error)
	Put(ctx context.Context, collection string, rec Record) error
	Delete(ctx context.Context, collection, id string) error
}

func NewID() string { return uuid.NewString() }

func ValidCollection(name string) bool {
	for _, c := range Collections {
		if c == name {
			return true
		}
	}
	return false
}

func CheckCollection(name string) error {
	if !ValidCollection(name) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return nil
}

// Find returns the record with id, or ErrNotFound.
func Find(ctx context.Context, s Store, collection, id string) (Record, error) {
	if id == "" {
		return Record{}, ErrNotFound
	}
	recs, err := s.List(ctx, collection)
	if err != nil {
		return Record{}, err
	}
	for _, r := range recs {
		if r.ID == id {
			return r, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
}

// Get decodes the record with id into v.
func Get(ctx context.Context, s Store, collection, id string, v any) error {
	rec, err := Find(ctx, s, collection, id)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rec.Data, v); err != nil {
		return fmt.Errorf("decode %s/%s: %w", collection, id, err)
	}
	return nil
}

// Save encodes v and stores it under id. A blank id gets a fresh one,
// which is returned.
func Save(ctx context.Context, s Store, collection, id string, v any) (string, error) {
	if id == "" {
		id = NewID()
	}
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode %s/%s: %w", collection, id, err)
	}
	if err := s.Put(ctx, collection, Record{ID: id, Data: data}); err != nil {
		return "", err
	}
	return id, nil
}
