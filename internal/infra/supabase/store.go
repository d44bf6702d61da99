package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tradedocs/go_backend/internal/domain/store"
)

const table = "documents"

// Store talks to a PostgREST "documents" table with columns
// collection, id, data (jsonb) and seq (identity, insertion order).
type Store struct {
	BaseURL string
	Key     string
	HTTP    *http.Client
}

func New(baseURL, serviceRoleKey string, timeout time.Duration) (*Store, error) {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("invalid supabase url")
	}
	return &Store{
		BaseURL: base,
		Key:     serviceRoleKey,
		HTTP:    &http.Client{Timeout: timeout},
	}, nil
}

type row struct {
	Collection string          `json:"collection,omitempty"`
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

func (s *Store) endpoint(q url.Values) string {
	return s.BaseURL + "/rest/v1/" + table + "?" + q.Encode()
}

func (s *Store) do(ctx context.Context, method, urlStr string, body []byte, prefer string) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, r)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.Key)
	req.Header.Set("Authorization", "Bearer "+s.Key)
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("supabase status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp, nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	if err := store.CheckCollection(collection); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("select", "id,data")
	q.Set("collection", "eq."+collection)
	q.Set("order", "seq.asc")

	resp, err := s.do(ctx, http.MethodGet, s.endpoint(q), nil, "")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer resp.Body.Close()

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	out := make([]store.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, store.Record{ID: r.ID, Data: r.Data})
	}
	return out, nil
}

func (s *Store) Put(ctx context.Context, collection string, rec store.Record) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	body, err := json.Marshal([]row{{Collection: collection, ID: rec.ID, Data: rec.Data}})
	if err != nil {
		return err
	}
	q := url.Values{}
	q.Set("on_conflict", "collection,id")

	resp, err := s.do(ctx, http.MethodPost, s.endpoint(q), body, "resolution=merge-duplicates,return=minimal")
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, rec.ID, err)
	}
	resp.Body.Close()
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := store.CheckCollection(collection); err != nil {
		return err
	}
	q := url.Values{}
	q.Set("collection", "eq."+collection)
	q.Set("id", "eq."+id)
	q.Set("select", "id")

	resp, err := s.do(ctx, http.MethodDelete, s.endpoint(q), nil, "return=representation")
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	defer resp.Body.Close()

	var rows []row
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s/%s", store.ErrNotFound, collection, id)
	}
	return nil
}
