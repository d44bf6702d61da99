package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()

// decode reads a stored record into v. Records come from a schemaless
// store, so a field holding the wrong JSON type does not fail the record:
// every field is coerced to its declared kind and the decode is retried.
// Only malformed JSON is an error.
func decode(id string, data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		if err != nil {
			return fmt.Errorf("decode %s: %w", id, err)
		}
		return nil
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode %s: %w", id, err)
	}
	target := reflect.ValueOf(v).Elem()
	fixed, err := json.Marshal(coerce(raw, target.Type()))
	if err != nil {
		return fmt.Errorf("decode %s: %w", id, err)
	}
	target.SetZero()
	if err := json.Unmarshal(fixed, v); err != nil {
		return fmt.Errorf("decode %s: %w", id, err)
	}
	return nil
}

// coerce converts a generic JSON value to the shape of t. Numbers become
// text for string fields, "true"/"1" become true for bool fields, and
// anything unusable becomes the zero value. Types with their own JSON
// decoding are left alone.
func coerce(v any, t reflect.Type) any {
	if reflect.PointerTo(t).Implements(unmarshalerType) {
		return v
	}
	switch t.Kind() {
	case reflect.Pointer:
		if v == nil {
			return nil
		}
		return coerce(v, t.Elem())
	case reflect.String:
		switch x := v.(type) {
		case string:
			return x
		case float64:
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return ""
	case reflect.Bool:
		switch x := v.(type) {
		case bool:
			return x
		case string:
			b, _ := strconv.ParseBool(strings.TrimSpace(x))
			return b
		case float64:
			return x != 0
		}
		return false
	case reflect.Float32, reflect.Float64:
		switch x := v.(type) {
		case float64:
			return x
		case string:
			return float64(ParseNumber(x))
		}
		return 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch x := v.(type) {
		case float64:
			return int64(x)
		case string:
			return int64(ParseNumber(x))
		}
		return 0
	case reflect.Slice:
		items, ok := v.([]any)
		if !ok {
			return nil
		}
		out := make([]any, len(items))
		for i, it := range items {
			out[i] = coerce(it, t.Elem())
		}
		return out
	case reflect.Struct:
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name := jsonName(f)
			if !f.IsExported() || name == "-" {
				continue
			}
			for k, e := range m {
				if strings.EqualFold(k, name) {
					m[k] = coerce(e, f.Type)
				}
			}
		}
		return m
	}
	return v
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return f.Name
	}
	return name
}

func DecodeMonetaryDocument(id string, data []byte) (MonetaryDocument, error) {
	var d MonetaryDocument
	if err := decode(id, data, &d); err != nil {
		return MonetaryDocument{}, err
	}
	d.ID = id
	return d.Normalized(), nil
}

func DecodeSupplier(id string, data []byte) (Supplier, error) {
	var s Supplier
	err := decode(id, data, &s)
	s.ID = id
	return s, err
}

func DecodeClient(id string, data []byte) (Client, error) {
	var c Client
	err := decode(id, data, &c)
	c.ID = id
	return c, err
}

func DecodeInspectionRequest(id string, data []byte) (InspectionRequest, error) {
	var r InspectionRequest
	err := decode(id, data, &r)
	r.ID = id
	return r.Normalized(), err
}

func DecodeLicense(id string, data []byte) (License, error) {
	var l License
	err := decode(id, data, &l)
	l.ID = id
	return l, err
}
