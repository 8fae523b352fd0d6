package cdek

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Document is a JSON object under construction: field name to value.
type Document map[string]interface{}

// Normalize returns a copy of doc with every null-valued key removed.
//
// A value is null when it is nil, or a nil pointer, map, slice, interface,
// channel or func. The pass recurses through nested mappings at any depth,
// including mappings held inside sequences. Sequences keep their length and
// order, and empty (non-nil) sequences and mappings are kept. The input is
// not modified, and Normalize(Normalize(d)) equals Normalize(d).
func Normalize(doc Document) Document {
	if doc == nil {
		return nil
	}

	return normalizeMap(doc)
}

func normalizeMap(in map[string]interface{}) Document {
	out := make(Document, len(in))

	for key, value := range in {
		if isNull(value) {
			continue
		}

		out[key] = normalizeValue(value)
	}

	return out
}

func normalizeValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case Document:
		return normalizeMap(typed)
	case map[string]interface{}:
		return normalizeMap(typed)
	case []Document:
		out := make([]Document, len(typed))
		for i, element := range typed {
			out[i] = Normalize(element)
		}

		return out
	case []map[string]interface{}:
		out := make([]Document, len(typed))
		for i, element := range typed {
			out[i] = Normalize(element)
		}

		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, element := range typed {
			out[i] = normalizeValue(element)
		}

		return out
	default:
		return value
	}
}

func isNull(value interface{}) bool {
	if value == nil {
		return true
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Chan, reflect.Func:
		return rv.IsNil()
	default:
		return false
	}
}

// Serialize normalizes doc and encodes it as JSON.
func Serialize(doc Document) ([]byte, error) {
	data, err := json.Marshal(Normalize(doc))
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}

	return data, nil
}

// set stores value under key, leaving nil pointers as explicit nulls for
// Normalize to drop. Typed nils are collapsed so the document reads cleanly.
func (d Document) set(key string, value interface{}) {
	if isNull(value) {
		d[key] = nil

		return
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr {
		d[key] = rv.Elem().Interface()

		return
	}

	d[key] = value
}
