// ABOUTME: Canonical envelope decoding for every resource
// ABOUTME: Lists live under a plural key, single entities under a singular key

package api

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/markalston/moto-admin/internal/pagination"
	"github.com/tidwall/gjson"
)

// ErrMalformedResponse is returned when a 2xx payload lacks the expected shape
var ErrMalformedResponse = errors.New("malformed response")

// Page is one page of a collection
type Page[T any] struct {
	Items []T
	Meta  pagination.Meta
}

type identified interface {
	RowID() string
}

// decodeList reads payload[key] as a list. A missing or non-array value is empty.
func decodeList[T any](payload []byte, key string) ([]T, error) {
	res := gjson.GetBytes(payload, key)
	if !res.IsArray() {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(res.Raw), &items); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// decodePage reads payload[key] plus the pagination block
func decodePage[T any](payload []byte, key string) (Page[T], error) {
	items, err := decodeList[T](payload, key)
	if err != nil {
		return Page[T]{}, err
	}
	return Page[T]{Items: items, Meta: decodeMeta(payload, len(items))}, nil
}

// decodeMeta reads the pagination block. Without one the collection is a single page.
func decodeMeta(payload []byte, count int) pagination.Meta {
	res := gjson.GetBytes(payload, "pagination")
	if !res.IsObject() {
		meta := pagination.Meta{Page: 1, Limit: count, Total: count}
		if count > 0 {
			meta.Pages = 1
		}
		return meta
	}
	return pagination.Meta{
		Page:  int(res.Get("page").Int()),
		Limit: int(res.Get("limit").Int()),
		Total: int(res.Get("total").Int()),
		Pages: int(res.Get("pages").Int()),
	}.Normalize()
}

// decodeOne reads payload[key] as a single object
func decodeOne[T any](payload []byte, key string) (T, error) {
	var v T
	res := gjson.GetBytes(payload, key)
	if !res.IsObject() {
		return v, fmt.Errorf("%w: missing %q", ErrMalformedResponse, key)
	}
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, key, err)
	}
	return v, nil
}

// decodeCreated reads a newly created entity and insists it carries an id
func decodeCreated[T identified](payload []byte, key string) (T, error) {
	v, err := decodeOne[T](payload, key)
	if err != nil {
		return v, err
	}
	if v.RowID() == "" {
		return v, fmt.Errorf("%w: created %s has no id", ErrMalformedResponse, key)
	}
	return v, nil
}

// decodeField reads an optional sibling object; absent yields the zero value
func decodeField[T any](payload []byte, key string) (T, error) {
	var v T
	res := gjson.GetBytes(payload, key)
	if !res.Exists() || res.Type == gjson.Null {
		return v, nil
	}
	if err := json.Unmarshal([]byte(res.Raw), &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, key, err)
	}
	return v, nil
}
