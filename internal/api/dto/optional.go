package dto

import (
	"bytes"
	"encoding/json"

	"github.com/devdesk/queue-api/internal/domain"
)

// Optional records whether a JSON member was present and whether it was null.
type Optional[T any] struct {
	Present bool
	Null    bool
	Value   T
}

// UnmarshalJSON is only invoked for members present in the document,
// including explicit nulls.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// Field converts o into a column update.
func (o Optional[T]) Field() domain.Field[T] {
	switch {
	case !o.Present:
		return domain.Field[T]{}
	case o.Null:
		return domain.Null[T]()
	default:
		return domain.Value(o.Value)
	}
}

// Ptr returns the value, or nil when absent or null.
func (o Optional[T]) Ptr() *T {
	if !o.Present || o.Null {
		return nil
	}
	v := o.Value
	return &v
}
