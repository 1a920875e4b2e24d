package domain

import (
	"bytes"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"strings"
)

// Optional holds a value that may be absent. It scans from and binds to
// nullable SQL columns and marshals absent values as JSON null.
type Optional[T any] struct {
	val T
	ok  bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{val: v, ok: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalString maps blank input to an absent value and trims the rest.
func OptionalString(s string) Optional[string] {
	s = strings.TrimSpace(s)
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.val, o.ok
}

func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the value, or def when absent.
func (o Optional[T]) OrElse(def T) T {
	if !o.ok {
		return def
	}
	return o.val
}

// Scan implements sql.Scanner.
func (o *Optional[T]) Scan(src any) error {
	var n sql.Null[T]
	if err := n.Scan(src); err != nil {
		return err
	}
	o.val, o.ok = n.V, n.Valid
	return nil
}

// Value implements driver.Valuer.
func (o Optional[T]) Value() (driver.Value, error) {
	return sql.Null[T]{V: o.val, Valid: o.ok}.Value()
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(o.val)
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
