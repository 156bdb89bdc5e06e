// ABOUTME: Optional value type used for fields supplied by untrusted upstream payloads
// ABOUTME: Distinguishes an absent or malformed field from a present value at decode time

package domain

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent.
// Decoding never fails: null, a missing key or a value of the wrong JSON type
// all produce an absent Optional.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is present
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value when present, otherwise def
func (o Optional[T]) OrElse(def T) T {
	if o.present {
		return o.value
	}
	return def
}

// UnmarshalJSON implements json.Unmarshaler
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	*o = Optional[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		// Malformed upstream fields are treated as missing
		return nil
	}

	o.value = v
	o.present = true
	return nil
}

// MarshalJSON implements json.Marshaler
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// NonEmpty returns the string and true only when it is present and not empty.
func NonEmpty(o Optional[string]) (string, bool) {
	v, ok := o.Get()
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
