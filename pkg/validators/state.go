package validators

import (
	"fmt"
	"reflect"
)

// Data holds submitted and normalized values keyed by field path. A key that
// is absent is "missing", which differs from a key holding nil.
type Data map[Key]any

// Errors accumulates messages per field path. An empty slice means the key
// has been checked and has no error yet.
type Errors map[Key][]string

// Extras holds raw sub-inputs that no field has claimed yet, keyed by their
// flat input name (for example "start_date").
type Extras map[string]any

// State is the mutable triple threaded through every pipeline stage of one
// record validation, plus the opaque caller context.
type State struct {
	Data    Data
	Errors  Errors
	Extras  Extras
	Context map[string]any
}

// NewState returns a State with empty, non-nil maps.
func NewState() *State {
	return &State{
		Data:    make(Data),
		Errors:  make(Errors),
		Extras:  make(Extras),
		Context: make(map[string]any),
	}
}

// Value returns the value stored under key and whether it is present.
func (s *State) Value(key Key) (any, bool) {
	v, ok := s.Data[key]
	return v, ok
}

// Set stores value under key.
func (s *State) Set(key Key, value any) {
	s.Data[key] = value
}

// Delete removes key from the data, making it missing.
func (s *State) Delete(key Key) {
	delete(s.Data, key)
}

// AddError appends msg to the messages recorded for key.
func (s *State) AddError(key Key, msg string) {
	s.Errors[key] = append(s.Errors[key], msg)
}

// HasErrors reports whether key already holds at least one message.
func (s *State) HasErrors(key Key) bool {
	return len(s.Errors[key]) > 0
}

// InitErrors records an empty message list for key unless one exists.
func (s *State) InitErrors(key Key) {
	if _, ok := s.Errors[key]; !ok {
		s.Errors[key] = []string{}
	}
}

// Extra returns the raw sub-input named name without claiming it.
func (s *State) Extra(name string) (any, bool) {
	v, ok := s.Extras[name]
	return v, ok
}

// Claim removes name from the extras bag, marking it as consumed.
func (s *State) Claim(name string) {
	delete(s.Extras, name)
}

// Invalid reports whether any key holds a message.
func (s *State) Invalid() bool {
	for _, msgs := range s.Errors {
		if len(msgs) > 0 {
			return true
		}
	}
	return false
}

// isEmpty mirrors the truthiness test the validators share: nil, zero
// numbers, false, empty strings and empty collections are empty.
func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case bool:
		return !v
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// inputString converts a raw sub-input into the string form parsers expect.
// Missing and nil inputs become "".
func inputString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprint(value)
}
