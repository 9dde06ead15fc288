package validators

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownIdentifier matches lookups of names nothing is registered under.
	ErrUnknownIdentifier = errors.New("validators: unknown validator or converter")
	// ErrStopOnError stops the remaining stages of the current key without
	// recording a message.
	ErrStopOnError = errors.New("validators: stop on error")
	// ErrConfiguration matches every *ConfigurationError.
	ErrConfiguration = errors.New("validators: configuration error")
)

// UnknownIdentifierError is returned by Registry.Resolve.
type UnknownIdentifierError struct {
	Name string
}

func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("validators: validator/converter not found: %q", e.Name)
}

func (e *UnknownIdentifierError) Is(target error) bool {
	return target == ErrUnknownIdentifier
}

// ConfigurationError reports a validator string that cannot be compiled. It
// carries the offending name so schema mistakes surface at load time.
type ConfigurationError struct {
	Name  string
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validators: validator/converter %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("validators: field %q: validator/converter %q: %v", e.Field, e.Name, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// Invalid rejects the current value. The pipeline appends Message to the key
// and skips the remaining stages for it.
type Invalid struct {
	Message string
}

// NewInvalid constructs an *Invalid carrying msg.
func NewInvalid(msg string) *Invalid {
	return &Invalid{Message: msg}
}

func (e *Invalid) Error() string {
	return e.Message
}
