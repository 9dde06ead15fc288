package validators

import (
	"fmt"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// MsgMissingValue is recorded by NotEmpty.
const MsgMissingValue = "Missing value"

// NotEmpty records MsgMissingValue and stops the key when the value is
// missing or empty.
func NotEmpty(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok || isEmpty(value) {
		state.AddError(key, MsgMissingValue)
		return ErrStopOnError
	}
	return nil
}

// IgnoreMissing drops a missing or nil value and stops the key.
func IgnoreMissing(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok || value == nil {
		state.Delete(key)
		return ErrStopOnError
	}
	return nil
}

// IgnoreEmpty drops a missing or empty value and stops the key.
func IgnoreEmpty(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok || isEmpty(value) {
		state.Delete(key)
		return ErrStopOnError
	}
	return nil
}

// Unicode coerces a present, non-nil value to its string form.
func Unicode(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok || value == nil {
		return nil
	}
	state.Set(key, inputString(value))
	return nil
}

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// StripHTML removes every HTML element from string values.
func StripHTML(key Key, state *State) error {
	value, ok := state.Value(key)
	if !ok {
		return nil
	}
	s, isString := value.(string)
	if !isString || s == "" {
		return nil
	}
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	state.Set(key, strings.TrimSpace(stripPolicy.Sanitize(s)))
	return nil
}

// OneOf builds a validator accepting only the listed values.
func OneOf(allowed ...string) (Stage, error) {
	return ValidatorStage(oneOf(allowed)), nil
}

func oneOf(allowed []string) Validator {
	set := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	msg := fmt.Sprintf("Value must be one of: %s", strings.Join(allowed, ", "))
	return func(key Key, state *State) error {
		value, _ := state.Value(key)
		s, isString := value.(string)
		if !isString {
			return NewInvalid(msg)
		}
		if _, ok := set[s]; !ok {
			return NewInvalid(msg)
		}
		return nil
	}
}

// IfEmptySameAs copies the sibling field named by its single argument when
// the value is missing or empty.
func IfEmptySameAs(args ...string) (Stage, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return Stage{}, fmt.Errorf("validators: if_empty_same_as expects one field name, got %d arguments", len(args))
	}
	other := args[0]
	return ValidatorStage(func(key Key, state *State) error {
		value, ok := state.Value(key)
		if ok && !isEmpty(value) {
			return nil
		}
		if source, found := state.Value(key.Sibling(other)); found {
			state.Set(key, source)
		}
		return nil
	}), nil
}

// Default stores its single argument when the value is missing or empty.
func Default(args ...string) (Stage, error) {
	if len(args) != 1 {
		return Stage{}, fmt.Errorf("validators: default expects one value, got %d arguments", len(args))
	}
	fallback := args[0]
	return ValidatorStage(func(key Key, state *State) error {
		value, ok := state.Value(key)
		if !ok || isEmpty(value) {
			state.Set(key, fallback)
		}
		return nil
	}), nil
}
