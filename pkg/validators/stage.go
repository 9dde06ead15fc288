package validators

import "github.com/goliatone/go-scheming/pkg/schema"

// Validator checks or converts the value stored under key.
type Validator func(key Key, state *State) error

// Factory builds the per-field Validator from the field definition and the
// schema that contains it.
type Factory func(field schema.Field, sch schema.Schema) Validator

// Stage is a resolved registry entry: either a plain Validator or a
// field-aware Factory.
type Stage struct {
	validator Validator
	factory   Factory
}

// ValidatorStage wraps a plain validator.
func ValidatorStage(v Validator) Stage {
	return Stage{validator: v}
}

// FactoryStage wraps a field-aware factory.
func FactoryStage(f Factory) Stage {
	return Stage{factory: f}
}

// FieldAware reports whether the stage must be bound to a field before use.
func (s Stage) FieldAware() bool {
	return s.factory != nil
}

// Bind returns the validator this stage runs for field.
func (s Stage) Bind(field schema.Field, sch schema.Schema) Validator {
	if s.factory != nil {
		return s.factory(field, sch)
	}
	return s.validator
}

func (s Stage) valid() bool {
	return s.validator != nil || s.factory != nil
}

// Constructor builds a stage from the raw arguments of a parenthesized name,
// e.g. one_of(a,b) calls the constructor with "a" and "b".
type Constructor func(args ...string) (Stage, error)
