// Package validators compiles declarative validator strings into pipelines
// and provides the composite validators used by scheming field definitions.
//
// A validator string is a whitespace separated list of names, each optionally
// followed by a parenthesized, comma separated argument list:
//
//	"ignore_missing if_empty_same_as(name) unicode"
//
// Every name is resolved through a Registry. Parenthesized names must have a
// Constructor registered; the raw argument strings are passed through without
// further parsing, so arguments cannot contain commas or parentheses. A
// resolved Stage is either a plain Validator or a field-aware Factory; the
// Compiler binds factories with the field definition and schema so the
// resulting Pipeline only holds plain validators.
//
// Validators run against a State that bundles the per-record data, the error
// accumulator and the extras bag. Errors are appended, never replaced. A
// validator can stop the remaining stages of a key by returning
// ErrStopOnError, or reject the value by returning an *Invalid whose message
// the pipeline appends to the key.
//
// Built-in field-aware validators:
//   - scheming_required         not_empty or ignore_missing depending on field.Required
//   - scheming_choices          value must be one of the declared choices
//   - scheming_multiple_choice  stores a JSON list of declared choices, in declared order
//   - scheming_isodatetime      naive date/time, assembled from <field>_date/_time/_tz inputs
//   - scheming_isodatetime_tz   as above, normalized to UTC
//
// A compiled Pipeline is read-only and may be shared across goroutines; each
// validation call must use its own State.
package validators
