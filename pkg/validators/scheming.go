package validators

import "github.com/goliatone/go-scheming/pkg/schema"

// SchemingRequired returns NotEmpty for required fields and IgnoreMissing
// otherwise.
func SchemingRequired(field schema.Field, _ schema.Schema) Validator {
	if field.Required {
		return NotEmpty
	}
	return IgnoreMissing
}

// SchemingChoices requires the value to be one of the field's declared choice
// values.
func SchemingChoices(field schema.Field, _ schema.Schema) Validator {
	return oneOf(field.ChoiceValues())
}
