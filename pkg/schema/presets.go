package schema

// Preset supplies default validator strings for fields that reference it by
// name and leave the corresponding keys empty.
type Preset struct {
	Validators       string
	OutputValidators string
}

var builtinPresets = map[string]Preset{
	"select": {
		Validators: "scheming_required scheming_choices",
	},
	"multiple_checkbox": {
		Validators:       "ignore_missing scheming_multiple_choice",
		OutputValidators: "scheming_multiple_choice_output",
	},
	"multiple_select": {
		Validators:       "ignore_missing scheming_multiple_choice",
		OutputValidators: "scheming_multiple_choice_output",
	},
	"datetime": {
		Validators: "scheming_isodatetime",
	},
	"datetime_tz": {
		Validators: "scheming_isodatetime_tz",
	},
}

// LookupPreset returns the built-in preset registered under name.
func LookupPreset(name string) (Preset, bool) {
	preset, ok := builtinPresets[name]
	return preset, ok
}

// ApplyPreset fills empty validator strings from the field's preset. Fields
// without a preset are returned unchanged.
func ApplyPreset(field Field) (Field, bool) {
	if field.Preset == "" {
		return field, true
	}
	preset, ok := LookupPreset(field.Preset)
	if !ok {
		return field, false
	}
	if field.Validators == "" {
		field.Validators = preset.Validators
	}
	if field.OutputValidators == "" {
		field.OutputValidators = preset.OutputValidators
	}
	return field, true
}
