package schema

import "strings"

// Choice is one declared option of a choice field.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Field is the definition of one record attribute. It is read-only once
// loaded.
type Field struct {
	FieldName        string   `json:"field_name" yaml:"field_name"`
	Label            string   `json:"label,omitempty" yaml:"label,omitempty"`
	Required         bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Choices          []Choice `json:"choices,omitempty" yaml:"choices,omitempty"`
	Validators       string   `json:"validators,omitempty" yaml:"validators,omitempty"`
	OutputValidators string   `json:"output_validators,omitempty" yaml:"output_validators,omitempty"`
	Preset           string   `json:"preset,omitempty" yaml:"preset,omitempty"`
	HelpText         string   `json:"help_text,omitempty" yaml:"help_text,omitempty"`
}

// ChoiceValues returns the declared choice values in declaration order.
func (f Field) ChoiceValues() []string {
	if len(f.Choices) == 0 {
		return nil
	}
	out := make([]string, 0, len(f.Choices))
	for _, choice := range f.Choices {
		out = append(out, choice.Value)
	}
	return out
}

// DisplayLabel returns the label, falling back to the field name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.FieldName
}

// Schema groups the field definitions of one record type.
type Schema struct {
	Type           string  `json:"dataset_type" yaml:"dataset_type"`
	About          string  `json:"about,omitempty" yaml:"about,omitempty"`
	AboutURL       string  `json:"about_url,omitempty" yaml:"about_url,omitempty"`
	DatasetFields  []Field `json:"dataset_fields" yaml:"dataset_fields"`
	ResourceFields []Field `json:"resource_fields,omitempty" yaml:"resource_fields,omitempty"`
}

// DatasetField looks up a dataset-level field by name.
func (s Schema) DatasetField(name string) (Field, bool) {
	return findField(s.DatasetFields, name)
}

// ResourceField looks up a resource-level field by name.
func (s Schema) ResourceField(name string) (Field, bool) {
	return findField(s.ResourceFields, name)
}

func findField(fields []Field, name string) (Field, bool) {
	for _, field := range fields {
		if field.FieldName == name {
			return field, true
		}
	}
	return Field{}, false
}
