// Package validation reports configuration mistakes in a schema without
// stopping at the first one.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/validators"
)

// Issue is one problem found in a schema. Path locates it in the schema
// document, e.g. dataset_fields.2.validators.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures lint outcomes.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

var choiceValidators = map[string]struct{}{
	"scheming_choices":         {},
	"scheming_multiple_choice": {},
}

const sameAsValidator = "if_empty_same_as"

// Lint compiles every validator token of sch on its own and checks choice
// declarations and sibling references. A nil compiler uses the built-in
// registry.
func Lint(sch schema.Schema, compiler *validators.Compiler) Result {
	if compiler == nil {
		compiler = validators.NewCompiler(nil)
	}

	var issues []Issue
	issues = append(issues, lintFields(compiler, sch, "dataset_fields", sch.DatasetFields)...)
	issues = append(issues, lintFields(compiler, sch, "resource_fields", sch.ResourceFields)...)
	return Result{Valid: len(issues) == 0, Issues: issues}
}

func lintFields(compiler *validators.Compiler, sch schema.Schema, section string, fields []schema.Field) []Issue {
	names := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		names[field.FieldName] = struct{}{}
	}

	var issues []Issue
	for idx, field := range fields {
		base := fmt.Sprintf("%s.%d", section, idx)
		issues = append(issues, lintSpec(compiler, sch, field, base+".validators", field.Validators, names)...)
		issues = append(issues, lintSpec(compiler, sch, field, base+".output_validators", field.OutputValidators, names)...)
		issues = append(issues, lintChoices(field, base)...)
	}
	return issues
}

func lintSpec(compiler *validators.Compiler, sch schema.Schema, field schema.Field, path, spec string, siblings map[string]struct{}) []Issue {
	var issues []Issue
	for _, token := range strings.Fields(spec) {
		if _, err := compiler.Compile(token, field, sch); err != nil {
			issues = append(issues, Issue{Path: path, Field: field.FieldName, Message: issueMessage(err)})
			continue
		}

		name, args, _ := strings.Cut(token, "(")
		if _, ok := choiceValidators[name]; ok && len(field.Choices) == 0 {
			issues = append(issues, Issue{
				Path:    path,
				Field:   field.FieldName,
				Message: fmt.Sprintf("%s needs declared choices", name),
			})
		}
		if name == sameAsValidator {
			other := strings.TrimSuffix(args, ")")
			if _, ok := siblings[other]; !ok {
				issues = append(issues, Issue{
					Path:    path,
					Field:   field.FieldName,
					Message: fmt.Sprintf("%s references unknown field %q", sameAsValidator, other),
				})
			}
		}
	}
	return issues
}

func lintChoices(field schema.Field, base string) []Issue {
	var issues []Issue
	seen := make(map[string]struct{}, len(field.Choices))
	for idx, choice := range field.Choices {
		path := fmt.Sprintf("%s.choices.%d", base, idx)
		if choice.Value == "" {
			issues = append(issues, Issue{Path: path, Field: field.FieldName, Message: "choice value is empty"})
			continue
		}
		if _, dup := seen[choice.Value]; dup {
			issues = append(issues, Issue{Path: path, Field: field.FieldName, Message: fmt.Sprintf("duplicate choice %q", choice.Value)})
			continue
		}
		seen[choice.Value] = struct{}{}
	}
	return issues
}

func issueMessage(err error) string {
	var cfgErr *validators.ConfigurationError
	if errors.As(err, &cfgErr) && cfgErr.Err != nil {
		err = cfgErr.Err
	}
	return strings.TrimPrefix(strings.TrimSpace(err.Error()), "validators: ")
}
