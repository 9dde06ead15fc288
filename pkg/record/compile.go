package record

import (
	"encoding/json"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/validators"
)

// CompiledField pairs a field definition with its input and output pipelines.
type CompiledField struct {
	Field  schema.Field
	Input  validators.Pipeline
	Output validators.Pipeline
}

// Compiled holds the pipelines of every field of a schema. It is read-only
// after Compile returns.
type Compiled struct {
	Schema   schema.Schema
	Dataset  []CompiledField
	Resource []CompiledField
}

// DefaultValidators is the validator string used for fields that declare
// none.
func DefaultValidators(field schema.Field) string {
	if field.Required {
		return "not_empty unicode"
	}
	return "ignore_missing unicode"
}

// Fingerprint hashes the JSON form of sch. Schemas with the same fingerprint
// compile to the same pipelines.
func Fingerprint(sch schema.Schema) (uint64, error) {
	raw, err := json.Marshal(sch)
	if err != nil {
		return 0, fmt.Errorf("record: fingerprint schema %q: %w", sch.Type, err)
	}
	return xxhash.Sum64(raw), nil
}

// Compile builds the pipelines of every dataset and resource field.
func Compile(compiler *validators.Compiler, sch schema.Schema) (*Compiled, error) {
	if compiler == nil {
		compiler = validators.NewCompiler(nil)
	}
	dataset, err := compileFields(compiler, sch, sch.DatasetFields)
	if err != nil {
		return nil, err
	}
	resource, err := compileFields(compiler, sch, sch.ResourceFields)
	if err != nil {
		return nil, err
	}
	return &Compiled{Schema: sch, Dataset: dataset, Resource: resource}, nil
}

func compileFields(compiler *validators.Compiler, sch schema.Schema, fields []schema.Field) ([]CompiledField, error) {
	out := make([]CompiledField, 0, len(fields))
	for _, field := range fields {
		spec := field.Validators
		if spec == "" {
			spec = DefaultValidators(field)
		}
		input, err := compiler.Compile(spec, field, sch)
		if err != nil {
			return nil, fmt.Errorf("record: schema %q: %w", sch.Type, err)
		}
		output, err := compiler.Compile(field.OutputValidators, field, sch)
		if err != nil {
			return nil, fmt.Errorf("record: schema %q output: %w", sch.Type, err)
		}
		out = append(out, CompiledField{Field: field, Input: input, Output: output})
	}
	return out, nil
}

func (c *Compiled) datasetField(name string) bool {
	return hasField(c.Dataset, name)
}

func (c *Compiled) resourceField(name string) bool {
	return hasField(c.Resource, name)
}

func hasField(fields []CompiledField, name string) bool {
	for _, cf := range fields {
		if cf.Field.FieldName == name {
			return true
		}
	}
	return false
}
