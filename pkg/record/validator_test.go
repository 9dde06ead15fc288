package record

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/validators"
)

func eventSchema() schema.Schema {
	return schema.Schema{
		Type: "event",
		DatasetFields: []schema.Field{
			{FieldName: "title", Required: true},
			{FieldName: "name", Validators: "if_empty_same_as(title) unicode"},
			{
				FieldName:        "tags",
				Required:         true,
				Validators:       "scheming_required scheming_multiple_choice",
				OutputValidators: "scheming_multiple_choice_output",
				Choices: []schema.Choice{
					{Value: "music"}, {Value: "food"}, {Value: "art"},
				},
			},
			{FieldName: "starts", Validators: "scheming_isodatetime_tz"},
		},
		ResourceFields: []schema.Field{
			{FieldName: "url", Required: true},
			{FieldName: "published", Validators: "scheming_isodatetime"},
		},
	}
}

func TestValidate_NormalizesRecord(t *testing.T) {
	v := NewValidator(nil)
	result, err := v.Validate(eventSchema(), map[string]any{
		"title":       "Jazz night",
		"tags":        []any{"art", "music"},
		"starts_date": "2020-01-15",
		"starts_time": "19:30",
		"starts_tz":   "America/New_York",
		"notes":       "free entry",
		"resources": []any{
			map[string]any{"url": "http://example.com/a", "published_date": "2020-01-01", "format": "CSV"},
		},
	}, nil)
	require.NoError(t, err)
	require.True(t, result.Valid(), "errors: %v", result.Errors)

	assert.Equal(t, "Jazz night", result.Data["title"])
	assert.Equal(t, "Jazz night", result.Data["name"])
	assert.Equal(t, `["music", "art"]`, result.Data["tags"])
	assert.Equal(t, time.Date(2020, 1, 16, 0, 30, 0, 0, time.UTC), result.Data["starts"])
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), result.Data["resources.0.published"])

	wantExtras := map[string]any{
		"notes":              "free entry",
		"resources.0.format": "CSV",
	}
	if diff := cmp.Diff(wantExtras, result.Extras); diff != "" {
		t.Fatalf("extras mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CollectsErrorsAcrossFields(t *testing.T) {
	v := NewValidator(nil)
	result, err := v.Validate(eventSchema(), map[string]any{
		"tags":        []any{"dance"},
		"starts_date": "2020-01-15",
		"starts_tz":   "Mars/Phobos",
		"resources": []any{
			map[string]any{"published": "soon"},
		},
	}, nil)
	require.NoError(t, err)
	assert.False(t, result.Valid())

	want := map[string][]string{
		"title":                 {validators.MsgMissingValue},
		"tags":                  {`unexpected choice "dance"`},
		"starts_tz":             {validators.MsgInvalidTimezone},
		"resources.0.url":       {validators.MsgMissingValue},
		"resources.0.published": {validators.MsgDateFormat},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"resources.0.published", "resources.0.url", "starts_tz", "tags", "title"}, result.ErrorKeys())
}

func TestValidate_RequiredChoiceEmpty(t *testing.T) {
	v := NewValidator(nil)
	sch := schema.Schema{
		Type: "choices",
		DatasetFields: []schema.Field{{
			FieldName:  "tags",
			Required:   true,
			Validators: "scheming_multiple_choice",
			Choices:    []schema.Choice{{Value: "a"}},
		}},
	}
	result, err := v.Validate(sch, map[string]any{}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"tags": {validators.MsgSelectAtLeastOne}}, result.Errors)
}

func TestValidate_ConfigurationError(t *testing.T) {
	v := NewValidator(nil)
	sch := schema.Schema{
		Type:          "broken",
		DatasetFields: []schema.Field{{FieldName: "x", Validators: "unicode no_such_validator"}},
	}
	_, err := v.Validate(sch, map[string]any{"x": "y"}, nil)
	require.Error(t, err)

	var cfgErr *validators.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "no_such_validator", cfgErr.Name)
	assert.Equal(t, "x", cfgErr.Field)
}

func TestValidate_BadResourceShape(t *testing.T) {
	_, err := NewValidator(nil).Validate(eventSchema(), map[string]any{"resources": "nope"}, nil)
	assert.Error(t, err)

	_, err = NewValidator(nil).Validate(eventSchema(), map[string]any{"resources": []any{"nope"}}, nil)
	assert.Error(t, err)
}

func TestValidate_PassesContextThrough(t *testing.T) {
	reg := validators.NewRegistry()
	var seen any
	reg.RegisterValidator("peek", func(key validators.Key, state *validators.State) error {
		seen = state.Context["user"]
		return nil
	})
	sch := schema.Schema{Type: "ctx", DatasetFields: []schema.Field{{FieldName: "x", Validators: "peek"}}}

	_, err := NewValidator(reg).Validate(sch, nil, map[string]any{"user": "alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice", seen)
}

func TestCompiled_CachedPerSchemaType(t *testing.T) {
	v := NewValidator(nil)
	first, err := v.Compiled(eventSchema())
	require.NoError(t, err)
	second, err := v.Compiled(eventSchema())
	require.NoError(t, err)
	assert.Same(t, first, second)

	untyped := eventSchema()
	untyped.Type = ""
	a, err := v.Compiled(untyped)
	require.NoError(t, err)
	b, err := v.Compiled(untyped)
	require.NoError(t, err)
	assert.NotSame(t, a, b)
}

func TestCompiled_SameTypeDifferentFieldsRecompiles(t *testing.T) {
	v := NewValidator(nil)
	original := eventSchema()
	first, err := v.Compiled(original)
	require.NoError(t, err)

	changed := eventSchema()
	changed.DatasetFields = append(changed.DatasetFields, schema.Field{FieldName: "venue", Required: true})
	second, err := v.Compiled(changed)
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Len(t, second.Dataset, len(changed.DatasetFields))

	result, err := v.Validate(changed, map[string]any{"title": "Jazz night", "tags": []any{"art"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{validators.MsgMissingValue}, result.Errors["venue"])

	again, err := v.Compiled(changed)
	require.NoError(t, err)
	assert.Same(t, second, again)

	sumA, err := Fingerprint(original)
	require.NoError(t, err)
	sumB, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)
}

func TestShow_DecodesStoredChoices(t *testing.T) {
	v := NewValidator(nil)
	result, err := v.Show(eventSchema(), map[string]any{
		"title": "Jazz night",
		"tags":  `["music", "art"]`,
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"music", "art"}, result.Data["tags"])
	assert.Equal(t, "Jazz night", result.Data["title"])
}

func TestResult_Record(t *testing.T) {
	result := Result{Data: map[string]any{
		"title":           "t",
		"resources.1.url": "b",
		"resources.0.url": "a",
		"resources.0.fmt": "csv",
	}}
	want := map[string]any{
		"title": "t",
		"resources": []map[string]any{
			{"url": "a", "fmt": "csv"},
			{"url": "b"},
		},
	}
	if diff := cmp.Diff(want, result.Record()); diff != "" {
		t.Fatalf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultValidators(t *testing.T) {
	assert.Equal(t, "not_empty unicode", DefaultValidators(schema.Field{Required: true}))
	assert.Equal(t, "ignore_missing unicode", DefaultValidators(schema.Field{}))
}
