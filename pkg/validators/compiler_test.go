package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-scheming/pkg/schema"
)

// recorder returns a validator appending name to the "trace" context entry.
func recorder(name string) Validator {
	return func(key Key, state *State) error {
		trace, _ := state.Context["trace"].([]string)
		state.Context["trace"] = append(trace, name)
		return nil
	}
}

func newRecordingRegistry(names ...string) *Registry {
	reg := NewEmptyRegistry()
	for _, name := range names {
		reg.RegisterValidator(name, recorder(name))
	}
	return reg
}

func TestCompile_PreservesTokenOrder(t *testing.T) {
	reg := newRecordingRegistry("alpha", "beta", "gamma")
	compiler := NewCompiler(reg)

	pipeline, err := compiler.Compile("gamma  alpha\tbeta alpha", schema.Field{FieldName: "f"}, schema.Schema{})
	require.NoError(t, err)
	require.Equal(t, 4, pipeline.Len())

	state := NewState()
	require.NoError(t, pipeline.Run("f", state))
	assert.Equal(t, []string{"gamma", "alpha", "beta", "alpha"}, state.Context["trace"])
}

func TestCompile_BlankValidatorString(t *testing.T) {
	pipeline, err := NewCompiler(NewEmptyRegistry()).Compile("   ", schema.Field{}, schema.Schema{})
	require.NoError(t, err)
	assert.Zero(t, pipeline.Len())
}

func TestCompile_UnknownNameAtAnyPosition(t *testing.T) {
	compiler := NewCompiler(newRecordingRegistry("alpha", "beta"))
	specs := []string{
		"missing alpha beta",
		"alpha missing beta",
		"alpha beta missing",
		"alpha missing(1,2)",
	}
	for _, spec := range specs {
		t.Run(spec, func(t *testing.T) {
			_, err := compiler.Compile(spec, schema.Field{FieldName: "title"}, schema.Schema{})
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, "missing", cfgErr.Name)
			assert.Equal(t, "title", cfgErr.Field)
			assert.ErrorIs(t, err, ErrConfiguration)
			assert.ErrorIs(t, err, ErrUnknownIdentifier)
			assert.Contains(t, err.Error(), `"missing"`)
		})
	}
}

func TestCompile_PassesRawArguments(t *testing.T) {
	reg := NewEmptyRegistry()
	var got [][]string
	reg.RegisterConstructor("capture", func(args ...string) (Stage, error) {
		got = append(got, args)
		return ValidatorStage(recorder("capture")), nil
	})

	_, err := NewCompiler(reg).Compile("capture(a,b c) capture(x) capture()", schema.Field{}, schema.Schema{})
	require.Error(t, err, "a space splits the token, leaving an unknown name")

	got = nil
	pipeline, err := NewCompiler(reg).Compile("capture(a,,b) capture(x) capture()", schema.Field{}, schema.Schema{})
	require.NoError(t, err)
	assert.Equal(t, 3, pipeline.Len())
	assert.Equal(t, [][]string{{"a", "", "b"}, {"x"}, {""}}, got)
}

func TestCompile_BindsFieldAwareStages(t *testing.T) {
	reg := NewEmptyRegistry()
	var boundField string
	var boundSchema string
	reg.RegisterFactory("aware", func(field schema.Field, sch schema.Schema) Validator {
		boundField = field.FieldName
		boundSchema = sch.Type
		return recorder("aware:" + field.FieldName)
	})

	field := schema.Field{FieldName: "notes"}
	pipeline, err := NewCompiler(reg).Compile("aware", field, schema.Schema{Type: "dataset"})
	require.NoError(t, err)
	assert.Equal(t, "notes", boundField)
	assert.Equal(t, "dataset", boundSchema)

	state := NewState()
	require.NoError(t, pipeline.Run("notes", state))
	assert.Equal(t, []string{"aware:notes"}, state.Context["trace"])
}

func TestCompile_ConstructorMayReturnFactory(t *testing.T) {
	reg := NewEmptyRegistry()
	reg.RegisterConstructor("prefixed", func(args ...string) (Stage, error) {
		return FactoryStage(func(field schema.Field, _ schema.Schema) Validator {
			return recorder(args[0] + field.FieldName)
		}), nil
	})

	pipeline, err := NewCompiler(reg).Compile("prefixed(x-)", schema.Field{FieldName: "f"}, schema.Schema{})
	require.NoError(t, err)

	state := NewState()
	require.NoError(t, pipeline.Run("f", state))
	assert.Equal(t, []string{"x-f"}, state.Context["trace"])
}

func TestCompile_ArgumentsOnPlainStageIsConfigurationError(t *testing.T) {
	_, err := NewCompiler(newRecordingRegistry("alpha")).Compile("alpha(1)", schema.Field{}, schema.Schema{})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "alpha", cfgErr.Name)
	assert.True(t, strings.Contains(err.Error(), "does not accept arguments"))
}

func TestCompile_ConstructorErrorsSurface(t *testing.T) {
	_, err := NewCompiler(NewRegistry()).Compile("if_empty_same_as(a,b)", schema.Field{FieldName: "x"}, schema.Schema{})
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "if_empty_same_as", cfgErr.Name)
}

func TestCompile_IdentityResolvesInEmptyRegistry(t *testing.T) {
	pipeline, err := NewCompiler(NewEmptyRegistry()).Compile(IdentityName, schema.Field{}, schema.Schema{})
	require.NoError(t, err)

	state := NewState()
	state.Set("n", 42)
	require.NoError(t, pipeline.Run("n", state))
	assert.Equal(t, "42", state.Data["n"])
}

func TestSplitToken(t *testing.T) {
	cases := []struct {
		token   string
		name    string
		args    []string
		hasArgs bool
	}{
		{"not_empty", "not_empty", nil, false},
		{"one_of(a,b)", "one_of", []string{"a", "b"}, true},
		{"odd(", "odd(", nil, false},
		{"odd)", "odd)", nil, false},
		{"nested(a(b))", "nested", []string{"a(b)"}, true},
	}
	for _, tc := range cases {
		name, args, hasArgs := splitToken(tc.token)
		assert.Equal(t, tc.name, name, tc.token)
		assert.Equal(t, tc.args, args, tc.token)
		assert.Equal(t, tc.hasArgs, hasArgs, tc.token)
	}
}
