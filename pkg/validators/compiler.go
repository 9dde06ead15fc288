package validators

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-scheming/pkg/schema"
)

// Compiler turns validator strings into pipelines using a Registry.
type Compiler struct {
	registry *Registry
	logger   logrus.FieldLogger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithLogger routes compile diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) CompilerOption {
	return func(c *Compiler) {
		if c == nil || logger == nil {
			return
		}
		c.logger = logger
	}
}

// NewCompiler constructs a compiler. A nil registry falls back to
// NewRegistry().
func NewCompiler(registry *Registry, opts ...CompilerOption) *Compiler {
	if registry == nil {
		registry = NewRegistry()
	}
	c := &Compiler{registry: registry, logger: discardLogger()}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Registry returns the registry names are resolved against.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// Compile parses spec and returns one pipeline stage per token, in token
// order. The first unresolvable token aborts compilation with a
// *ConfigurationError naming it.
func (c *Compiler) Compile(spec string, field schema.Field, sch schema.Schema) (Pipeline, error) {
	tokens := strings.Fields(spec)
	out := make(Pipeline, 0, len(tokens))
	for _, token := range tokens {
		name, args, hasArgs := splitToken(token)

		entry, err := c.registry.Resolve(name)
		if err != nil {
			return nil, &ConfigurationError{Name: name, Field: field.FieldName, Err: err}
		}

		var stage Stage
		if hasArgs {
			stage, err = entry.Call(args...)
		} else {
			stage, err = entry.Stage()
		}
		if err != nil {
			return nil, &ConfigurationError{Name: name, Field: field.FieldName, Err: err}
		}

		v := stage.Bind(field, sch)
		if v == nil {
			return nil, &ConfigurationError{Name: name, Field: field.FieldName, Err: errNilValidator}
		}
		out = append(out, v)
	}

	c.logger.WithFields(logrus.Fields{
		"schema": sch.Type,
		"field":  field.FieldName,
		"stages": len(out),
	}).Debug("compiled validator pipeline")

	return out, nil
}

// splitToken separates "name(a,b)" into its name and raw arguments. Tokens
// without a trailing ")" are bare names.
func splitToken(token string) (string, []string, bool) {
	if !strings.Contains(token, "(") || !strings.HasSuffix(token, ")") {
		return token, nil, false
	}
	name, rest, _ := strings.Cut(token, "(")
	rest = strings.TrimSuffix(rest, ")")
	return name, strings.Split(rest, ","), true
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
