package record

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-scheming/pkg/schema"
	"github.com/goliatone/go-scheming/pkg/validators"
)

// ResourcesKey is the submitted key holding the list of resource records.
const ResourcesKey = "resources"

// Result is the outcome of validating one record. Keys are dotted field
// paths; Errors only lists keys that hold at least one message.
type Result struct {
	Data   map[string]any
	Errors map[string][]string
	Extras map[string]any
}

// Valid reports whether no key holds a message.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// ErrorKeys lists the keys with messages, sorted.
func (r Result) ErrorKeys() []string {
	keys := make([]string, 0, len(r.Errors))
	for key := range r.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger routes validation diagnostics to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(v *Validator) {
		if v == nil || logger == nil {
			return
		}
		v.logger = logger
	}
}

// WithCompiler replaces the compiler used to build pipelines.
func WithCompiler(compiler *validators.Compiler) Option {
	return func(v *Validator) {
		if v == nil || compiler == nil {
			return
		}
		v.compiler = compiler
	}
}

// Validator validates records and caches compiled schemas by type.
type Validator struct {
	compiler *validators.Compiler
	logger   logrus.FieldLogger

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	sum      uint64
	compiled *Compiled
}

// NewValidator constructs a Validator resolving names against registry. A nil
// registry falls back to validators.NewRegistry().
func NewValidator(registry *validators.Registry, opts ...Option) *Validator {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	v := &Validator{logger: logger, cache: make(map[string]cacheEntry)}
	for _, opt := range opts {
		if opt != nil {
			opt(v)
		}
	}
	if v.compiler == nil {
		v.compiler = validators.NewCompiler(registry, validators.WithLogger(v.logger))
	}
	return v
}

// Compiled returns the compiled form of sch, compiling it on first use. The
// cache is keyed by schema type and checked against a fingerprint of the
// definition, so a changed schema under a known type is recompiled and
// replaces the cached entry. Schemas without a type are compiled on every
// call.
func (v *Validator) Compiled(sch schema.Schema) (*Compiled, error) {
	if sch.Type == "" {
		return Compile(v.compiler, sch)
	}

	sum, err := Fingerprint(sch)
	if err != nil {
		return nil, err
	}

	v.mu.RLock()
	entry, ok := v.cache[sch.Type]
	v.mu.RUnlock()
	if ok && entry.sum == sum {
		return entry.compiled, nil
	}

	compiled, err := Compile(v.compiler, sch)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if existing, ok := v.cache[sch.Type]; ok && existing.sum == sum {
		return existing.compiled, nil
	}
	logger := v.logger.WithFields(logrus.Fields{"schema": sch.Type, "fingerprint": fmt.Sprintf("%016x", sum)})
	if ok {
		logger.Debug("schema definition changed, replaced compiled schema")
	} else {
		logger.Debug("cached compiled schema")
	}
	v.cache[sch.Type] = cacheEntry{sum: sum, compiled: compiled}
	return compiled, nil
}

// Validate runs every field pipeline of sch against submitted. vctx is passed
// to validators untouched. The returned error is only set for configuration
// or programming errors; field problems are reported in Result.Errors.
func (v *Validator) Validate(sch schema.Schema, submitted map[string]any, vctx map[string]any) (Result, error) {
	compiled, err := v.Compiled(sch)
	if err != nil {
		return Result{}, err
	}
	return v.run(compiled, submitted, vctx, inputPipeline)
}

// Show applies the output validators of sch to a stored record, for example
// turning stored choice lists back into []string.
func (v *Validator) Show(sch schema.Schema, stored map[string]any, vctx map[string]any) (Result, error) {
	compiled, err := v.Compiled(sch)
	if err != nil {
		return Result{}, err
	}
	return v.run(compiled, stored, vctx, outputPipeline)
}

func inputPipeline(cf CompiledField) validators.Pipeline  { return cf.Input }
func outputPipeline(cf CompiledField) validators.Pipeline { return cf.Output }

func (v *Validator) run(compiled *Compiled, submitted map[string]any, vctx map[string]any, pick func(CompiledField) validators.Pipeline) (Result, error) {
	state := validators.NewState()
	for k, value := range vctx {
		state.Context[k] = value
	}

	for name, value := range submitted {
		if name == ResourcesKey && len(compiled.Resource) > 0 {
			continue
		}
		if compiled.datasetField(name) {
			state.Set(validators.NewKey(name), value)
			continue
		}
		state.Extras[name] = value
	}

	for _, cf := range compiled.Dataset {
		key := validators.NewKey(cf.Field.FieldName)
		if err := pick(cf).Run(key, state); err != nil {
			return Result{}, fmt.Errorf("record: field %q: %w", cf.Field.FieldName, err)
		}
	}

	leftovers := make(map[string]any, len(state.Extras))
	for name, value := range state.Extras {
		leftovers[name] = value
	}

	if len(compiled.Resource) > 0 {
		resources, err := resourceList(submitted[ResourcesKey])
		if err != nil {
			return Result{}, err
		}
		for idx, resource := range resources {
			sub := &validators.State{
				Data:    state.Data,
				Errors:  state.Errors,
				Extras:  make(validators.Extras),
				Context: state.Context,
			}
			for name, value := range resource {
				if compiled.resourceField(name) {
					sub.Set(validators.NewKey(ResourcesKey, idx, name), value)
					continue
				}
				sub.Extras[name] = value
			}
			for _, cf := range compiled.Resource {
				key := validators.NewKey(ResourcesKey, idx, cf.Field.FieldName)
				if err := pick(cf).Run(key, sub); err != nil {
					return Result{}, fmt.Errorf("record: resource %d field %q: %w", idx, cf.Field.FieldName, err)
				}
			}
			for name, value := range sub.Extras {
				leftovers[string(validators.NewKey(ResourcesKey, idx, name))] = value
			}
		}
	}

	result := flatten(state, leftovers)
	v.logger.WithFields(logrus.Fields{
		"schema": compiled.Schema.Type,
		"fields": len(compiled.Dataset),
		"errors": len(result.Errors),
	}).Debug("validated record")
	return result, nil
}

func resourceList(raw any) ([]map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return v, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for idx, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("record: resource %d is %T, expected an object", idx, item)
			}
			out = append(out, m)
		}
		return out, nil
	}
	return nil, fmt.Errorf("record: %s is %T, expected a list", ResourcesKey, raw)
}

func flatten(state *validators.State, extras map[string]any) Result {
	result := Result{
		Data:   make(map[string]any, len(state.Data)),
		Errors: make(map[string][]string),
		Extras: extras,
	}
	for key, value := range state.Data {
		result.Data[key.String()] = value
	}
	for key, msgs := range state.Errors {
		if len(msgs) == 0 {
			continue
		}
		result.Errors[key.String()] = append([]string(nil), msgs...)
	}
	return result
}
