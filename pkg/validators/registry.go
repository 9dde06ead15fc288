package validators

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-scheming/pkg/timezones"
)

// IdentityName resolves to the built-in string coercion stage in every
// registry, including empty ones.
const IdentityName = "unicode"

// Entry is the result of a registry lookup.
type Entry struct {
	Name        string
	stage       Stage
	constructor Constructor
}

// Stage returns the stage for a bare (argument-less) reference. Names that
// only have a constructor are constructed with no arguments.
func (e Entry) Stage() (Stage, error) {
	if e.stage.valid() {
		return e.stage, nil
	}
	if e.constructor != nil {
		return e.constructor()
	}
	return Stage{}, fmt.Errorf("validators: %q has no stage", e.Name)
}

// Call constructs the stage for a parenthesized reference.
func (e Entry) Call(args ...string) (Stage, error) {
	if e.constructor == nil {
		return Stage{}, fmt.Errorf("validators: %q does not accept arguments", e.Name)
	}
	return e.constructor(args...)
}

type registration struct {
	stage       Stage
	constructor Constructor
}

// Registry maps validator and converter names to stages. Registration and
// lookup are safe for concurrent use; the latest registration for a name wins.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]registration
	zones   *timezones.Set
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithZones sets the recognized timezone names used by the datetime
// validators. The embedded IANA list is used by default.
func WithZones(zones *timezones.Set) RegistryOption {
	return func(r *Registry) {
		if r == nil || zones == nil {
			return
		}
		r.zones = zones
	}
}

// NewRegistry constructs a registry with the built-in primitives and
// scheming validators registered.
func NewRegistry(opts ...RegistryOption) *Registry {
	reg := NewEmptyRegistry(opts...)
	reg.registerBuiltins()
	return reg
}

// NewEmptyRegistry constructs a registry that only resolves IdentityName.
func NewEmptyRegistry(opts ...RegistryOption) *Registry {
	reg := &Registry{entries: make(map[string]registration)}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	if reg.zones == nil {
		reg.zones = defaultZones()
	}
	return reg
}

// Register adds a ready stage under name. Empty names and invalid stages are
// ignored.
func (r *Registry) Register(name string, stage Stage) {
	if r == nil || !stage.valid() {
		return
	}
	r.update(name, func(reg *registration) { reg.stage = stage })
}

// RegisterValidator is shorthand for Register(name, ValidatorStage(v)).
func (r *Registry) RegisterValidator(name string, v Validator) {
	if v == nil {
		return
	}
	r.Register(name, ValidatorStage(v))
}

// RegisterFactory is shorthand for Register(name, FactoryStage(f)).
func (r *Registry) RegisterFactory(name string, f Factory) {
	if f == nil {
		return
	}
	r.Register(name, FactoryStage(f))
}

// RegisterConstructor adds a parametrized stage under name.
func (r *Registry) RegisterConstructor(name string, c Constructor) {
	if r == nil || c == nil {
		return
	}
	r.update(name, func(reg *registration) { reg.constructor = c })
}

func (r *Registry) update(name string, apply func(*registration)) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	reg := r.entries[trimmed]
	apply(&reg)
	r.entries[trimmed] = reg
}

// Resolve looks up name. Unknown names return an *UnknownIdentifierError.
func (r *Registry) Resolve(name string) (Entry, error) {
	if name == IdentityName {
		return Entry{Name: name, stage: ValidatorStage(Unicode)}, nil
	}
	if r == nil {
		return Entry{}, &UnknownIdentifierError{Name: name}
	}
	r.mu.RLock()
	reg, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return Entry{}, &UnknownIdentifierError{Name: name}
	}
	return Entry{Name: name, stage: reg.stage, constructor: reg.constructor}, nil
}

// Names lists every registered name, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries)+1)
	names = append(names, IdentityName)
	for name := range r.entries {
		if name != IdentityName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Zones returns the timezone set used by the datetime validators.
func (r *Registry) Zones() *timezones.Set {
	if r == nil {
		return defaultZones()
	}
	return r.zones
}

func (r *Registry) registerBuiltins() {
	r.RegisterValidator("not_empty", NotEmpty)
	r.RegisterValidator("ignore_missing", IgnoreMissing)
	r.RegisterValidator("ignore_empty", IgnoreEmpty)
	r.RegisterValidator("strip_html", StripHTML)
	r.RegisterConstructor("one_of", OneOf)
	r.RegisterConstructor("if_empty_same_as", IfEmptySameAs)
	r.RegisterConstructor("default", Default)

	r.RegisterFactory("scheming_required", SchemingRequired)
	r.RegisterFactory("scheming_choices", SchemingChoices)
	r.RegisterFactory("scheming_multiple_choice", SchemingMultipleChoice)
	r.RegisterValidator("scheming_multiple_choice_output", MultipleChoiceOutput)
	r.RegisterFactory("scheming_isodatetime", IsoDatetime(r.zones))
	r.RegisterFactory("scheming_isodatetime_tz", IsoDatetimeTZ(r.zones))
}

func defaultZones() *timezones.Set {
	zones, err := timezones.Default()
	if err != nil {
		panic(fmt.Errorf("validators: load embedded timezones: %w", err))
	}
	return zones
}
