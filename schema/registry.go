package schema

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
	"github.com/signadot/normal"
)

var (
	ErrUnknownType   = errors.New("unknown type")
	ErrDuplicateType = errors.New("duplicate type")
)

// Registry holds types by name. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Type
}

func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds types to the registry. Either all of them are added or
// none is.
func (r *Registry) Register(types ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.register(types)
}

func (r *Registry) register(types []*Type) error {
	seen := map[string]bool{}
	for _, t := range types {
		if t == nil {
			return fmt.Errorf("cannot register nil type")
		}
		if t.name == "" {
			return fmt.Errorf("type must have a name")
		}
		if _, exists := r.types[t.name]; exists || seen[t.name] {
			return fmt.Errorf("%w %q", ErrDuplicateType, t.name)
		}
		seen[t.name] = true
	}
	for _, t := range types {
		r.types[t.name] = t
	}
	return nil
}

func (r *Registry) MustRegister(types ...*Type) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

func (r *Registry) Get(name string) (*Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownType, name)
	}
	return t, nil
}

// Must is like Get but panics on error.
func (r *Registry) Must(name string) *Type {
	t, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names returns the registered type names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := make([]string, 0, len(r.types))
	for name := range r.types {
		res = append(res, name)
	}
	slices.Sort(res)
	return res
}

// Definitions is the YAML form of a set of types.
type Definitions struct {
	Types []Definition `yaml:"types" validate:"required,min=1,dive"`
}

type Definition struct {
	Name   string            `yaml:"name" validate:"required"`
	Kind   string            `yaml:"kind" validate:"required,oneof=entity collection"`
	Closed bool              `yaml:"closed"`
	Fields []FieldDefinition `yaml:"fields" validate:"dive"`
	Item   string            `yaml:"item" validate:"required_if=Kind collection,excluded_if=Kind entity"`
}

type FieldDefinition struct {
	Name string `yaml:"name" validate:"required"`
	Type string `yaml:"type"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseDefinitions decodes and validates YAML definitions.
func ParseDefinitions(data []byte) (*Definitions, error) {
	defs := &Definitions{}
	if err := yaml.UnmarshalWithOptions(data, defs, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("could not decode definitions: %w", err)
	}
	if err := validate.Struct(defs); err != nil {
		return nil, fmt.Errorf("invalid definitions: %w", err)
	}
	return defs, nil
}

// LoadDefinitions parses YAML definitions and registers their types.
// References may name types of the same document, in any order, or types
// already in the registry.
func (r *Registry) LoadDefinitions(data []byte) ([]*Type, error) {
	defs, err := ParseDefinitions(data)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]*Type, len(defs.Types))
	byName := map[string]*Type{}
	for i := range defs.Types {
		def := &defs.Types[i]
		t := &Type{name: def.Name, kind: normal.KindEntity, closed: def.Closed}
		if def.Kind == "collection" {
			t.kind = normal.KindCollection
		}
		if _, dup := byName[def.Name]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateType, def.Name)
		}
		byName[def.Name] = t
		types[i] = t
	}
	resolve := func(ref string) (*Type, error) {
		if t, ok := byName[ref]; ok {
			return t, nil
		}
		if t, ok := r.types[ref]; ok {
			return t, nil
		}
		return nil, fmt.Errorf("%w %q", ErrUnknownType, ref)
	}
	for i := range defs.Types {
		def, t := &defs.Types[i], types[i]
		if t.kind == normal.KindCollection {
			item, err := resolve(def.Item)
			if err != nil {
				return nil, fmt.Errorf("item of %s: %w", def.Name, err)
			}
			t.item = item
			continue
		}
		t.fields = make([]normal.Field, len(def.Fields))
		for j, fd := range def.Fields {
			t.fields[j] = normal.Field{Name: fd.Name}
			if fd.Type == "" {
				continue
			}
			ft, err := resolve(fd.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s of %s: %w", fd.Name, def.Name, err)
			}
			t.fields[j].Type = ft
		}
	}
	if err := r.register(types); err != nil {
		return nil, err
	}
	return types, nil
}

var defaultRegistry = NewRegistry()

// Default returns the process wide registry used by Register and Lookup.
func Default() *Registry {
	return defaultRegistry
}

// Register registers types in the default registry.
func Register(types ...*Type) error {
	return defaultRegistry.Register(types...)
}

// Lookup returns a type of the default registry, or nil.
func Lookup(name string) *Type {
	t, _ := defaultRegistry.Get(name)
	return t
}
