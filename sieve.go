package sieve

import (
	"fmt"

	"github.com/aretw0/sieve/internal/engine"
	"github.com/aretw0/sieve/pkg/domain"
	"github.com/aretw0/sieve/pkg/rules"
	"github.com/aretw0/sieve/pkg/schema"
)

// Version is the current release of the sieve library.
const Version = "0.4.0"

// Validator binds a compiled schema to a rule registry.
//
// The schema is compiled once at construction and is never mutated by
// validation, so a single Validator is safe for concurrent Validate calls;
// each call allocates its own output tree and error map.
type Validator struct {
	schema   *schema.Root
	registry *rules.Registry
}

// Option defines a functional option for configuring a Validator.
type Option func(*Validator)

// WithRegistry replaces the default built-in rule registry.
func WithRegistry(r *rules.Registry) Option {
	return func(v *Validator) {
		v.registry = r
	}
}

// WithRule registers an additional named rule on the validator's registry.
func WithRule(name string, rule rules.Rule) Option {
	return func(v *Validator) {
		v.registry.Register(name, rule)
	}
}

// New compiles the raw schema and returns a validator.
// Compilation errors (bad type names, malformed rule strings, rules unknown
// to the registry) are fatal: they indicate a broken schema authored by the
// developer, not bad input data.
func New(raw map[string]any, opts ...Option) (*Validator, error) {
	root, err := schema.Compile(raw)
	if err != nil {
		return nil, err
	}
	return fromRoot(root, opts...)
}

// MustNew is like New but panics on error. Intended for schemas defined as
// package-level literals.
func MustNew(raw map[string]any, opts ...Option) *Validator {
	v, err := New(raw, opts...)
	if err != nil {
		panic(err)
	}
	return v
}

// FromCompiled wraps an already compiled schema (for example one built with
// the schema factory functions). The schema is cloned, so later mutation of
// the argument does not affect the validator.
func FromCompiled(root *schema.Root, opts ...Option) (*Validator, error) {
	if root == nil {
		return nil, fmt.Errorf("sieve: nil schema")
	}
	return fromRoot(root.Clone(), opts...)
}

func fromRoot(root *schema.Root, opts ...Option) (*Validator, error) {
	v := &Validator{
		schema:   root,
		registry: rules.Builtin(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if err := v.verifyRules(); err != nil {
		return nil, err
	}
	return v, nil
}

// verifyRules checks every compiled directive against the registry so a
// typo in a rule name fails at construction time instead of silently during
// validation.
func (v *Validator) verifyRules() error {
	var check func(name string, p *schema.Property) error
	check = func(name string, p *schema.Property) error {
		for _, d := range p.Rules {
			if _, ok := v.registry.Lookup(d.Name); !ok {
				return fmt.Errorf("property %q: unknown validation rule %q", name, d.Name)
			}
		}
		if p.Items != nil {
			if err := check(name+"[]", p.Items); err != nil {
				return err
			}
		}
		for _, sub := range p.Keys() {
			if err := check(name+"."+sub, p.Properties[sub]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range v.schema.Keys() {
		if err := check(name, v.schema.Properties[name]); err != nil {
			return err
		}
	}
	return nil
}

// Schema exposes the compiled schema for inspection. Treat it as read-only.
func (v *Validator) Schema() *schema.Root { return v.schema }

// Rules exposes the validator's rule registry so callers can register
// additional rules after construction.
func (v *Validator) Rules() *rules.Registry { return v.registry }

// Validate checks data against the schema and returns the result: a
// normalized copy of the data plus any field-level errors keyed by path.
// The returned error is non-nil only for a strict-mode violation, which
// aborts the whole call without a partial result.
func (v *Validator) Validate(data map[string]any) (*domain.Result, error) {
	return engine.Run(v.schema, v.registry, data)
}
