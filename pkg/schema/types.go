package schema

import (
	"fmt"
	"sort"

	"github.com/aretw0/sieve/pkg/rules"
)

// Type identifies the closed set of value types a property can declare.
// Authored type names are resolved to a Type once, at compile time, so
// validation never re-parses type strings.
type Type int

const (
	TypeString Type = iota
	TypeInteger
	TypeNumber
	TypeBoolean
	TypeObject
	TypeArray
)

// Name returns the canonical type name.
func (t Type) Name() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInteger:
		return "integer"
	case TypeNumber:
		return "number"
	case TypeBoolean:
		return "boolean"
	case TypeObject:
		return "object"
	case TypeArray:
		return "array"
	}
	return "unknown"
}

// Scalar reports whether the type is a castable leaf type.
func (t Type) Scalar() bool {
	switch t {
	case TypeString, TypeInteger, TypeNumber, TypeBoolean:
		return true
	}
	return false
}

// ParseType converts a type name to a Type. Synonyms are accepted:
// "int" for integer, "float" for number, "bool" for boolean.
func ParseType(name string) (Type, error) {
	switch name {
	case "string":
		return TypeString, nil
	case "integer", "int":
		return TypeInteger, nil
	case "number", "float":
		return TypeNumber, nil
	case "boolean", "bool":
		return TypeBoolean, nil
	case "object":
		return TypeObject, nil
	case "array":
		return TypeArray, nil
	}
	return 0, fmt.Errorf("unsupported type: %q", name)
}

// Mode is the policy for top-level keys present in the data but absent from
// the schema.
type Mode string

const (
	// ModeStrict aborts the whole validation call on any unschemaed key.
	ModeStrict Mode = "strict"
	// ModeLoose copies unschemaed keys into the output unchanged.
	ModeLoose Mode = "loose"
	// ModeFilter silently drops unschemaed keys. This is the default.
	ModeFilter Mode = "filter"
)

func parseMode(s string) (Mode, error) {
	switch s {
	case "":
		return ModeFilter, nil
	case string(ModeStrict), string(ModeLoose), string(ModeFilter):
		return Mode(s), nil
	}
	return "", fmt.Errorf("unsupported mode: %q", s)
}

// Property is one field's compiled definition.
//
// Exactly one of Properties (object types) and Items (array types) is set;
// scalar types carry neither. Treat compiled properties as read-only: the
// compiler copies everything it is given so shared schemas can serve
// concurrent validation calls.
type Property struct {
	Type       Type
	Properties map[string]*Property
	Items      *Property
	Rules      []rules.Descriptor
	Default    any
	HasDefault bool
	// Extra preserves authored keys the compiler does not interpret.
	Extra map[string]any

	keys []string
}

// IsArray reports whether the property describes a sequence.
func (p *Property) IsArray() bool { return p.Type == TypeArray }

// Keys returns the names of nested properties in traversal order.
func (p *Property) Keys() []string { return p.keys }

func (p *Property) clone() *Property {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Properties != nil {
		cp.Properties = make(map[string]*Property, len(p.Properties))
		for name, sub := range p.Properties {
			cp.Properties[name] = sub.clone()
		}
	}
	cp.Items = p.Items.clone()
	if p.Rules != nil {
		cp.Rules = append([]rules.Descriptor(nil), p.Rules...)
	}
	if p.Extra != nil {
		cp.Extra = make(map[string]any, len(p.Extra))
		for k, v := range p.Extra {
			cp.Extra[k] = v
		}
	}
	cp.keys = append([]string(nil), p.keys...)
	return &cp
}

func (p *Property) freeze() {
	p.keys = sortedKeys(p.Properties)
}

// Root is a compiled top-level schema. It is immutable after compilation
// and safe for unsynchronized concurrent reads.
type Root struct {
	Mode       Mode
	Cast       bool
	Properties map[string]*Property

	keys []string
}

// Keys returns the top-level property names in traversal order.
func (r *Root) Keys() []string { return r.keys }

// Clone returns a deep copy of the schema. Default values are shared by
// reference, matching their use during validation.
func (r *Root) Clone() *Root {
	cp := &Root{
		Mode:       r.Mode,
		Cast:       r.Cast,
		Properties: make(map[string]*Property, len(r.Properties)),
		keys:       append([]string(nil), r.keys...),
	}
	for name, p := range r.Properties {
		cp.Properties[name] = p.clone()
	}
	return cp
}

func sortedKeys(m map[string]*Property) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
