package schema

import (
	"fmt"

	"github.com/aretw0/sieve/pkg/rules"
)

// Factory functions for authoring compiled schemas directly in Go, without
// going through a raw document. They return properties ready to assemble
// with FromProperties or to embed in a raw schema map handed to Compile.

// String creates a string property.
func String() *Property { return &Property{Type: TypeString} }

// Integer creates a whole-number property.
func Integer() *Property { return &Property{Type: TypeInteger} }

// Number creates a property accepting any finite number.
func Number() *Property { return &Property{Type: TypeNumber} }

// Boolean creates a boolean property.
func Boolean() *Property { return &Property{Type: TypeBoolean} }

// ObjectOf creates an object property with the given named sub-properties.
func ObjectOf(properties map[string]*Property) *Property {
	p := &Property{
		Type:       TypeObject,
		Properties: make(map[string]*Property, len(properties)),
	}
	for name, sub := range properties {
		p.Properties[name] = sub.clone()
	}
	p.freeze()
	return p
}

// ArrayOf creates an array property whose elements match item.
func ArrayOf(item *Property) *Property {
	return &Property{Type: TypeArray, Items: item.clone()}
}

// WithValidation attaches a rule string to a copy of the property.
// It panics on malformed rule syntax, which is a schema authoring mistake;
// use Compile for rule strings that are not known at build time.
func (p *Property) WithValidation(rule string) *Property {
	list, err := rules.Parse(rule)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	cp := p.clone()
	cp.Rules = list
	return cp
}

// WithDefault attaches a default value to a copy of the property. The
// default applies only when the field is absent from the input and is used
// by reference, never deep-copied.
func (p *Property) WithDefault(value any) *Property {
	cp := p.clone()
	cp.Default = value
	cp.HasDefault = true
	return cp
}

// FromProperties assembles a compiled Root from factory-built properties.
func FromProperties(mode Mode, cast bool, properties map[string]*Property) (*Root, error) {
	if _, err := parseMode(string(mode)); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}
	if mode == "" {
		mode = ModeFilter
	}
	root := &Root{
		Mode:       mode,
		Cast:       cast,
		Properties: make(map[string]*Property, len(properties)),
	}
	for name, p := range properties {
		root.Properties[name] = p.clone()
	}
	root.keys = sortedKeys(root.Properties)
	return root, nil
}
