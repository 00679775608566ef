package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/sieve/pkg/rules"
)

// rawRoot is the authored top-level document shape.
type rawRoot struct {
	Mode       string         `mapstructure:"mode"`
	Cast       bool           `mapstructure:"cast"`
	Properties map[string]any `mapstructure:"properties"`
}

// rawProperty is the authored shape of a single property definition.
// Validation stays untyped here because it is either a rule string or an
// already-parsed descriptor list.
type rawProperty struct {
	Type       string         `mapstructure:"type"`
	Array      bool           `mapstructure:"array"`
	Schema     map[string]any `mapstructure:"schema"`
	Properties map[string]any `mapstructure:"properties"`
	Validation any            `mapstructure:"validation"`
	Default    any            `mapstructure:"default"`
}

// Compile normalizes an authored schema into an immutable Root.
// Errors indicate a broken schema (bad type name, malformed rule string,
// unknown mode) and are meant to surface at construction time, not during
// validation of input data.
func Compile(raw map[string]any) (*Root, error) {
	var doc rawRoot
	if err := mapstructure.Decode(raw, &doc); err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	mode, err := parseMode(doc.Mode)
	if err != nil {
		return nil, fmt.Errorf("schema: %w", err)
	}

	root := &Root{
		Mode:       mode,
		Cast:       doc.Cast,
		Properties: make(map[string]*Property, len(doc.Properties)),
	}
	for name, def := range doc.Properties {
		p, err := compileProperty(name, def)
		if err != nil {
			return nil, err
		}
		root.Properties[name] = p
	}
	root.keys = sortedKeys(root.Properties)
	return root, nil
}

func compileProperty(path string, def any) (*Property, error) {
	// Already-compiled definitions (authored via the factory API) pass
	// through as copies; compilation is idempotent.
	if p, ok := def.(*Property); ok {
		return p.clone(), nil
	}

	m, ok := def.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("property %q: definition must be a mapping, got %T", path, def)
	}

	var rp rawProperty
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &rp,
		Metadata: &md,
	})
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", path, err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("property %q: %w", path, err)
	}

	if rp.Type == "" {
		return nil, fmt.Errorf("property %q: missing type", path)
	}
	t, err := ParseType(rp.Type)
	if err != nil {
		return nil, fmt.Errorf("property %q: %w", path, err)
	}

	ruleList, err := compileRules(path, rp.Validation)
	if err != nil {
		return nil, err
	}

	p := &Property{}
	if _, has := m["default"]; has {
		p.Default = rp.Default
		p.HasDefault = true
	}
	for _, key := range md.Unused {
		if v, present := m[key]; present {
			if p.Extra == nil {
				p.Extra = make(map[string]any)
			}
			p.Extra[key] = v
		}
	}

	switch {
	case t == TypeArray:
		// Explicit array form: the nested "schema" mapping describes the
		// elements; validation on this definition applies to the container.
		if rp.Schema == nil {
			return nil, fmt.Errorf("property %q: array type requires a nested schema", path)
		}
		item, err := compileProperty(path+"[]", rp.Schema)
		if err != nil {
			return nil, err
		}
		p.Type = TypeArray
		p.Items = item
		p.Rules = ruleList

	case rp.Array:
		// Shorthand array form: a scalar or object type with an array flag.
		// Validation moves onto the elements, so each one is checked.
		item := &Property{Type: t, Rules: ruleList}
		if t == TypeObject {
			if err := compileChildren(path, rp.Properties, item); err != nil {
				return nil, err
			}
		}
		item.freeze()
		p.Type = TypeArray
		p.Items = item

	case t == TypeObject:
		p.Type = TypeObject
		p.Rules = ruleList
		if err := compileChildren(path, rp.Properties, p); err != nil {
			return nil, err
		}

	default:
		p.Type = t
		p.Rules = ruleList
	}

	p.freeze()
	return p, nil
}

func compileChildren(path string, defs map[string]any, into *Property) error {
	into.Properties = make(map[string]*Property, len(defs))
	for name, def := range defs {
		sub, err := compileProperty(path+"."+name, def)
		if err != nil {
			return err
		}
		into.Properties[name] = sub
	}
	return nil
}

func compileRules(path string, validation any) ([]rules.Descriptor, error) {
	switch v := validation.(type) {
	case nil:
		return nil, nil
	case string:
		list, err := rules.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", path, err)
		}
		return list, nil
	case []rules.Descriptor:
		// Already parsed; copy so the compiled schema owns its rules.
		return append([]rules.Descriptor(nil), v...), nil
	}
	return nil, fmt.Errorf("property %q: validation must be a rule string, got %T", path, validation)
}
