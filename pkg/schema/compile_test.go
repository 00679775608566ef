package schema

import (
	"reflect"
	"testing"

	"github.com/aretw0/sieve/pkg/rules"
)

func TestCompile_TypeSynonyms(t *testing.T) {
	raw := map[string]any{
		"properties": map[string]any{
			"a": map[string]any{"type": "int"},
			"b": map[string]any{"type": "integer"},
			"c": map[string]any{"type": "float"},
			"d": map[string]any{"type": "number"},
			"e": map[string]any{"type": "bool"},
			"f": map[string]any{"type": "boolean"},
			"g": map[string]any{"type": "string"},
		},
	}

	root, err := Compile(raw)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	want := map[string]Type{
		"a": TypeInteger, "b": TypeInteger,
		"c": TypeNumber, "d": TypeNumber,
		"e": TypeBoolean, "f": TypeBoolean,
		"g": TypeString,
	}
	for name, typ := range want {
		if got := root.Properties[name].Type; got != typ {
			t.Errorf("property %s: type = %v, want %v", name, got, typ)
		}
	}
}

func TestCompile_Defaults(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if root.Mode != ModeFilter {
		t.Errorf("Mode = %q, want filter", root.Mode)
	}
	if root.Cast {
		t.Error("Cast should default to false")
	}
}

func TestCompile_ModeCast(t *testing.T) {
	root, err := Compile(map[string]any{
		"mode": "strict",
		"cast": true,
		"properties": map[string]any{
			"name": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if root.Mode != ModeStrict {
		t.Errorf("Mode = %q, want strict", root.Mode)
	}
	if !root.Cast {
		t.Error("Cast = false, want true")
	}

	if _, err := Compile(map[string]any{"mode": "lenient"}); err == nil {
		t.Error("unsupported mode should fail compilation")
	}
}

func TestCompile_ValidationString(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"score": map[string]any{
				"type":       "number",
				"validation": "required|betweenNumber[0,100]",
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	got := root.Properties["score"].Rules
	want := []rules.Descriptor{
		{Name: "required", Args: []rules.Arg{}},
		{Name: "betweenNumber", Args: []rules.Arg{{Value: "0"}, {Value: "100"}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rules = %#v, want %#v", got, want)
	}
}

func TestCompile_Idempotent(t *testing.T) {
	// A validation value that is already a descriptor list passes through.
	compiled := []rules.Descriptor{{Name: "email", Args: []rules.Arg{}}}

	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"email": map[string]any{
				"type":       "string",
				"validation": compiled,
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if !reflect.DeepEqual(root.Properties["email"].Rules, compiled) {
		t.Errorf("Rules = %#v, want %#v", root.Properties["email"].Rules, compiled)
	}
}

func TestCompile_ArrayExplicitForm(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"emails": map[string]any{
				"type": "array",
				"schema": map[string]any{
					"type":       "string",
					"validation": "email",
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := root.Properties["emails"]
	if !p.IsArray() {
		t.Fatal("property should be an array")
	}
	if p.Items == nil || p.Items.Type != TypeString {
		t.Fatalf("Items = %#v, want string property", p.Items)
	}
	if len(p.Items.Rules) != 1 || p.Items.Rules[0].Name != "email" {
		t.Errorf("item rules = %#v, want email", p.Items.Rules)
	}
}

func TestCompile_ArrayShorthandForm(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"scores": map[string]any{
				"type":       "int",
				"array":      true,
				"validation": "betweenNumber[0,10]",
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := root.Properties["scores"]
	if !p.IsArray() {
		t.Fatal("property should be an array")
	}
	if p.Items.Type != TypeInteger {
		t.Errorf("item type = %v, want integer", p.Items.Type)
	}
	// Shorthand rules apply per element.
	if len(p.Items.Rules) != 1 || p.Items.Rules[0].Name != "betweenNumber" {
		t.Errorf("item rules = %#v, want betweenNumber", p.Items.Rules)
	}
	if len(p.Rules) != 0 {
		t.Errorf("container rules = %#v, want none", p.Rules)
	}
}

func TestCompile_ArrayRequiresItemSchema(t *testing.T) {
	_, err := Compile(map[string]any{
		"properties": map[string]any{
			"things": map[string]any{"type": "array"},
		},
	})
	if err == nil {
		t.Error("array without item schema should fail compilation")
	}
}

func TestCompile_NestedObject(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"specials": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"curve":  map[string]any{"type": "number"},
					"weight": map[string]any{"type": "int"},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	p := root.Properties["specials"]
	if p.Type != TypeObject {
		t.Fatalf("type = %v, want object", p.Type)
	}
	if !reflect.DeepEqual(p.Keys(), []string{"curve", "weight"}) {
		t.Errorf("Keys() = %v, want [curve weight]", p.Keys())
	}
	if p.Properties["curve"].Type != TypeNumber {
		t.Errorf("curve type = %v, want number", p.Properties["curve"].Type)
	}
}

func TestCompile_DefaultValueAndExtraKeys(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"age": map[string]any{
				"type":        "int",
				"default":     21,
				"description": "player age",
			},
			"name": map[string]any{"type": "string"},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	age := root.Properties["age"]
	if !age.HasDefault || age.Default != 21 {
		t.Errorf("default = (%v, %v), want (21, true)", age.Default, age.HasDefault)
	}
	if age.Extra["description"] != "player age" {
		t.Errorf("Extra = %#v, unknown keys should be preserved", age.Extra)
	}

	name := root.Properties["name"]
	if name.HasDefault {
		t.Error("property without default should not report one")
	}
}

func TestCompile_Errors(t *testing.T) {
	cases := map[string]map[string]any{
		"missing type": {
			"properties": map[string]any{"x": map[string]any{"validation": "email"}},
		},
		"unsupported type": {
			"properties": map[string]any{"x": map[string]any{"type": "decimal"}},
		},
		"malformed rule string": {
			"properties": map[string]any{"x": map[string]any{"type": "string", "validation": "email["}},
		},
		"non-mapping definition": {
			"properties": map[string]any{"x": "string"},
		},
		"bad validation value": {
			"properties": map[string]any{"x": map[string]any{"type": "string", "validation": 42}},
		},
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Compile(raw); err == nil {
				t.Errorf("Compile(%#v) should fail", raw)
			}
		})
	}
}

func TestRoot_CloneIsIndependent(t *testing.T) {
	root, err := Compile(map[string]any{
		"properties": map[string]any{
			"name": map[string]any{"type": "string", "validation": "required"},
		},
	})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	cp := root.Clone()
	cp.Properties["name"].Rules[0].Name = "changed"
	cp.Properties["extra"] = String()

	if root.Properties["name"].Rules[0].Name != "required" {
		t.Error("mutating a clone should not affect the original rules")
	}
	if _, ok := root.Properties["extra"]; ok {
		t.Error("mutating a clone should not affect the original properties")
	}
}

func TestParseType_Invalid(t *testing.T) {
	if _, err := ParseType("decimal"); err == nil {
		t.Error("ParseType should reject unknown names")
	}
}
