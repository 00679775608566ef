package schema

import (
	"testing"
)

func TestFactories(t *testing.T) {
	root, err := FromProperties(ModeFilter, false, map[string]*Property{
		"email":  String().WithValidation("email"),
		"age":    Integer().WithDefault(0),
		"tags":   ArrayOf(String()),
		"scores": ArrayOf(Number().WithValidation("betweenNumber[0,100]")),
		"address": ObjectOf(map[string]*Property{
			"street": String(),
			"city":   String(),
		}),
	})
	if err != nil {
		t.Fatalf("FromProperties() error = %v", err)
	}

	if len(root.Properties["email"].Rules) != 1 {
		t.Errorf("email rules = %#v, want one", root.Properties["email"].Rules)
	}
	if !root.Properties["age"].HasDefault {
		t.Error("age should carry a default")
	}
	if !root.Properties["tags"].IsArray() {
		t.Error("tags should be an array")
	}
	if root.Properties["scores"].Items.Rules[0].Name != "betweenNumber" {
		t.Errorf("scores item rules = %#v", root.Properties["scores"].Items.Rules)
	}
	if root.Properties["address"].Properties["street"].Type != TypeString {
		t.Error("address.street should be a string")
	}
}

func TestWithValidation_CopiesProperty(t *testing.T) {
	base := String()
	derived := base.WithValidation("required")

	if len(base.Rules) != 0 {
		t.Error("WithValidation should not mutate the receiver")
	}
	if len(derived.Rules) != 1 {
		t.Errorf("derived rules = %#v, want one", derived.Rules)
	}
}

func TestWithValidation_PanicsOnMalformed(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WithValidation should panic on malformed rule syntax")
		}
	}()
	String().WithValidation("email[")
}

func TestFromProperties_RejectsBadMode(t *testing.T) {
	if _, err := FromProperties("lenient", false, nil); err == nil {
		t.Error("FromProperties should reject unknown modes")
	}
}

func TestFromProperties_DefaultsToFilter(t *testing.T) {
	root, err := FromProperties("", false, nil)
	if err != nil {
		t.Fatalf("FromProperties() error = %v", err)
	}
	if root.Mode != ModeFilter {
		t.Errorf("Mode = %q, want filter", root.Mode)
	}
}
