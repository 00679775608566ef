// Package rules implements the validation-rule mini-language and the rule
// registry.
//
// A rule string is a pipe-delimited list of directives, each a rule name
// with optional bracketed arguments:
//
//	"required|betweenNumber[0,100]"
//	"required[email=no]"
//	"equals[phone2]"
//
// Arguments are either positional ("phone2") or keyed ("email=no"); both
// forms may appear in a single directive and their order is preserved.
// Parse turns such a string into []Descriptor once, at schema compile time.
//
// Rules themselves are predicates looked up by name in a Registry:
//
//	reg := rules.Builtin()
//	reg.Register("uppercase", rules.Func{
//	    Fn: func(value any, args []rules.Arg, record map[string]any) bool {
//	        s, ok := value.(string)
//	        return ok && s == strings.ToUpper(s)
//	    },
//	    Template: "Value should be upper case",
//	})
//
// Built-in rules receive values that already passed the schema type check,
// plus the full top-level record so cross-field rules (equals, conditional
// required) can inspect sibling fields.
package rules
