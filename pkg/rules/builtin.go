package rules

import (
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// Builtin returns a registry pre-loaded with the standard rule set.
// Callers may register additional rules on the returned registry.
func Builtin() *Registry {
	r := NewRegistry()
	r.Register("email", emailRule{})
	r.Register("betweenNumber", betweenNumberRule{})
	r.Register("equals", equalsRule{})
	r.Register("required", requiredRule{})
	r.Register("phoneUS", phoneRule{
		pattern: phoneUSPattern,
		text:    "Value should be a valid US phone number",
	})
	r.Register("phoneGB", phoneRule{
		pattern: phoneGBPattern,
		text:    "Value should be a valid UK phone number",
	})
	return r
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// National phone patterns as used by the jQuery Validation plugin's
	// additional methods, applied after stripping whitespace.
	phoneUSPattern = regexp.MustCompile(`^(\+?1-?)?(\([2-9]([02-9]\d|1[02-9])\)|[2-9]([02-9]\d|1[02-9]))-?[2-9]([02-9]\d|1[02-9])-?\d{4}$`)
	phoneGBPattern = regexp.MustCompile(`^\(?(?:(?:0(?:0|11)\)?[\s-]?\(?|\+)44\)?[\s-]?\(?(?:0\)?[\s-]?\(?)?|0)(?:\d{2}\)?[\s-]?\d{4}[\s-]?\d{4}|\d{3}\)?[\s-]?\d{3}[\s-]?\d{3,4}|\d{4}\)?[\s-]?(?:\d{5}|\d{3}[\s-]?\d{3})|\d{5}\)?[\s-]?\d{4,5})(?:[\s-]?(?:x|ext\.?\s?|#)\d{3,4})?$`)
)

type emailRule struct{}

func (emailRule) Evaluate(value any, _ []Arg, _ map[string]any) bool {
	s, ok := value.(string)
	return ok && emailPattern.MatchString(s)
}

func (emailRule) Message(_ []Arg) string {
	return "Value should be a valid email address"
}

// betweenNumberRule checks min <= value <= max, both bounds inclusive.
type betweenNumberRule struct{}

func (betweenNumberRule) Evaluate(value any, args []Arg, _ map[string]any) bool {
	if len(args) < 2 {
		return false
	}
	v, ok := toFloat(value)
	if !ok {
		return false
	}
	min, errMin := strconv.ParseFloat(args[0].Value, 64)
	max, errMax := strconv.ParseFloat(args[1].Value, 64)
	if errMin != nil || errMax != nil {
		return false
	}
	return v >= min && v <= max
}

func (betweenNumberRule) Message(args []Arg) string {
	return Expand("Value should be between {0} and {1}", args)
}

// equalsRule checks the value against another field of the record.
// Numbers compare numerically so an int matches a decoded float64;
// everything else compares by deep equality.
type equalsRule struct{}

func (equalsRule) Evaluate(value any, args []Arg, record map[string]any) bool {
	if len(args) == 0 {
		return false
	}
	other, ok := record[args[0].Value]
	if !ok {
		return false
	}
	if a, okA := toFloat(value); okA {
		b, okB := toFloat(other)
		return okB && a == b
	}
	return reflect.DeepEqual(value, other)
}

func (equalsRule) Message(args []Arg) string {
	return Expand("Value should equal the value of {0}", args)
}

// requiredRule enforces a non-empty value. Keyed arguments make the rule
// conditional: the value is only required while record[key] is the string
// given as the expected value; otherwise the rule is vacuously satisfied.
type requiredRule struct{}

func (requiredRule) Evaluate(value any, args []Arg, record map[string]any) bool {
	for _, a := range args {
		if a.Positional() {
			continue
		}
		got, ok := record[a.Key].(string)
		if !ok || got != a.Value {
			return true
		}
	}
	return !isEmpty(value)
}

func (requiredRule) Message(_ []Arg) string {
	return "Value is required"
}

type phoneRule struct {
	pattern *regexp.Regexp
	text    string
}

func (p phoneRule) Evaluate(value any, _ []Arg, _ map[string]any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return p.pattern.MatchString(strings.Join(strings.Fields(s), ""))
}

func (p phoneRule) Message(_ []Arg) string {
	return p.text
}

func isEmpty(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
