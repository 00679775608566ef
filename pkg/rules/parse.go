package rules

import (
	"fmt"
	"strings"
)

// Arg is one argument of a validation directive. Positional arguments have
// an empty Key; keyed arguments ("key=value") carry both parts. An empty
// value after "=" is preserved, not dropped.
type Arg struct {
	Key   string
	Value string
}

// Positional reports whether the argument was written without a key.
func (a Arg) Positional() bool { return a.Key == "" }

// Descriptor is one parsed validation directive: a rule name plus its
// arguments in declaration order.
type Descriptor struct {
	Name string
	Args []Arg
}

// Parse converts a pipe-delimited rule string into an ordered list of
// descriptors. Each directive has the form "name" or "name[arg1,key=val,...]".
// Argument tokens are taken verbatim between commas and brackets; no
// trimming and no bracket nesting. Malformed brackets are an error, so a
// broken schema fails at compile time rather than during validation.
func Parse(rule string) ([]Descriptor, error) {
	if rule == "" {
		return []Descriptor{}, nil
	}

	parts := strings.Split(rule, "|")
	out := make([]Descriptor, 0, len(parts))
	for _, part := range parts {
		d, err := parseDirective(part)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func parseDirective(s string) (Descriptor, error) {
	if s == "" {
		return Descriptor{}, fmt.Errorf("empty rule directive")
	}

	open := strings.IndexByte(s, '[')
	if open < 0 {
		if strings.IndexByte(s, ']') >= 0 {
			return Descriptor{}, fmt.Errorf("rule %q: unmatched ']'", s)
		}
		return Descriptor{Name: s, Args: []Arg{}}, nil
	}

	if open == 0 {
		return Descriptor{}, fmt.Errorf("rule %q: missing name", s)
	}
	if s[len(s)-1] != ']' {
		return Descriptor{}, fmt.Errorf("rule %q: unmatched '['", s)
	}

	name := s[:open]
	body := s[open+1 : len(s)-1]
	if body == "" {
		return Descriptor{Name: name, Args: []Arg{}}, nil
	}

	tokens := strings.Split(body, ",")
	args := make([]Arg, 0, len(tokens))
	for _, tok := range tokens {
		if eq := strings.IndexByte(tok, '='); eq >= 0 {
			args = append(args, Arg{Key: tok[:eq], Value: tok[eq+1:]})
		} else {
			args = append(args, Arg{Value: tok})
		}
	}
	return Descriptor{Name: name, Args: args}, nil
}
