package rules

import (
	"strconv"
	"strings"
	"sync"
)

// Rule defines the contract for a validation predicate.
// Evaluate receives the already-type-checked field value, the directive
// arguments, and the full top-level record (for cross-field rules).
type Rule interface {
	Evaluate(value any, args []Arg, record map[string]any) bool
	Message(args []Arg) string
}

// Func adapts a plain predicate and a message template into a Rule.
// The template may contain {0}-style placeholders substituted from the
// positional arguments.
type Func struct {
	Fn       func(value any, args []Arg, record map[string]any) bool
	Template string
}

func (f Func) Evaluate(value any, args []Arg, record map[string]any) bool {
	return f.Fn(value, args, record)
}

func (f Func) Message(args []Arg) string {
	return Expand(f.Template, args)
}

// Expand substitutes {0}-style placeholders in template with the positional
// argument values, in order.
func Expand(template string, args []Arg) string {
	out := template
	i := 0
	for _, a := range args {
		if !a.Positional() {
			continue
		}
		out = strings.ReplaceAll(out, "{"+strconv.Itoa(i)+"}", a.Value)
		i++
	}
	return out
}

// Registry manages the available validation rules.
// The engine looks rules up purely by name at evaluation time, so new rules
// can be added without touching engine code.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules: make(map[string]Rule),
	}
}

// Register adds a rule to the registry.
// If a rule with the same name exists, it is overwritten.
func (r *Registry) Register(name string, rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[name] = rule
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}
