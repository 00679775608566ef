// Package engine implements the recursive co-walk of data and compiled
// schema that produces a validation result.
package engine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/aretw0/sieve/internal/cast"
	"github.com/aretw0/sieve/pkg/domain"
	"github.com/aretw0/sieve/pkg/rules"
	"github.com/aretw0/sieve/pkg/schema"
)

// Run validates data against the compiled schema in one synchronous
// depth-first traversal. Field-level failures accumulate in the result;
// the only fatal condition is an unschemaed top-level key in strict mode.
func Run(root *schema.Root, reg *rules.Registry, data map[string]any) (*domain.Result, error) {
	w := &walker{
		root:   root,
		reg:    reg,
		record: data,
		errs:   make(map[string]domain.ErrorEntry),
	}

	out := make(map[string]any, len(data))
	for _, name := range root.Keys() {
		value, present := data[name]
		norm, ok := w.visit(value, present, root.Properties[name], path{name})
		if ok {
			out[name] = norm
		}
	}

	var orphans []string
	for key := range data {
		if _, ok := root.Properties[key]; !ok {
			orphans = append(orphans, key)
		}
	}
	sort.Strings(orphans)

	switch root.Mode {
	case schema.ModeStrict:
		if len(orphans) > 0 {
			return nil, fmt.Errorf("Properties not in schema are not allowed in strict mode: %s", strings.Join(orphans, ", "))
		}
	case schema.ModeLoose:
		for _, key := range orphans {
			out[key] = data[key]
		}
	}

	res := &domain.Result{Success: len(w.errs) == 0, Data: out}
	if len(w.errs) > 0 {
		res.Errors = w.errs
	}
	return res, nil
}

// path accumulates traversal segments (field names and element indexes) and
// is only joined into a string when an error is recorded.
type path []any

func (p path) String() string {
	var b strings.Builder
	for i, seg := range p {
		switch s := seg.(type) {
		case string:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s)
		case int:
			fmt.Fprintf(&b, "[%d]", s)
		}
	}
	return b.String()
}

type walker struct {
	root   *schema.Root
	reg    *rules.Registry
	record map[string]any
	errs   map[string]domain.ErrorEntry
}

func (w *walker) fail(p path, id, message string) {
	key := p.String()
	if _, seen := w.errs[key]; !seen {
		w.errs[key] = domain.ErrorEntry{ID: id, Value: message}
	}
}

func (w *walker) failType(p path, t schema.Type) {
	w.fail(p, domain.TypeFailureID(t.Name()), "Value should be of type "+t.Name())
}

// visit checks one value against one property. It returns the normalized
// value and whether this path itself passed; failures below this path (array
// elements, nested object fields) are recorded independently and do not make
// the container fail.
func (w *walker) visit(value any, present bool, prop *schema.Property, p path) (any, bool) {
	if !present {
		if prop.HasDefault {
			// Defaults are trusted as authored and not re-validated.
			return prop.Default, true
		}
		value = nil
	}

	// A missing object container is walked as an empty structure so its
	// leaves still surface path-qualified errors.
	if prop.Type == schema.TypeObject && value == nil {
		value = map[string]any{}
	}

	if w.root.Cast && prop.Type.Scalar() {
		cv, err := cast.Cast(value, prop.Type)
		if err != nil {
			w.failType(p, prop.Type)
			return nil, false
		}
		value = cv
	}

	switch prop.Type {
	case schema.TypeArray:
		items, ok := asSlice(value)
		if !ok {
			w.failType(p, prop.Type)
			return nil, false
		}
		out := make([]any, len(items))
		for i, el := range items {
			norm, okEl := w.visit(el, true, prop.Items, append(p, i))
			if okEl {
				out[i] = norm
			} else {
				// Keep the original element so indexes stay aligned.
				out[i] = el
			}
		}
		if !w.applyRules(value, prop, p) {
			return nil, false
		}
		return out, true

	case schema.TypeObject:
		m, ok := value.(map[string]any)
		if !ok {
			w.failType(p, prop.Type)
			return nil, false
		}
		out := make(map[string]any, len(prop.Properties))
		for _, name := range prop.Keys() {
			sv, subPresent := m[name]
			norm, okSub := w.visit(sv, subPresent, prop.Properties[name], append(p, name))
			if okSub {
				out[name] = norm
			}
		}
		if !w.applyRules(value, prop, p) {
			return nil, false
		}
		return out, true

	default:
		if !typeMatches(value, prop.Type) {
			w.failType(p, prop.Type)
			return nil, false
		}
		if !w.applyRules(value, prop, p) {
			return nil, false
		}
		return value, true
	}
}

// applyRules runs the property's directives in declaration order and stops
// at the first failure.
func (w *walker) applyRules(value any, prop *schema.Property, p path) bool {
	for _, d := range prop.Rules {
		rule, ok := w.reg.Lookup(d.Name)
		if !ok {
			// Rule names are verified at construction; a rule removed from
			// the registry afterwards is skipped.
			continue
		}
		if !rule.Evaluate(value, d.Args, w.record) {
			w.fail(p, domain.RuleFailureID(d.Name), rule.Message(d.Args))
			return false
		}
	}
	return true
}

func typeMatches(value any, t schema.Type) bool {
	switch t {
	case schema.TypeString:
		_, ok := value.(string)
		return ok
	case schema.TypeBoolean:
		_, ok := value.(bool)
		return ok
	case schema.TypeInteger:
		switch v := value.(type) {
		case int, int8, int16, int32, int64:
			return true
		case float32:
			return float64(v) == math.Trunc(float64(v))
		case float64:
			// JSON decoding yields float64 for every number; accept wholes.
			return !math.IsInf(v, 0) && v == math.Trunc(v)
		}
		return false
	case schema.TypeNumber:
		f, ok := toFloat(value)
		return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	return false
}

func asSlice(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	if value == nil {
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
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
