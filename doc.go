// Package sieve validates arbitrary nested data against a declarative
// schema and returns either a normalized copy of the data or a map of
// path-qualified field errors.
//
// A schema describes the expected shape, types, defaults, and per-field
// validation rules of a keyed structure. It is compiled once:
//
//	v, err := sieve.New(map[string]any{
//	    "cast": true,
//	    "properties": map[string]any{
//	        "email": map[string]any{"type": "string", "validation": "email"},
//	        "age":   map[string]any{"type": "int", "validation": "betweenNumber[0,150]"},
//	        "tags":  map[string]any{"type": "string", "array": true},
//	    },
//	})
//	if err != nil {
//	    // broken schema: bad type name or malformed rule string
//	}
//
// and then reused across any number of concurrent validation calls:
//
//	res, err := v.Validate(payload)
//	if err != nil {
//	    // strict-mode violation: payload had keys the schema does not allow
//	}
//	if !res.Success {
//	    for path, e := range res.Errors {
//	        fmt.Println(path, e.ID, e.Value)
//	    }
//	}
//
// Errors are keyed by dotted and bracketed paths ("address.street",
// "skills[0]") and carry stable machine-readable codes such as
// VALIDATION_ERROR_NOT_NUMBER and VALIDATION_FAILED_EMAIL. The schema mode
// controls unschemaed top-level keys: "filter" (default) drops them,
// "loose" passes them through, and "strict" makes Validate fail outright.
//
// New validation rules plug in by name without touching the engine:
//
//	v, err := sieve.New(raw, sieve.WithRule("even", rules.Func{
//	    Fn: func(value any, args []rules.Arg, record map[string]any) bool {
//	        n, ok := value.(int)
//	        return ok && n%2 == 0
//	    },
//	    Template: "Value should be even",
//	}))
//
// The subpackages hold the moving parts: pkg/schema compiles authored
// schemas, pkg/rules parses the rule mini-language and hosts the registry,
// and pkg/domain defines the result types.
package sieve
