// Package schema compiles authored, declarative schemas into an immutable
// tree ready for validation.
//
// An authored schema is a plain mapping with a mode, an optional cast flag,
// and named property definitions:
//
//	raw := map[string]any{
//	    "mode": "filter",
//	    "cast": true,
//	    "properties": map[string]any{
//	        "name":   map[string]any{"type": "string", "validation": "required"},
//	        "age":    map[string]any{"type": "int", "default": 0},
//	        "skills": map[string]any{"type": "string", "array": true},
//	        "address": map[string]any{
//	            "type": "object",
//	            "properties": map[string]any{
//	                "street": map[string]any{"type": "string"},
//	            },
//	        },
//	    },
//	}
//	root, err := schema.Compile(raw)
//
// Compilation resolves type synonyms (int/integer, float/number,
// bool/boolean), normalizes both array forms ("type: array" with a nested
// item schema, or a scalar type with "array: true") to the same internal
// shape, and parses validation rule strings once so validation never
// touches the mini-language again. Compiling an already-compiled validation
// list is a no-op.
//
// Schemas can also be authored in Go via the factory functions:
//
//	root, err := schema.FromProperties(schema.ModeFilter, false, map[string]*schema.Property{
//	    "email": schema.String().WithValidation("email"),
//	    "score": schema.Number().WithValidation("betweenNumber[0,100]"),
//	})
//
// Compiled schemas are copied on construction and never mutated afterwards,
// so a single Root is safe for unsynchronized concurrent validation calls.
package schema
