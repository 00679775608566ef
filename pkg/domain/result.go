package domain

// ErrorEntry describes a single field-level validation failure.
// ID is a stable machine-readable code (e.g. VALIDATION_ERROR_NOT_NUMBER,
// VALIDATION_FAILED_EMAIL); Value is the human-readable message with any
// rule-argument placeholders already substituted.
type ErrorEntry struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Result is the outcome of one validation run.
//
// Data is the normalized copy of the input: defaults applied, casts applied
// when enabled, and unschemaed keys handled per the schema mode. Errors maps
// dotted/bracketed field paths (e.g. "specials.curve", "skills[0]") to the
// first failure recorded at that path; it is nil when the run succeeded.
type Result struct {
	Success bool                  `json:"success"`
	Data    map[string]any        `json:"data"`
	Errors  map[string]ErrorEntry `json:"errors,omitempty"`
}
