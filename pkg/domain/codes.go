package domain

import (
	"strings"
	"unicode"
)

// TypeFailureID builds the error code for a type mismatch or cast failure,
// following the VALIDATION_ERROR_NOT_<TYPE> pattern (e.g. type "number"
// yields VALIDATION_ERROR_NOT_NUMBER).
func TypeFailureID(typeName string) string {
	return "VALIDATION_ERROR_NOT_" + strings.ToUpper(typeName)
}

// RuleFailureID builds the error code for a failed validation rule,
// following the VALIDATION_FAILED_<NAME> pattern with the camelCase rule
// name flattened to upper snake case (e.g. "betweenNumber" yields
// VALIDATION_FAILED_BETWEEN_NUMBER, "phoneUS" yields VALIDATION_FAILED_PHONE_US).
func RuleFailureID(ruleName string) string {
	return "VALIDATION_FAILED_" + upperSnake(ruleName)
}

func upperSnake(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev) || unicode.IsDigit(prev):
				b.WriteByte('_')
			case unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// Break runs of capitals before a trailing word (e.g. "GBPhone").
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
