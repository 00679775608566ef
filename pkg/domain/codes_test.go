package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/sieve/pkg/domain"
)

func TestTypeFailureID(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR_NOT_NUMBER", domain.TypeFailureID("number"))
	assert.Equal(t, "VALIDATION_ERROR_NOT_STRING", domain.TypeFailureID("string"))
	assert.Equal(t, "VALIDATION_ERROR_NOT_ARRAY", domain.TypeFailureID("array"))
}

func TestRuleFailureID(t *testing.T) {
	cases := map[string]string{
		"email":         "VALIDATION_FAILED_EMAIL",
		"betweenNumber": "VALIDATION_FAILED_BETWEEN_NUMBER",
		"phoneUS":       "VALIDATION_FAILED_PHONE_US",
		"phoneGB":       "VALIDATION_FAILED_PHONE_GB",
		"required":      "VALIDATION_FAILED_REQUIRED",
	}
	for name, want := range cases {
		assert.Equal(t, want, domain.RuleFailureID(name), "rule %q", name)
	}
}
