package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "validation error",
			err:      Validation("name", "must not be empty"),
			expected: "Error: validation failed: name must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Format(tt.err))
		})
	}
}

func TestTaxonomy(t *testing.T) {
	verr := fmt.Errorf("add habit: %w", Validation("kind", "is not supported"))
	assert.True(t, IsValidation(verr))
	assert.False(t, IsReference(verr))

	rerr := fmt.Errorf("add log: %w", Reference(42))
	assert.True(t, IsReference(rerr))
	assert.False(t, IsValidation(rerr))
	assert.Contains(t, rerr.Error(), "no habit with id 42")
}
