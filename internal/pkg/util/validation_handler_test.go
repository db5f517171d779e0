package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type validateSample struct {
	Username string `validate:"required,max=8"`
}

func TestValidateDTO(t *testing.T) {
	assert.NoError(t, ValidateDTO(&validateSample{Username: "tom"}))

	err := ValidateDTO(&validateSample{})
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Message, "Username")
	assert.Contains(t, vErr.Message, "required")
}
