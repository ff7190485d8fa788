package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRules_ReportsRejectedRule(t *testing.T) {
	v := validator.New()

	err := registerRules(v, map[string]validator.Func{
		"": func(validator.FieldLevel) bool { return true },
	})

	assert.Error(t, err)
}

func TestNewValidator_URLPath(t *testing.T) {
	// Arrange
	v, err := NewValidator()
	require.NoError(t, err)
	type target struct {
		Path string `validate:"urlpath"`
	}

	// Act & Assert
	assert.NoError(t, v.Validate(target{Path: "/metrics"}))
	assert.Error(t, v.Validate(target{Path: "metrics"}))
	assert.Error(t, v.Validate(target{Path: "/metrics?x=1"}))
}
