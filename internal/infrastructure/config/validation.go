package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is a wrapper around go-playground/validator
type Validator struct {
	validate *validator.Validate
}

// customRules are the validation tags beyond the validator built-ins
var customRules = map[string]validator.Func{
	// urlpath: an absolute HTTP path such as /metrics
	"urlpath": func(fl validator.FieldLevel) bool {
		p := fl.Field().String()
		return strings.HasPrefix(p, "/") && !strings.ContainsAny(p, " ?#")
	},
}

// NewValidator creates a new validator instance with custom validation rules
func NewValidator() (*Validator, error) {
	v := validator.New()
	if err := registerRules(v, customRules); err != nil {
		return nil, err
	}

	return &Validator{
		validate: v,
	}, nil
}

func registerRules(v *validator.Validate, rules map[string]validator.Func) error {
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation rule %q: %w", tag, err)
		}
	}
	return nil
}

// Validate validates a struct using validation tags
func (v *Validator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return v.formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func (v *Validator) formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrs {
			messages = append(messages, fmt.Sprintf(
				"field '%s' failed validation: %s (value: '%v')",
				e.Namespace(),
				e.Tag(),
				e.Value(),
			))
		}
		return fmt.Errorf("validation failed:\n  %s", strings.Join(messages, "\n  "))
	}
	return err
}

// ValidateConfig validates the entire configuration
func ValidateConfig(cfg *Config) error {
	v, err := NewValidator()
	if err != nil {
		return err
	}
	return v.Validate(cfg)
}
