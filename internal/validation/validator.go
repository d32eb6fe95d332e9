package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("holder_name", validateHolderName)
	_ = v.RegisterValidation("view_mode", validateViewMode)
	_ = v.RegisterValidation("top_n", validateTopN)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateHolderName validates that a holder name is non-blank and free
// of path separators, which would break the per-holder endpoint paths
func validateHolderName(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if strings.TrimSpace(name) == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^[^/\\]+$`, name)
	return matched
}

// validateViewMode validates that a view mode is one of the four modes
func validateViewMode(fl validator.FieldLevel) bool {
	mode := strings.ToLower(fl.Field().String())
	validModes := map[string]bool{
		"aggregate":       true,
		"transactions":    true,
		"tables":          true,
		"recommendations": true,
	}
	return validModes[mode]
}

// validateTopN validates that a category limit is a positive integer
func validateTopN(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	default:
		return false
	}
}
