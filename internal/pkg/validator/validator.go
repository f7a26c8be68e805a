// Package validator evaluates the validate tags on request DTOs, for rules
// that go beyond gin's binding layer.
package validator

import (
	"errors"

	validatorlib "github.com/go-playground/validator/v10"
)

var v = validatorlib.New()

// Validate checks the struct's validate tags and returns a field name to
// failed-tag map, or nil when the value is valid. The map feeds the details
// payload of the error envelope.
func Validate(s any) map[string]string {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validatorlib.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": "invalid"}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
