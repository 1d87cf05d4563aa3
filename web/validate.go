package web

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/drimcity/drimcity-go/apperror"
)

// FieldRule carries the machine-readable code and human message for one
// validator tag on one field.
type FieldRule struct {
	Code    string
	Message string
}

// RuleSet maps a field's JSON name to its per-tag rules. Each feature package
// declares one RuleSet per request type next to its error code catalog.
type RuleSet map[string]map[string]FieldRule

// NewValidator builds a validator that reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate runs the validator against req and translates failures into a
// Validation error using the given rules. Tags without a declared rule fall
// back to the raw tag name so a missing catalog entry is visible, not silent.
func Validate(v *validator.Validate, req interface{}, rules RuleSet) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperror.NewInternalError("request validation failed", err)
	}

	fields := make([]apperror.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		rule, ok := rules[fe.Field()][fe.Tag()]
		if !ok {
			rule = FieldRule{
				Code:    fe.Tag(),
				Message: fmt.Sprintf("%s failed validation rule %s", fe.Field(), fe.Tag()),
			}
		}
		fields = append(fields, apperror.FieldError{
			Field:   fe.Field(),
			Message: rule.Message,
			Code:    rule.Code,
		})
	}

	return apperror.NewValidationError(fields...)
}
