// Package validate wraps go-playground/validator behind the small surface
// the HTTP handlers share: one cached validator instance, struct tag
// validation, and short client-facing messages for the first failure.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

func v() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return instance
}

// Struct validates the exported fields of s against their validate tags.
func Struct(s any) error {
	return v().Struct(s)
}

// Message converts a validation error into a message safe to return to
// clients. Only the first failing field is reported.
func Message(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "invalid request"
	}

	ve := ves[0]
	field := ve.Field()
	switch ve.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if ve.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, ve.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, ve.Param())
	case "max":
		if ve.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, ve.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, ve.Param())
	case "uuid":
		return fmt.Sprintf("%s must be a valid UUID", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, ve.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, ve.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
