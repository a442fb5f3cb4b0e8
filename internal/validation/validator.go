// Marquee - Film Affinity Estimator
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// catalogKeyPattern matches genre, theme, rating, season and feature identifiers
// such as "SCIFI", "PG-13", "TIME_TRAVEL" or "costumes-&-makeup".
var catalogKeyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_&\-]{0,63}$`)

// IsCatalogKey reports whether s is a well-formed catalog identifier.
func IsCatalogKey(s string) bool {
	return catalogKeyPattern.MatchString(s)
}

var shared = sync.OnceValue(newValidator)

// GetValidator returns the process-wide validator.
//
// Field names in messages come from the json tag so clients see the names they sent.
// Custom tags:
//   - catalog_key: a catalog identifier (letters, digits, '_', '-', '&'; at most 64 chars)
func GetValidator() *validator.Validate {
	return shared()
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)

	err := v.RegisterValidation("catalog_key", func(fl validator.FieldLevel) bool {
		return IsCatalogKey(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register catalog_key validator: %v", err))
	}
	return v
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return fld.Name
	default:
		return name
	}
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field   string      // json name of the field
	Tag     string      // failed tag, e.g. "required"
	Param   string      // tag parameter, e.g. "100" for "max=100"
	Value   interface{} // rejected value
	Message string      // human readable description
}

// Errors holds every failed constraint of one struct. A nil Errors means the
// struct is valid.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	parts := make([]string, len(e))
	for i := range e {
		parts[i] = e[i].Message
	}
	return strings.Join(parts, "; ")
}

// Details renders the failures as API error details. A single failure is
// flattened to field/tag/value; several are listed under "fields".
func (e Errors) Details() map[string]interface{} {
	switch len(e) {
	case 0:
		return nil
	case 1:
		return map[string]interface{}{
			"field": e[0].Field,
			"tag":   e[0].Tag,
			"value": e[0].Value,
		}
	}

	fields := make([]map[string]interface{}, len(e))
	for i, fe := range e {
		fields[i] = map[string]interface{}{
			"field":   fe.Field,
			"tag":     fe.Tag,
			"message": fe.Message,
		}
	}
	return map[string]interface{}{"fields": fields}
}

// ValidateStruct validates s and returns nil when every constraint holds.
//
// Compare the result against nil before storing it in an error variable; a nil
// Errors held by an error interface is not a nil error.
func ValidateStruct(s interface{}) Errors {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}

	out := make(Errors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Value:   fe.Value(),
			Message: describe(fe),
		})
	}
	return out
}

// describe turns a validator failure into a sentence about the field.
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "catalog_key":
		return field + " must be a catalog identifier"
	case "unique":
		return field + " must not contain duplicates"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "nefield":
		return fmt.Sprintf("%s must differ from %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s%s", field, param, sizeUnit(fe.Kind()))
	case "max":
		return fmt.Sprintf("%s must be at most %s%s", field, param, sizeUnit(fe.Kind()))
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

func sizeUnit(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Map, reflect.Array:
		return " items"
	}
	return ""
}
