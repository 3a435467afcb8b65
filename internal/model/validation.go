package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = newValidator("validate")
	validatePatch = newValidator("patch")
)

func newValidator(tag string) *validator.Validate {
	v := validator.New()
	v.SetTagName(tag)
	// Report JSON field names so the client can map errors back to its form.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks a full payload (create and full update).
func Validate(v any) error {
	return validate.Struct(v)
}

// ValidatePatch checks a merge-patch payload: supplied fields must be well-formed,
// missing fields are allowed.
func ValidatePatch(v any) error {
	return validatePatch.Struct(v)
}
