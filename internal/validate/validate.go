// Package validate checks the shape of decoded request payloads.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/and161185/medidesk/internal/errs"
	"github.com/and161185/medidesk/internal/model"
)

// Validator wraps go-playground/validator with JSON field names and the "role" rule.
type Validator struct {
	v *validator.Validate
}

// New creates a Validator. It is safe for concurrent use.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := model.ParseRole(fl.Field().String())
		return ok
	})
	return &Validator{v: v}
}

// FieldError maps a JSON field name to a user-facing message.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, e.Fields[f])
	}
	return strings.Join(parts, ", ")
}

// Unwrap lets callers match errs.ErrBadRequest.
func (e *FieldError) Unwrap() error { return errs.ErrBadRequest }

// Struct validates s. Failures are returned as *FieldError.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("%w: %v", errs.ErrBadRequest, err)
	}
	fe := &FieldError{Fields: make(map[string]string, len(ve))}
	for _, e := range ve {
		fe.Fields[e.Field()] = message(e)
	}
	return fe
}

func message(e validator.FieldError) string {
	f := e.Field()
	switch e.Tag() {
	case "required":
		return f + " est requis"
	case "email":
		return f + " doit être une adresse e-mail valide"
	case "min":
		return fmt.Sprintf("%s doit contenir au moins %s caractères", f, e.Param())
	case "max":
		return fmt.Sprintf("%s doit contenir au plus %s caractères", f, e.Param())
	case "gt":
		return f + " doit être un identifiant positif"
	case "role":
		return f + " doit valoir ADMIN ou CLIENT"
	default:
		return f + " est invalide"
	}
}
