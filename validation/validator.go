// Package validation decodes JSON request bodies and checks them against `validate` struct tags.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/user/unidirectory-go/apperror"
)

// maxBodyBytes bounds request bodies; every payload this API accepts is tiny.
const maxBodyBytes = 1 << 20

// Validator wraps the go-playground validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct validates s. The first failing field becomes a ValidationError whose message
// names the field, e.g. "universityId is required".
func (v *Validator) ValidateStruct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return apperror.NewValidationError(message(fieldErrs[0]), err)
	}
	return apperror.NewInternalError("validation failed", err)
}

// Bind decodes the JSON body of r into dst and validates it.
func (v *Validator) Bind(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.NewBadRequestError("request body is required", nil)
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.NewBadRequestError("request body is required", err)
		}
		return apperror.NewBadRequestError("invalid request body", err)
	}
	return v.ValidateStruct(dst)
}

func message(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "gt", "gte", "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
		}
		return fmt.Sprintf("%s must be a positive integer", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
