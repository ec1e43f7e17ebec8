// Package validation membungkus go-playground/validator untuk input request.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s wajib diisi", e.Field)
	case "oneof":
		return fmt.Sprintf("%s harus salah satu dari: %s", e.Field, strings.ReplaceAll(e.Param, " ", ", "))
	case "email":
		return fmt.Sprintf("%s bukan email yang valid", e.Field)
	case "min":
		return fmt.Sprintf("%s minimal %s", e.Field, e.Param)
	case "gtfield":
		return fmt.Sprintf("%s harus setelah %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s tidak valid (%s)", e.Field, e.Tag)
	}
}

// Errors is returned by Struct when at least one rule fails.
type Errors []FieldError

func (ve Errors) Error() string {
	msgs := make([]string, 0, len(ve))
	for _, e := range ve {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Get returns the shared validator instance. Field names in errors use the json tag.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates s and converts validator errors into Errors.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := make(Errors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
