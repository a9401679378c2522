// Package forms maps untrusted request input onto typed, validated values.
package forms

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field describes how a form input is presented.
type Field struct {
	Name     string
	Label    string
	HelpText string
}

// Errors maps a form field name to its messages. The empty key holds
// errors that do not belong to a single field.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Get(field string) []string {
	return e[field]
}

func (e Errors) Valid() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e[field], " ")))
	}
	return strings.Join(parts, "; ")
}

// AsErrors extracts field errors from err, if it carries any.
func AsErrors(err error) (Errors, bool) {
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// NewValidator returns a validator that reports fields by their form names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return v
}

func validateStruct(v *validator.Validate, form interface{}) Errors {
	errs := Errors{}

	err := v.Struct(form)
	if err == nil {
		return errs
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs.Add("", err.Error())
		return errs
	}

	for _, fe := range validationErrors {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "uuid":
		return "Select a valid choice. That choice is not one of the available choices."
	case "email":
		return "Enter a valid email address."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	case "eqfield":
		return "The two password fields didn't match."
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}

// parse reads urlencoded or multipart bodies into r.Form.
func parse(r *http.Request, maxMemory int64) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMemory)
	}
	return r.ParseForm()
}
