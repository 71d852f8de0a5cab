package service

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report errors under the JSON field name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// fieldMessages maps "<json field>.<rule>" to its user-facing message.
// Anything not listed falls through to a generic message per rule.
var fieldMessages = map[string]string{
	"nombre.required":   "El nombre es obligatorio.",
	"apellido.required": "El apellido es obligatorio.",
	"telefono.required": "El teléfono es obligatorio.",
	"email.required":    "El correo electrónico es obligatorio.",
	"email.email":       "El correo electrónico debe ser válido.",
	"direccion.max":     "La dirección no puede exceder los 500 caracteres.",

	"first_name.required":            "El nombre es obligatorio.",
	"last_name.required":             "El apellido es obligatorio.",
	"password.required":              "La contraseña es obligatoria.",
	"password.min":                   "La contraseña debe tener al menos 8 caracteres.",
	"password_confirmation.required": "La confirmación de la contraseña es obligatoria.",
	"password_confirmation.eqfield":  "La confirmación de la contraseña no coincide.",
}

// Messages for per-owner uniqueness failures, shared by the pre-write check
// and the unique-key backstop translation.
const (
	msgDuplicatePhone        = "Ya tienes un contacto registrado con este número de teléfono."
	msgDuplicateContactEmail = "Ya tienes un contacto registrado con este correo electrónico."
	msgDuplicateUserEmail    = "El correo electrónico ya está registrado."
)

// validateStruct runs the validator tags on req and converts failures into a
// ValidationError. Returns nil when the struct is valid.
func validateStruct(req any) *ValidationError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	ve := newValidationError()

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		ve.add("_", "Los datos proporcionados no son válidos.")
		return ve
	}

	for _, fe := range fieldErrs {
		ve.add(fe.Field(), messageFor(fe))
	}
	return ve
}

func messageFor(fe validator.FieldError) string {
	if msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "El campo " + fe.Field() + " es obligatorio."
	case "max":
		return "El campo " + fe.Field() + " no puede exceder los " + fe.Param() + " caracteres."
	case "min":
		return "El campo " + fe.Field() + " debe tener al menos " + fe.Param() + " caracteres."
	case "email":
		return "El correo electrónico debe ser válido."
	}
	return "El campo " + fe.Field() + " no es válido."
}
