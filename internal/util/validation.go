package util

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/soycar/hotel-portal/internal/errors"
	"github.com/soycar/hotel-portal/internal/model"
)

var validate = newValidator()

var messages = map[string]string{
	"required": "{field} is required",
	"email":    "{field} must be a valid email address",
	"min":      "{field} must be at least {param} characters",
	"max":      "{field} must be at most {param} characters",
	"oneof":    "{field} must be one of {param}",
	"datetime": "{field} must match the format {param}",
	"eqfield":  "Passwords do not match",

	"service_type":   "{field} is not a known service",
	"booking_status": "{field} must be one of pending, confirmed, completed, cancelled",
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON names so messages match what the client sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	must(v.RegisterValidation("service_type", func(fl validator.FieldLevel) bool {
		return model.ServiceType(fl.Field().String()).Valid()
	}))
	must(v.RegisterValidation("booking_status", func(fl validator.FieldLevel) bool {
		return model.BookingStatus(fl.Field().String()).Valid()
	}))

	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// ValidateStruct runs the struct's validate tags. The first failure becomes
// the message; every failing field is listed in the details.
func ValidateStruct(data any) error {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var valErrors validator.ValidationErrors
	if !errors.As(err, &valErrors) {
		return apperrors.ValidationError(err.Error())
	}

	details := make(map[string]string, len(valErrors))
	for _, fe := range valErrors {
		details[fe.Field()] = message(fe)
	}

	return apperrors.ValidationError(message(valErrors[0])).WithDetails(details)
}

func message(fe validator.FieldError) string {
	tmpl, ok := messages[fe.Tag()]
	if !ok {
		return fe.Error()
	}
	msg := strings.ReplaceAll(tmpl, "{field}", fe.Field())
	return strings.ReplaceAll(msg, "{param}", fe.Param())
}
