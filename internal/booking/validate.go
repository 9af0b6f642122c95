package booking

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}

		return name
	})

	return v
}

// tripFields are the inputs of the first step of the booking form.
type tripFields struct {
	PickupLocation  string `json:"pickupLocation"  validate:"required"`
	DropoffLocation string `json:"dropoffLocation" validate:"required"`
	PickupDate      string `json:"pickupDate"      validate:"required,datetime=2006-01-02"`
	DropoffDate     string `json:"dropoffDate"     validate:"required,datetime=2006-01-02"`
}

func validateStruct(prefix string, s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err //nolint:wrapcheck
	}

	inputErr := newInputError()

	for _, fe := range validationErrors {
		inputErr.addError(prefix+"."+fe.Field(), message(fe))
	}

	return inputErr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "provide valid email"
	case "datetime":
		return "provide date as " + fe.Param()
	default:
		return "invalid value"
	}
}
