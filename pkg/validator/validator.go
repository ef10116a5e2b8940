package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return e.Message
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]

		if name == "-" {
			return ""
		}

		return name
	})

	return &Validator{validate: v}
}

func (v *Validator) Validate(i any) ([]ValidationError, bool) {
	err := v.validate.Struct(i)
	if err == nil {
		return nil, true
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Code: "INVALID", Message: err.Error()}}, false
	}

	errors := make([]ValidationError, 0, len(validationErrors))
	for _, err := range validationErrors {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min", "gte":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			message = fmt.Sprintf("%s must not exceed %s", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("%s must be one of [%s]", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("%s is invalid", err.Field())
		}

		errors = append(errors, ValidationError{
			Field:   err.Field(),
			Code:    strings.ToUpper(err.Tag()),
			Message: message,
		})
	}

	return errors, false
}

// Struct is Validate for callers that only need an error.
func (v *Validator) Struct(i any) error {
	if validationErrors, ok := v.Validate(i); !ok {
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, e.Message)
		}

		return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
	}

	return nil
}
