package exceptions

import (
	"errors"
	"medtour-service/internal/pkg/constvars"
	"strings"

	"github.com/go-playground/validator/v10"
)

func FormatFirstValidationError(err error) string {
	if err == nil {
		return constvars.ErrClientCannotProcessRequest
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return constvars.ErrDevInvalidInput
	}

	return formatFieldError(validationErrors[0])
}

func FormatAllValidationErrors(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return constvars.ErrClientCannotProcessRequest
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, formatFieldError(fieldErr))
	}
	return strings.Join(messages, ", ")
}

func formatFieldError(fieldErr validator.FieldError) string {
	tag := fieldErr.Tag()
	customMessage, ok := constvars.CustomValidationErrorMessages[tag]
	if !ok {
		customMessage = "is invalid"
	}

	if constvars.TagsWithParams[tag] {
		param := fieldErr.Param()
		if tag == "oneof" {
			param = strings.Join(strings.Fields(param), ", ")
		}
		customMessage = strings.Replace(customMessage, "%s", param, 1)
	}
	return fieldErr.Field() + " " + customMessage
}
