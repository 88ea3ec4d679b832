package utils

import (
	"medtour-service/internal/pkg/constvars"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("not_blank", validateNotBlank)
	validate.RegisterValidation("specialization", validateSpecialization)
	validate.RegisterValidation("blood_group", validateBloodGroup)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func jsonFieldName(field reflect.StructField) string {
	for _, tagName := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateSpecialization(fl validator.FieldLevel) bool {
	return slices.Contains(constvars.DoctorSpecializations, fl.Field().String())
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || slices.Contains(constvars.BloodGroups, value)
}
