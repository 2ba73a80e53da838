package dto

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/guttosm/tour-package-service/internal/catalog"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{6,18}[0-9]$`)

// RegisterValidators installs the custom binding tags used by the request
// types: bracket, sortkey and phone.
func RegisterValidators(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"bracket": func(fl validator.FieldLevel) bool {
			_, err := catalog.ParseBracket(fl.Field().String())
			return err == nil
		},
		"sortkey": func(fl validator.FieldLevel) bool {
			_, ok := catalog.ParseSortKey(fl.Field().String())
			return ok
		},
		"phone": func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
