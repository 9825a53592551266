package validation

import (
	"net/url"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
)

func NewValidator() (*validator.Validate, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	register(validate)
	if err := registerCustomValidators(validate); err != nil {
		return nil, err
	}
	return validate, nil
}

func register(instance *validator.Validate) {
	// register function to get tag name from json tags
	instance.RegisterTagNameFunc(
		func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		},
	)
}

func registerCustomValidators(instance *validator.Validate) error {
	// origin accepts "*" or a scheme://host[:port] origin without path
	return instance.RegisterValidation("origin", func(fl validator.FieldLevel) bool {
		return IsOrigin(fl.Field().String())
	})
}

// IsOrigin reports whether value can be used as a CORS allowed origin.
func IsOrigin(value string) bool {
	if value == "*" {
		return true
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != "" && (u.Path == "" || u.Path == "/") && u.RawQuery == ""
}
