package utils

import (
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Same shape check the service has always used: something@something.tld
// with no whitespace in any part.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func IsValidEmail(email string) bool {
	return emailShape.MatchString(email)
}

func ValidateEmailRule(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}

// RegisterCustomValidators adds the project's validation rules to v.
func RegisterCustomValidators(v *validator.Validate) error {
	return v.RegisterValidation("emailshape", ValidateEmailRule)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with custom rules registered. The
// gin binding engine gets the same rules so `binding:"emailshape"` works on
// request DTOs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterCustomValidators(validate); err != nil {
			panic(err)
		}
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := RegisterCustomValidators(v); err != nil {
				panic(err)
			}
		}
	})
	return validate
}
