package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medhq/hospital-api/pkg/security"
)

// RegisterValidators installs the custom binding rules on gin's validator
// engine. Called once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return security.ValidatePolicy(fl.Field().String()) == nil
	})
}
