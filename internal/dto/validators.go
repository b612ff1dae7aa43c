package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/prospel/prospel_backend/internal/core/domain"
	"github.com/prospel/prospel_backend/internal/utils/refnumber"
)

// RegisterCustomValidators installs the request validators used by the DTO
// binding tags. Call once at startup.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// dateonly: string holds a YYYY-MM-DD date. Used on query params, where
	// gin binds into plain strings.
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseDate(fl.Field().String())
		return err == nil
	})

	// pib: Serbian tax identification number, 9 digits.
	_ = v.RegisterValidation("pib", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 9 {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})

	// refnumber: model 97 structured payment reference with valid control
	// digits.
	_ = v.RegisterValidation("refnumber", func(fl validator.FieldLevel) bool {
		return refnumber.Valid(fl.Field().String())
	})
}
