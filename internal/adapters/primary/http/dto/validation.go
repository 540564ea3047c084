package dto

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"article-service/internal/core/domain"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules used by the request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("textformat", validateTextFormat)
	})
}

func validateTextFormat(fl validator.FieldLevel) bool {
	return domain.IsKnownTextFormat(fl.Field().String())
}
