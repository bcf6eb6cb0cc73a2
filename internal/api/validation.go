package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"gongobongo-backend-go/internal/models"
)

// init registers the custom binding rules used by the request models.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("theme", validTheme)
	}
}

// validTheme accepts only the supported theme preference values.
func validTheme(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case models.ThemeLight, models.ThemeDark:
		return true
	}
	return false
}
