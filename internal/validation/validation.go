package validation

import (
	"github.com/go-playground/validator/v10"

	"example.com/relieftrack/services/tracker/internal/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.ItemCategory(fl.Field().String()).Valid()
	})

	validate.RegisterValidation("purok", func(fl validator.FieldLevel) bool {
		return model.ValidPurok(fl.Field().String())
	})
}

// ValidateStruct validates a struct using validation tags
func ValidateStruct(s interface{}) error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	return nil
}
