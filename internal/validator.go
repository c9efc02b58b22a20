package internal

import (
	"regexp"

	"github.com/Barathraj2387/Survey-App/internal/survey/question"
	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("question_type", func(fl validator.FieldLevel) bool {
		return question.IsValidType(fl.Field().String())
	})

	_ = v.RegisterValidation("email_local", func(fl validator.FieldLevel) bool {
		re := regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
		return re.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err != nil {
		return err
	}
	return nil
}
