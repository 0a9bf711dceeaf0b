package validator

import (
	"errors"
	"strings"

	"github.com/commute-emissions/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("propulsion", func(fl validator.FieldLevel) bool {
		_, err := domain.ParsePropulsion(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("carsize", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseCarSize(fl.Field().String())
		return err == nil
	})
	_ = validate.RegisterValidation("transportkind", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseKind(fl.Field().String())
		return err == nil
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors - поля с ошибками валидации и нарушенные правила,
// nil если err не является ошибкой валидации
func FieldErrors(err error) map[string]interface{} {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fe.Tag()
	}
	return fields
}
