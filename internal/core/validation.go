// AngelaMos | 2026
// validation.go

package core

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var PasswordRuleMessage = fmt.Sprintf(
	"Parol kamida %d ta belgidan iborat bo'lishi va katta harf, kichik harf hamda raqam o'z ichiga olishi kerak",
	MinPasswordLength,
)

// NewValidator returns a validator that knows the strongpwd tag and
// reports fields by their form name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	//nolint:errcheck // tag name and func are static
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	})

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if label := f.Tag.Get("label"); label != "" {
			return label
		}
		if name := strings.Split(f.Tag.Get("form"), ",")[0]; name != "" && name != "-" {
			return name
		}
		return f.Name
	})

	return v
}

// FormatValidationError renders the first failing field as one
// human-readable sentence.
func FormatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Ma'lumotlar noto'g'ri kiritilgan"
	}

	fe := verrs[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s maydoni to'ldirilishi shart", field)
	case "email":
		return "Email manzil noto'g'ri"
	case "strongpwd":
		return PasswordRuleMessage
	case "eqfield":
		return "Parollar mos kelmadi"
	case "min":
		return fmt.Sprintf("%s kamida %s ta belgidan iborat bo'lishi kerak", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s ko'pi bilan %s ta belgidan iborat bo'lishi kerak", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s qiymati noto'g'ri", field)
	case "gte", "lte":
		return fmt.Sprintf("%s qiymati ruxsat etilgan oraliqda emas", field)
	default:
		return fmt.Sprintf("%s maydoni noto'g'ri", field)
	}
}
