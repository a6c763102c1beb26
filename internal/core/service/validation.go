package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tourista/tourism-api/internal/core/domain"
)

var validate = validator.New()

func checkEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return domain.NewValidationError("email", "must be a valid email")
	}
	return nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name", "is required")
	}
	return nil
}

func checkPhone(phone string) error {
	if phone == "" {
		return nil
	}
	if err := validate.Var(strings.TrimPrefix(phone, "+"), "numeric,min=7,max=15"); err != nil {
		return domain.NewValidationError("phone", "must be a valid phone number")
	}
	return nil
}

// checkField validates a single profile field value.
func checkField(field, value string) error {
	switch field {
	case "name":
		return checkName(value)
	case "email":
		return checkEmail(domain.NormalizeEmail(value))
	case "password":
		return domain.CheckPassword(value)
	case "phone":
		return checkPhone(value)
	}
	return nil
}
