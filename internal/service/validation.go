package service

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/dtroode/expense-auth/internal/apperr"
)

const (
	passwordMinLength = 8
	passwordMaxLength = 64

	msgPasswordComplexity = "password must contain at least one uppercase letter, one lowercase letter and one number or symbol"
)

var fieldNames = map[string]string{
	"Email":           "email",
	"Password":        "password",
	"ConfirmPassword": "confirm password",
	"FirstName":       "first name",
	"LastName":        "last name",
	"BirthDate":       "birth date",
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// normalizeEmail makes emails comparable regardless of case and padding.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperr.Validation("invalid input")
	}

	fe := verrs[0]
	field, ok := fieldNames[fe.Field()]
	if !ok {
		field = strings.ToLower(fe.Field())
	}

	switch fe.Tag() {
	case "required":
		return apperr.Validationf("%s is required", field)
	case "email":
		return apperr.Validation("email is invalid")
	case "max":
		return apperr.Validationf("%s must be at most %s characters long", field, fe.Param())
	default:
		return apperr.Validationf("%s is invalid", field)
	}
}

func validateEmail(v *validator.Validate, email string) error {
	if email == "" {
		return apperr.Validation("email is required")
	}
	if err := v.Var(email, "email"); err != nil {
		return apperr.Validation("email is invalid")
	}
	return nil
}

func checkPasswordPolicy(password string) error {
	n := utf8.RuneCountInString(password)
	if n < passwordMinLength {
		return apperr.Validationf("password must be at least %d characters long", passwordMinLength)
	}
	if n > passwordMaxLength {
		return apperr.Validationf("password must be at most %d characters long", passwordMaxLength)
	}

	var upper, lower, other bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			other = true
		}
	}
	if !upper || !lower || !other {
		return apperr.Validation(msgPasswordComplexity)
	}

	return nil
}
