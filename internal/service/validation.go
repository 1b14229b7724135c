package service

import (
	"errors"
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	appErrors "github.com/campusware/university-api/pkg/errors"
)

// NewValidator builds the shared validator with the domain's custom rules.
//
//   - notfuture: a time.Time field must not be after now (hire dates, birth
//     dates, registration dates).
//   - strongpassword: at least 8 characters with one uppercase letter, one
//     digit and one special character.
func NewValidator() *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return false
		}
		return !t.After(time.Now())
	})

	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 {
			return false
		}
		var upper, digit, special bool
		for _, r := range password {
			switch {
			case unicode.IsUpper(r):
				upper = true
			case unicode.IsDigit(r):
				digit = true
			case unicode.IsPunct(r) || unicode.IsSymbol(r):
				special = true
			}
		}
		return upper && digit && special
	})

	return v
}

// validationError converts a validator failure into the domain validation
// error, carrying one human-readable message per offending field so the UI
// can render all of them at once.
func validationError(err error, message string) *appErrors.Error {
	base := appErrors.Clone(appErrors.ErrValidation, message)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		base.Err = err
		return base
	}
	details := make([]appErrors.FieldViolation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, appErrors.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return appErrors.WithDetails(base, details)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be less than %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "notfuture":
		return fmt.Sprintf("%s cannot be in the future", fe.Field())
	case "strongpassword":
		return fmt.Sprintf("%s must be at least 8 characters and contain an uppercase letter, a number and a special character", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
