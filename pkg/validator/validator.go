package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// now is replaced in tests.
var now = time.Now

type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()

	custom := map[string]validator.Func{
		"date":     validateDate,
		"clock":    validateClock,
		"notpast":  validateNotPast,
		"notblank": validateNotBlank,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validator: register %q: %v", tag, err))
		}
	}

	return &CustomValidator{
		validator: v,
	}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	errors := make(map[string]string)

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := e.Field()
			switch e.Tag() {
			case "required":
				errors[field] = field + " is required"
			case "email":
				errors[field] = field + " must be a valid email address"
			case "min":
				errors[field] = field + " must be at least " + e.Param() + " characters"
			case "max":
				errors[field] = field + " must be at most " + e.Param() + " characters"
			case "gte":
				errors[field] = field + " must be greater than or equal to " + e.Param()
			case "lte":
				errors[field] = field + " must be less than or equal to " + e.Param()
			case "gt":
				errors[field] = field + " must be greater than " + e.Param()
			case "oneof":
				errors[field] = field + " must be one of: " + e.Param()
			case "date":
				errors[field] = field + " must be a date in YYYY-MM-DD format"
			case "clock":
				errors[field] = field + " must be a time in HH:MM format"
			case "notpast":
				errors[field] = field + " must be today or a future date"
			case "notblank":
				errors[field] = field + " must not be blank"
			default:
				errors[field] = field + " is invalid"
			}
		}
	}

	return errors
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(dateLayout, value)
	return err == nil
}

// validateClock accepts HH:MM, or HH:MM:SS with zero seconds.
func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if _, err := time.Parse(clockLayout, value); err == nil {
		return true
	}
	t, err := time.Parse(clockLayout+":05", value)
	return err == nil && t.Second() == 0
}

// validateNotPast rejects YYYY-MM-DD dates before today (UTC). Malformed
// values are left to the date tag.
func validateNotPast(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return true
	}
	today, _ := time.Parse(dateLayout, now().UTC().Format(dateLayout))
	return !d.Before(today)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}
