package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

const DefaultPhoneRegion = "IN"

// ValidationError содержит карту ошибок "поле" -> "сообщение"
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(msgs, "; ")
}

// Validator - обертка над go-playground/validator
type Validator struct {
	validate    *validator.Validate
	phoneRegion string
}

// New создает Validator; phoneRegion - регион для номеров без кода страны
func New(phoneRegion string) *Validator {
	if phoneRegion == "" {
		phoneRegion = DefaultPhoneRegion
	}

	v := validator.New(validator.WithRequiredStructEnabled())

	// Имена полей в ошибках берутся из JSON-тегов (camelCase, как в запросе)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v, phoneRegion)

	return &Validator{validate: v, phoneRegion: phoneRegion}
}

// PhoneRegion - регион по умолчанию для нормализации номеров
func (v *Validator) PhoneRegion() string {
	return v.phoneRegion
}

// Validate выполняет валидацию структуры; ошибки полей возвращаются как *ValidationError
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	customErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		customErrors[fieldPath(fe)] = v.getErrorMessage(fe)
	}
	return &ValidationError{Errors: customErrors}
}

// fieldPath - путь без имени корневой структуры: "educationalDetails[0].passingYear"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return fe.Field()
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "numeric":
		return "Must contain only digits"
	case "url":
		return "Must be a valid URL"
	case "phone":
		return "Must be a valid phone number"
	case "employment-type":
		return "Must be one of: Full-time, Part-time, Intern, Contract"
	case "marital-status":
		return "Must be one of: Single, Married, Divorced, Widowed"
	case "employee-status":
		return "Must be one of: Active, On Notice, Resigned, Terminated"
	case "blood-group":
		return "Must be a valid blood group (e.g. O+)"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
