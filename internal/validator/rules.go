package validator

import (
	"log"
	"strings"

	"hrportal_backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// registerCustomRules регистрирует все кастомные функции валидации
func registerCustomRules(v *validator.Validate, phoneRegion string) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правила приложение запускать нельзя
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("employment-type", validateEmploymentType)
	mustRegister("marital-status", validateMaritalStatus)
	mustRegister("employee-status", validateEmployeeStatus)
	mustRegister("phone", phoneValidator(phoneRegion))
	mustRegister("blood-group", validateBloodGroup)
}

func validateEmploymentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // пустые значения проверяет 'required'
	}
	return models.EmploymentType(value).IsValid()
}

func validateMaritalStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.MaritalStatus(value).IsValid()
}

func validateEmployeeStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.EmployeeStatus(value).IsValid()
}

// phoneValidator - номер без кода страны разбирается в регионе по умолчанию
func phoneValidator(region string) validator.Func {
	region = strings.ToUpper(region)
	return func(fl validator.FieldLevel) bool {
		value := strings.TrimSpace(fl.Field().String())
		if value == "" {
			return true
		}
		num, err := phonenumbers.Parse(value, region)
		if err != nil {
			return false
		}
		return phonenumbers.IsValidNumber(num)
	}
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	switch strings.ToUpper(fl.Field().String()) {
	case "", "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
		return true
	default:
		return false
	}
}

// NormalizePhone приводит номер к E.164; невалидный номер возвращается как есть
func NormalizePhone(value, region string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	num, err := phonenumbers.Parse(value, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return value
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}
