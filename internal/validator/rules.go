package validator

import (
	"log"
	"regexp"
	"strings"

	"github.com/hari2128-cell/CureVox/internal/models"

	"github.com/go-playground/validator/v10"
)

// E.164-ish: optional +, 7 to 15 digits.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A rule that fails to register is a startup defect.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("phone", validatePhone)
	mustRegister("is-gender", validateGender)
	mustRegister("is-blood-group", validateBloodGroup)
	mustRegister("is-severity", validateSeverity)
	mustRegister("is-diagnosis-type", validateDiagnosisType)
}

// Empty values pass every custom rule; 'required' handles presence.

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return phonePattern.MatchString(strings.ReplaceAll(value, " ", ""))
}

func validateGender(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToLower(value) {
	case "male", "female", "other":
		return true
	default:
		return false
	}
}

func validateBloodGroup(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch strings.ToUpper(value) {
	case "A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-":
		return true
	default:
		return false
	}
}

func validateSeverity(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.Severity(value).Valid()
}

func validateDiagnosisType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, t := range models.ValidDiagnosisTypes {
		if models.DiagnosisType(value) == t {
			return true
		}
	}
	return false
}
