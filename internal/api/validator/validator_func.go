package validator

import (
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/go-playground/validator/v10"
)

const (
	MSISDNTag       = "msisdn"
	RegexPatternTag = "regex_pattern"
)

func rules(phoneValidator segmentation.Validator) map[string]validator.Func {
	return map[string]validator.Func{
		MSISDNTag:       ValidateMSISDN(phoneValidator),
		RegexPatternTag: ValidateRegexPattern,
	}
}

func ValidateMSISDN(phoneValidator segmentation.Validator) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return phoneValidator.IsValid(fl.Field().String())
	}
}

// ValidateRegexPattern accepts an empty pattern; pair it with required when one
// is mandatory.
func ValidateRegexPattern(fl validator.FieldLevel) bool {
	pattern := fl.Field().String()
	if pattern == "" {
		return true
	}

	_, err := segmentation.CompilePattern(pattern)
	return err == nil
}
