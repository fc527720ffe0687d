package validator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/api/contract"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

const (
	sep = " and "
)

type Error struct {
	Error       bool
	FailedField string
	Tag         string
	Value       interface{}
}

type IXValidator interface {
	// Validator parses the request body into data and validates it. On failure
	// the response status is set and the returned response carries a code.
	Validator(data any, message string, c *fiber.Ctx) (responseErr contract.ResponseError)
	Validate(data interface{}) []Error
}

type XValidator struct {
	validator *validator.Validate
	metrics   *metrics.Metrics
}

func NewXValidator(validator *validator.Validate, phoneValidator segmentation.Validator,
	metrics *metrics.Metrics) IXValidator {
	for key, function := range rules(phoneValidator) {
		_ = validator.RegisterValidation(key, function)
	}

	return &XValidator{
		validator: validator,
		metrics:   metrics,
	}
}

func (x XValidator) Validator(data any, message string, c *fiber.Ctx) (responseErr contract.ResponseError) {
	start := time.Now()

	if err := c.BodyParser(data); err != nil {
		c.Status(fiber.StatusBadRequest)
		x.metrics.RecordValidationDuration("body_error", time.Since(start))

		return contract.ResponseError{
			Code:    constants.ErrCodeInvalidRequestBody,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		}
	}

	if errs := x.Validate(data); len(errs) > 0 && errs[0].Error {
		errMsgs := make([]string, 0)
		for _, err := range errs {
			errMsgs = append(errMsgs, fmt.Sprintf(
				message,
				err.FailedField,
			))

			x.metrics.RecordValidationError(err.FailedField, err.Tag)
		}
		errMess := strings.Join(errMsgs, sep)
		c.Status(fiber.StatusUnprocessableEntity)

		x.metrics.RecordValidationDuration("validation_error", time.Since(start))

		return contract.ResponseError{
			Code:    constants.ErrCodeValidationFailed,
			Message: errMess,
		}
	}

	x.metrics.RecordValidationDuration("validation_success", time.Since(start))

	return responseErr
}

func (x XValidator) Validate(data interface{}) []Error {
	var validationErrors []Error

	errs := x.validator.Struct(data)
	if errs != nil {
		validationErrs, ok := errs.(validator.ValidationErrors)
		if !ok {
			return []Error{{Error: true, FailedField: "body", Tag: "struct"}}
		}

		for _, err := range validationErrs {
			var elem Error
			elem.FailedField = err.Field()
			elem.Tag = err.Tag()
			elem.Value = err.Value()
			elem.Error = true
			validationErrors = append(validationErrors, elem)
		}
	}
	return validationErrors
}
