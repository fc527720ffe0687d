package middleware

import (
	"errors"

	"github.com/Behyna/sms-services/smscampaign/internal/api/contract"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var batchErr *service.BatchProcessingError
		if errors.As(err, &batchErr) {
			return c.Status(constants.GetHTTPStatus(constants.ErrCodeBatchProcessingFailed)).JSON(contract.ResponseError{
				Code:    constants.ErrCodeBatchProcessingFailed,
				Message: constants.GetErrorMessage(constants.ErrCodeBatchProcessingFailed),
				Errors:  batchErr.Errors,
			})
		}

		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(contract.ResponseError{
				Code:    constants.ErrCodeInternalError,
				Message: fiberErr.Message,
			})
		}

		logger.Error("Unhandled error",
			zap.Error(err),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()))

		return c.Status(fiber.StatusInternalServerError).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInternalError,
			Message: constants.GetErrorMessage(constants.ErrCodeInternalError),
		})
	}
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	errorCode := err.Code

	status := constants.GetHTTPStatus(errorCode)
	if status == fiber.StatusInternalServerError && err.Code != constants.ErrCodeInternalError &&
		err.Code != constants.ErrCodeDatabase {
		errorCode = constants.ErrCodeInternalError
	}

	return c.Status(status).JSON(contract.ResponseError{
		Code:    errorCode,
		Message: constants.GetErrorMessage(errorCode),
	})
}
