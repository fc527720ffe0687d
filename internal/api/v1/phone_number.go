package v1

import (
	"sort"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/api/contract"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) ProcessPhoneNumbers(c *fiber.Ctx) error {
	start := time.Now()

	var handlerRequest PhoneNumbersRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	result, err := h.batchService.ProcessAndSavePhoneNumbers(c.UserContext(), handlerRequest.PhoneNumbers)
	if err != nil {
		return err
	}

	indexes := make([]int, 0, len(result.Results))
	for index := range result.Results {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	processed := make([]BatchItemResponse, 0, len(indexes))
	for _, index := range indexes {
		phone := result.Results[index]
		processed = append(processed, BatchItemResponse{
			Index:                  index,
			PhoneNumberResponse:    newPhoneNumberResponse(phone),
			CustomSegmentsAssigned: result.CustomSegments[phone.ID],
		})
	}

	h.logger.Info("Phone numbers processed",
		zap.Int("total", len(handlerRequest.PhoneNumbers)),
		zap.Int("processed", len(processed)),
		zap.Int("rejected", len(result.Errors)),
		zap.Duration("duration", time.Since(start)),
	)

	return c.Status(fiber.StatusCreated).JSON(contract.Success(constants.MsgPhoneNumbersProcessed,
		ProcessBatchResponse{Processed: processed, Errors: result.Errors}))
}

func (h *Handler) AnalyzePhoneNumbers(c *fiber.Ctx) error {
	var handlerRequest PhoneNumbersRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	summary := h.batchService.ProcessPhoneNumbers(c.UserContext(), handlerRequest.PhoneNumbers)

	return c.JSON(contract.Success(constants.MsgPhoneNumbersAnalyzed, summary))
}

func (h *Handler) AutoAssignCustomSegments(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	assigned, err := h.segmentService.AutoAssign(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgCustomSegmentsAssigned,
		AutoAssignResponse{PhoneNumberID: id, Assigned: assigned}))
}
