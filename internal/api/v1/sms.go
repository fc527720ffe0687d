package v1

import (
	"github.com/Behyna/sms-services/smscampaign/internal/api/contract"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultCancelReason = "cancelled by request"

func (h *Handler) EnqueueSMS(c *fiber.Ctx) error {
	var handlerRequest EnqueueSMSRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	entry, err := h.queueService.Enqueue(c.UserContext(), service.EnqueueSMSCommand{
		PhoneNumber:   handlerRequest.PhoneNumber,
		Message:       handlerRequest.Message,
		UserID:        handlerRequest.UserID,
		Priority:      handlerRequest.Priority,
		ScheduledAt:   handlerRequest.ScheduledAt,
		SenderName:    handlerRequest.SenderName,
		SenderAddress: handlerRequest.SenderAddress,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Success(constants.MsgSMSEnqueued, newSMSResponse(entry)))
}

func (h *Handler) EnqueueSMSBatch(c *fiber.Ctx) error {
	var handlerRequest EnqueueBatchRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	result, err := h.queueService.EnqueueBatch(c.UserContext(), service.EnqueueBatchCommand{
		PhoneNumbers:  handlerRequest.PhoneNumbers,
		Message:       handlerRequest.Message,
		UserID:        handlerRequest.UserID,
		Priority:      handlerRequest.Priority,
		ScheduledAt:   handlerRequest.ScheduledAt,
		SenderName:    handlerRequest.SenderName,
		SenderAddress: handlerRequest.SenderAddress,
	})
	if err != nil {
		return err
	}

	h.logger.Info("SMS batch accepted",
		zap.String("batchID", result.BatchID),
		zap.Int("enqueued", result.Enqueued),
		zap.Int("rejected", len(result.Rejected)))

	return c.Status(fiber.StatusCreated).JSON(contract.Success(constants.MsgSMSEnqueued, result))
}

func (h *Handler) EnqueueSMSForCustomSegment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest EnqueueSegmentRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	result, err := h.queueService.EnqueueForCustomSegment(c.UserContext(), service.EnqueueSegmentCommand{
		CustomSegmentID: id,
		Message:         handlerRequest.Message,
		UserID:          handlerRequest.UserID,
		Priority:        handlerRequest.Priority,
		ScheduledAt:     handlerRequest.ScheduledAt,
		SenderName:      handlerRequest.SenderName,
		SenderAddress:   handlerRequest.SenderAddress,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Success(constants.MsgSMSEnqueued, result))
}

func (h *Handler) CancelSMSBatch(c *fiber.Ctx) error {
	batchID := c.Params("batchID")
	if batchID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "invalid batchID")
	}

	cancelled, err := h.queueService.CancelByBatch(c.UserContext(), batchID, cancelReason(c))
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgSMSCancelled, CancelResponse{Cancelled: cancelled}))
}

func (h *Handler) CancelSMSForUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return err
	}

	cancelled, err := h.queueService.CancelByUser(c.UserContext(), userID, cancelReason(c))
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgSMSCancelled, CancelResponse{Cancelled: cancelled}))
}

func (h *Handler) CancelSMSForSegment(c *fiber.Ctx) error {
	segmentID, err := paramID(c, "segmentID")
	if err != nil {
		return err
	}

	cancelled, err := h.queueService.CancelBySegment(c.UserContext(), segmentID, cancelReason(c))
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgSMSCancelled, CancelResponse{Cancelled: cancelled}))
}

func (h *Handler) QueueStats(c *fiber.Ctx) error {
	counts, err := h.queueService.Stats(c.UserContext())
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgQueueStats, counts))
}

// cancelReason reads an optional reason from the body or the query string.
func cancelReason(c *fiber.Ctx) string {
	var request CancelRequest
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&request)
	}
	if request.Reason == "" {
		request.Reason = c.Query("reason")
	}
	if request.Reason == "" {
		return defaultCancelReason
	}
	return request.Reason
}
