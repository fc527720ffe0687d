package v1

import (
	"github.com/Behyna/sms-services/smscampaign/internal/api/contract"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (h *Handler) CreateCustomSegment(c *fiber.Ctx) error {
	var handlerRequest CustomSegmentRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	segment, err := h.segmentService.Create(c.UserContext(), service.CreateCustomSegmentCommand{
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		Pattern:     handlerRequest.Pattern,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(
		contract.Success(constants.MsgCustomSegmentCreated, newCustomSegmentResponse(segment)))
}

func (h *Handler) UpdateCustomSegment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var handlerRequest CustomSegmentRequest
	responseError := h.XValidator.Validator(&handlerRequest, constants.ErrMsgValidationFailed, c)
	if responseError.Code != "" {
		h.logger.Warn("Error Validator", zap.String("code", responseError.Code))
		return c.JSON(responseError)
	}

	segment, err := h.segmentService.Update(c.UserContext(), service.UpdateCustomSegmentCommand{
		ID:          id,
		Name:        handlerRequest.Name,
		Description: handlerRequest.Description,
		Pattern:     handlerRequest.Pattern,
	})
	if err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgCustomSegmentUpdated, newCustomSegmentResponse(segment)))
}

func (h *Handler) ListCustomSegments(c *fiber.Ctx) error {
	segments, err := h.segmentService.List(c.UserContext())
	if err != nil {
		return err
	}

	result := make([]CustomSegmentResponse, 0, len(segments))
	for i := range segments {
		result = append(result, newCustomSegmentResponse(&segments[i]))
	}

	return c.JSON(contract.Success(constants.MsgCustomSegmentsListed, result))
}

func (h *Handler) DeleteCustomSegment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := h.segmentService.Delete(c.UserContext(), id); err != nil {
		return err
	}

	return c.JSON(contract.Success(constants.MsgCustomSegmentDeleted, nil))
}
