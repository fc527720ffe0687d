package v1

import (
	"context"
	"strconv"

	"github.com/Behyna/sms-services/smscampaign/internal/api/validator"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Pinger reports whether a backing store answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger         *zap.Logger
	batchService   service.BatchSegmentationService
	segmentService service.CustomSegmentService
	queueService   service.SMSQueueService
	XValidator     validator.IXValidator
	db             Pinger
}

func NewHandler(logger *zap.Logger, batchService service.BatchSegmentationService,
	segmentService service.CustomSegmentService, queueService service.SMSQueueService,
	XValidator validator.IXValidator, db Pinger) *Handler {
	return &Handler{
		logger:         logger,
		batchService:   batchService,
		segmentService: segmentService,
		queueService:   queueService,
		XValidator:     XValidator,
		db:             db,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) Health(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "unhealthy", Database: "down"})
	}

	return c.JSON(HealthResponse{Status: "healthy", Database: "up"})
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
