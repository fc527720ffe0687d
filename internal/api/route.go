package api

import (
	v1 "github.com/Behyna/sms-services/smscampaign/internal/api/v1"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const prefixV1 = "/api/v1/"

func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Get("/health", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	app.Post(prefixV1+"phone-numbers/batch", handler.ProcessPhoneNumbers)
	app.Post(prefixV1+"phone-numbers/analyze", handler.AnalyzePhoneNumbers)
	app.Post(prefixV1+"phone-numbers/:id/custom-segments/auto-assign", handler.AutoAssignCustomSegments)

	app.Post(prefixV1+"custom-segments", handler.CreateCustomSegment)
	app.Get(prefixV1+"custom-segments", handler.ListCustomSegments)
	app.Put(prefixV1+"custom-segments/:id", handler.UpdateCustomSegment)
	app.Delete(prefixV1+"custom-segments/:id", handler.DeleteCustomSegment)

	app.Post(prefixV1+"sms", handler.EnqueueSMS)
	app.Post(prefixV1+"sms/batch", handler.EnqueueSMSBatch)
	app.Post(prefixV1+"sms/custom-segments/:id", handler.EnqueueSMSForCustomSegment)
	app.Delete(prefixV1+"sms/batch/:batchID", handler.CancelSMSBatch)
	app.Delete(prefixV1+"sms/users/:userID", handler.CancelSMSForUser)
	app.Delete(prefixV1+"sms/segments/:segmentID", handler.CancelSMSForSegment)
	app.Get(prefixV1+"sms/stats", handler.QueueStats)
}
