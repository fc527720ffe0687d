package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Behyna/sms-services/smscampaign/internal/api"
	v1 "github.com/Behyna/sms-services/smscampaign/internal/api/v1"
	"github.com/Behyna/sms-services/smscampaign/internal/api/v1/middleware"
	"github.com/Behyna/sms-services/smscampaign/internal/api/validator"
	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/mocks"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	playground "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error {
	return f.err
}

type apiFixture struct {
	app          *fiber.App
	batchService *mocks.BatchSegmentationService
	segments     *mocks.CustomSegmentService
	queue        *mocks.SMSQueueService
}

func newAPIFixture(pingErr error) apiFixture {
	logger := zap.NewNop()
	f := apiFixture{
		batchService: &mocks.BatchSegmentationService{},
		segments:     &mocks.CustomSegmentService{},
		queue:        &mocks.SMSQueueService{},
	}

	xValidator := validator.NewXValidator(playground.New(), segmentation.NewValidator(segmentation.Config{}), nil)
	handler := v1.NewHandler(logger, f.batchService, f.segments, f.queue, xValidator, fakePinger{err: pingErr})

	f.app = fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(logger)})
	api.SetupRoutes(f.app, handler)
	return f
}

type envelope struct {
	Successful bool            `json:"successful"`
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Result     json.RawMessage `json:"result"`
	Errors     json.RawMessage `json:"errors"`
}

func (f apiFixture) do(t *testing.T, method, target, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func TestHandler_Probes(t *testing.T) {
	t.Run("ping", func(t *testing.T) {
		f := newAPIFixture(nil)

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "pong", string(body))
	})

	t.Run("healthy", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, _ := f.do(t, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, status)
	})

	t.Run("database down", func(t *testing.T) {
		f := newAPIFixture(errors.New("connection refused"))

		status, _ := f.do(t, http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, status)
	})

	t.Run("metrics endpoint", func(t *testing.T) {
		f := newAPIFixture(nil)

		resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestHandler_ProcessPhoneNumbers(t *testing.T) {
	t.Run("returns processed numbers in input order", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.batchService.On("ProcessAndSavePhoneNumbers", mock.Anything, []string{"0701020304", "x", "0101020304"}).
			Return(&service.BatchResult{
				Results: map[int]*model.PhoneNumber{
					2: {ID: 9, Number: "+2250101020304"},
					0: {ID: 8, Number: "+2250701020304", Segments: []model.Segment{
						{SegmentType: model.SegmentTypeOperatorName, Value: "MTN CI"},
					}},
				},
				Errors:         []service.BatchItemError{{Index: 1, Number: "x", Error: constants.BatchMsgInvalidFormat}},
				CustomSegments: map[int64]int{8: 2},
			}, nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/batch",
			`{"phone_numbers":["0701020304","x","0101020304"]}`)

		assert.Equal(t, http.StatusCreated, status)
		assert.True(t, out.Successful)

		var result v1.ProcessBatchResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		require.Len(t, result.Processed, 2)
		assert.Equal(t, 0, result.Processed[0].Index)
		assert.Equal(t, "MTN CI", result.Processed[0].Segments[0].Value)
		assert.Equal(t, 2, result.Processed[0].CustomSegmentsAssigned)
		assert.Equal(t, 2, result.Processed[1].Index)
		assert.Equal(t, 0, result.Processed[1].CustomSegmentsAssigned)
		assert.Equal(t, []service.BatchItemError{{Index: 1, Number: "x", Error: constants.BatchMsgInvalidFormat}}, result.Errors)
	})

	t.Run("total failure is unprocessable with every error", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.batchService.On("ProcessAndSavePhoneNumbers", mock.Anything, []string{"x"}).
			Return(nil, &service.BatchProcessingError{Errors: []service.BatchItemError{
				{Index: 0, Number: "x", Error: constants.BatchMsgInvalidFormat},
			}})

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/batch", `{"phone_numbers":["x"]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, constants.ErrCodeBatchProcessingFailed, out.Code)

		var items []service.BatchItemError
		require.NoError(t, json.Unmarshal(out.Errors, &items))
		assert.Len(t, items, 1)
	})

	t.Run("empty list fails validation", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/batch", `{"phone_numbers":[]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, constants.ErrCodeValidationFailed, out.Code)
		assert.Contains(t, out.Message, "PhoneNumbers")
		f.batchService.AssertNotCalled(t, "ProcessAndSavePhoneNumbers", mock.Anything, mock.Anything)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/batch", `{"phone_numbers":`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, constants.ErrCodeInvalidRequestBody, out.Code)
	})

	t.Run("analyze returns the formatter output", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.batchService.On("ProcessPhoneNumbers", mock.Anything, []string{"0701020304"}).
			Return(service.SegmentationSummary{Total: 1, Valid: 1, ByOperator: map[string]int{"MTN CI": 1}})

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/analyze", `{"phone_numbers":["0701020304"]}`)

		assert.Equal(t, http.StatusOK, status)
		var summary service.SegmentationSummary
		require.NoError(t, json.Unmarshal(out.Result, &summary))
		assert.Equal(t, 1, summary.ByOperator["MTN CI"])
	})

	t.Run("auto assign", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("AutoAssign", mock.Anything, int64(12)).Return(3, nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/12/custom-segments/auto-assign", "")

		assert.Equal(t, http.StatusOK, status)
		var result v1.AutoAssignResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Equal(t, v1.AutoAssignResponse{PhoneNumberID: 12, Assigned: 3}, result)
	})

	t.Run("auto assign with a bad id", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, _ := f.do(t, http.MethodPost, "/api/v1/phone-numbers/abc/custom-segments/auto-assign", "")

		assert.Equal(t, http.StatusBadRequest, status)
		f.segments.AssertNotCalled(t, "AutoAssign", mock.Anything, mock.Anything)
	})

	t.Run("auto assign for an unknown number", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("AutoAssign", mock.Anything, int64(12)).
			Return(0, service.NewServiceError(constants.ErrCodePhoneNumberNotFound, repository.ErrPhoneNumberNotFound))

		status, out := f.do(t, http.MethodPost, "/api/v1/phone-numbers/12/custom-segments/auto-assign", "")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, constants.ErrCodePhoneNumberNotFound, out.Code)
	})
}

func TestHandler_CustomSegments(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("Create", mock.Anything, mock.MatchedBy(func(cmd service.CreateCustomSegmentCommand) bool {
			return cmd.Name == "MTN" && cmd.Pattern != nil && *cmd.Pattern == `^\+22507`
		})).Return(&model.CustomSegment{ID: 4, Name: "MTN"}, nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/custom-segments", `{"name":"MTN","pattern":"^\\+22507"}`)

		assert.Equal(t, http.StatusCreated, status)
		var result v1.CustomSegmentResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Equal(t, int64(4), result.ID)
	})

	t.Run("pattern that does not compile is rejected before the service", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/custom-segments", `{"name":"Broken","pattern":"(["}`)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Equal(t, constants.ErrCodeValidationFailed, out.Code)
		assert.Contains(t, out.Message, "Pattern")
		f.segments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("Create", mock.Anything, mock.Anything).
			Return(nil, service.NewServiceError(constants.ErrCodeCustomSegmentExists, repository.ErrCustomSegmentDuplicate))

		status, out := f.do(t, http.MethodPost, "/api/v1/custom-segments", `{"name":"MTN"}`)

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, constants.ErrCodeCustomSegmentExists, out.Code)
	})

	t.Run("list", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("List", mock.Anything).Return([]model.CustomSegment{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, nil)

		status, out := f.do(t, http.MethodGet, "/api/v1/custom-segments", "")

		assert.Equal(t, http.StatusOK, status)
		var result []v1.CustomSegmentResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Len(t, result, 2)
	})

	t.Run("delete missing", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("Delete", mock.Anything, int64(5)).
			Return(service.NewServiceError(constants.ErrCodeCustomSegmentNotFound, repository.ErrCustomSegmentNotFound))

		status, _ := f.do(t, http.MethodDelete, "/api/v1/custom-segments/5", "")

		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("database error is reported without details", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.segments.On("List", mock.Anything).Return(nil, service.NewServiceError(constants.ErrCodeDatabase, service.ErrDatabase))

		status, out := f.do(t, http.MethodGet, "/api/v1/custom-segments", "")

		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, constants.ErrCodeDatabase, out.Code)
		assert.Equal(t, constants.ErrMsgDatabase, out.Message)
	})
}

func TestHandler_SMS(t *testing.T) {
	t.Run("enqueue one", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("Enqueue", mock.Anything, mock.MatchedBy(func(cmd service.EnqueueSMSCommand) bool {
			return cmd.PhoneNumber == "0701020304" && cmd.Message == "Promo" && cmd.Priority == 2
		})).Return(&model.SMSQueue{ID: 30, PhoneNumber: "+2250701020304", Status: model.SMSQueueStatusPending}, nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/sms",
			`{"phone_number":"0701020304","message":"Promo","priority":2}`)

		assert.Equal(t, http.StatusCreated, status)
		var result v1.SMSResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Equal(t, "pending", result.Status)
	})

	t.Run("enqueue with a foreign number fails validation", func(t *testing.T) {
		f := newAPIFixture(nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/sms", `{"phone_number":"+33601020304","message":"Promo"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, out.Message, "PhoneNumber")
		f.queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
	})

	t.Run("enqueue batch", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("EnqueueBatch", mock.Anything, mock.AnythingOfType("service.EnqueueBatchCommand")).
			Return(service.EnqueueBatchResponse{BatchID: "b-1", Enqueued: 2}, nil)

		status, out := f.do(t, http.MethodPost, "/api/v1/sms/batch",
			`{"phone_numbers":["0701020304","0101020304"],"message":"Promo"}`)

		assert.Equal(t, http.StatusCreated, status)
		var result service.EnqueueBatchResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Equal(t, "b-1", result.BatchID)
	})

	t.Run("enqueue batch without any valid number", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("EnqueueBatch", mock.Anything, mock.Anything).
			Return(service.EnqueueBatchResponse{}, service.NewServiceError(constants.ErrCodeEmptyBatch, service.ErrEmptyBatch))

		status, out := f.do(t, http.MethodPost, "/api/v1/sms/batch", `{"phone_numbers":["x"],"message":"Promo"}`)

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, constants.ErrCodeEmptyBatch, out.Code)
	})

	t.Run("enqueue for a custom segment", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("EnqueueForCustomSegment", mock.Anything, mock.MatchedBy(func(cmd service.EnqueueSegmentCommand) bool {
			return cmd.CustomSegmentID == 4
		})).Return(service.EnqueueBatchResponse{BatchID: "b-2", Enqueued: 10}, nil)

		status, _ := f.do(t, http.MethodPost, "/api/v1/sms/custom-segments/4", `{"message":"Promo"}`)

		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("cancel batch with a reason", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("CancelByBatch", mock.Anything, "b-1", "campaign stopped").Return(int64(7), nil)

		status, out := f.do(t, http.MethodDelete, "/api/v1/sms/batch/b-1", `{"reason":"campaign stopped"}`)

		assert.Equal(t, http.StatusOK, status)
		var result v1.CancelResponse
		require.NoError(t, json.Unmarshal(out.Result, &result))
		assert.Equal(t, int64(7), result.Cancelled)
	})

	t.Run("cancel for user uses the default reason", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("CancelByUser", mock.Anything, int64(3), "cancelled by request").Return(int64(1), nil)

		status, _ := f.do(t, http.MethodDelete, "/api/v1/sms/users/3", "")

		assert.Equal(t, http.StatusOK, status)
		f.queue.AssertExpectations(t)
	})

	t.Run("cancel for segment reads the query reason", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("CancelBySegment", mock.Anything, int64(4), "typo").Return(int64(0), nil)

		status, _ := f.do(t, http.MethodDelete, "/api/v1/sms/segments/4?reason=typo", "")

		assert.Equal(t, http.StatusOK, status)
		f.queue.AssertExpectations(t)
	})

	t.Run("stats", func(t *testing.T) {
		f := newAPIFixture(nil)
		f.queue.On("Stats", mock.Anything).Return(map[model.SMSQueueStatus]int64{
			model.SMSQueueStatusPending: 4,
			model.SMSQueueStatusSent:    9,
		}, nil)

		status, out := f.do(t, http.MethodGet, "/api/v1/sms/stats", "")

		assert.Equal(t, http.StatusOK, status)
		var counts map[string]int64
		require.NoError(t, json.Unmarshal(out.Result, &counts))
		assert.Equal(t, int64(9), counts["sent"])
	})
}
