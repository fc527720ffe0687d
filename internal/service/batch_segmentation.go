package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"go.uber.org/zap"
)

type BatchSegmentationService interface {
	ProcessAndSavePhoneNumbers(ctx context.Context, raws []string) (*BatchResult, error)
	ProcessPhoneNumbers(ctx context.Context, raws []string) any
}

// ResultFormatter shapes the outcome of a read-only segmentation batch.
type ResultFormatter interface {
	Format(results map[int]*model.PhoneNumber, failures map[int]BatchItemError) any
}

type batchSegmentation struct {
	validator segmentation.Validator
	segmenter PhoneSegmentationService
	matcher   CustomSegmentMatcher
	phoneRepo repository.PhoneNumberRepository
	txManager repository.TxManager
	formatter ResultFormatter
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewBatchSegmentationService builds the batch service. A nil matcher skips the
// custom segment assignment of saved numbers.
func NewBatchSegmentationService(validator segmentation.Validator, segmenter PhoneSegmentationService,
	matcher CustomSegmentMatcher, phoneRepo repository.PhoneNumberRepository, txManager repository.TxManager,
	formatter ResultFormatter, metrics *metrics.Metrics, logger *zap.Logger) BatchSegmentationService {
	if formatter == nil {
		formatter = SummaryFormatter{}
	}

	return &batchSegmentation{
		validator: validator,
		segmenter: segmenter,
		matcher:   matcher,
		phoneRepo: phoneRepo,
		txManager: txManager,
		formatter: formatter,
		metrics:   metrics,
		logger:    logger,
	}
}

// ProcessAndSavePhoneNumbers validates, persists and segments every input in order.
// Each item runs in its own transaction so a failure leaves no partial rows. Saved
// numbers are then matched against the custom segment catalog in one pass. When
// nothing succeeds the collected errors come back as *BatchProcessingError.
func (b *batchSegmentation) ProcessAndSavePhoneNumbers(ctx context.Context, raws []string) (*BatchResult, error) {
	b.metrics.RecordSegmentationBatch(len(raws))

	result := &BatchResult{
		Results:        make(map[int]*model.PhoneNumber, len(raws)),
		Errors:         make([]BatchItemError, 0),
		CustomSegments: make(map[int64]int),
	}

	reject := func(index int, raw, message string) {
		result.Errors = append(result.Errors, BatchItemError{Index: index, Number: raw, Error: message})
	}

	for index, raw := range raws {
		normalized, err := b.validator.Normalize(raw)
		if err != nil {
			b.metrics.RecordPhoneNumberProcessed(outcomeInvalid)
			reject(index, raw, constants.BatchMsgInvalidFormat)
			continue
		}

		existing, err := b.phoneRepo.FindByNumber(ctx, normalized)
		if err == nil && existing != nil {
			b.metrics.RecordPhoneNumberProcessed(outcomeDuplicate)
			reject(index, raw, fmt.Sprintf(constants.BatchMsgDuplicateFormat, normalized))
			continue
		}
		if err != nil && !errors.Is(err, repository.ErrPhoneNumberNotFound) {
			b.metrics.RecordPhoneNumberProcessed(outcomeError)
			reject(index, raw, err.Error())
			continue
		}

		phone := &model.PhoneNumber{Number: normalized}

		err = b.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := b.phoneRepo.Save(ctx, phone); err != nil {
				return err
			}

			_, err := b.segmenter.SegmentPhoneNumber(ctx, phone)
			return err
		})
		if err != nil {
			if errors.Is(err, repository.ErrPhoneNumberDuplicate) {
				b.metrics.RecordPhoneNumberProcessed(outcomeDuplicate)
				reject(index, raw, fmt.Sprintf(constants.BatchMsgDuplicateFormat, normalized))
				continue
			}

			b.logger.Warn("Failed to save phone number in batch",
				zap.Int("index", index),
				zap.String("number", normalized),
				zap.Error(err))
			reject(index, raw, err.Error())
			continue
		}

		result.Results[index] = phone
	}

	b.logger.Info("Segmentation batch processed",
		zap.Int("total", len(raws)),
		zap.Int("saved", len(result.Results)),
		zap.Int("rejected", len(result.Errors)))

	if len(result.Results) == 0 {
		return nil, &BatchProcessingError{Errors: result.Errors}
	}

	b.assignCustomSegments(ctx, result)

	return result, nil
}

// assignCustomSegments runs after every item is committed, so a failure here is
// logged and the counts gathered so far are kept.
func (b *batchSegmentation) assignCustomSegments(ctx context.Context, result *BatchResult) {
	if b.matcher == nil {
		return
	}

	indexes := make([]int, 0, len(result.Results))
	for index := range result.Results {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)

	phones := make([]*model.PhoneNumber, 0, len(indexes))
	for _, index := range indexes {
		phones = append(phones, result.Results[index])
	}

	counts, err := b.matcher.BatchAutoAssignSegments(ctx, phones)
	for id, count := range counts {
		result.CustomSegments[id] = count
	}
	if err != nil {
		b.logger.Warn("Custom segment assignment failed for batch",
			zap.Int("saved", len(phones)),
			zap.Int("assigned", len(counts)),
			zap.Error(err))
	}
}

// ProcessPhoneNumbers segments without persisting or checking for duplicates.
func (b *batchSegmentation) ProcessPhoneNumbers(_ context.Context, raws []string) any {
	results := make(map[int]*model.PhoneNumber, len(raws))
	failures := make(map[int]BatchItemError)

	for index, raw := range raws {
		phone, err := b.segmenter.Analyze(raw)
		if err != nil {
			message := err.Error()
			if errors.Is(err, segmentation.ErrInvalidPhoneNumber) {
				message = constants.BatchMsgInvalidFormat
			}
			failures[index] = BatchItemError{Index: index, Number: raw, Error: message}
			continue
		}

		results[index] = phone
	}

	return b.formatter.Format(results, failures)
}

// SummaryFormatter reports counts, the analyzed numbers and a per-operator tally.
type SummaryFormatter struct{}

func (SummaryFormatter) Format(results map[int]*model.PhoneNumber, failures map[int]BatchItemError) any {
	summary := SegmentationSummary{
		Total:      len(results) + len(failures),
		Valid:      len(results),
		Invalid:    len(failures),
		Numbers:    make([]AnalyzedNumber, 0, len(results)),
		Errors:     make([]BatchItemError, 0, len(failures)),
		ByOperator: make(map[string]int),
	}

	for index, phone := range results {
		analyzed := AnalyzedNumber{Index: index, Number: phone.Number}
		analyzed.CountryCode, _ = phone.SegmentValue(model.SegmentTypeCountryCode)
		analyzed.OperatorCode, _ = phone.SegmentValue(model.SegmentTypeOperatorCode)
		analyzed.SubscriberNumber, _ = phone.SegmentValue(model.SegmentTypeSubscriberNumber)
		analyzed.Operator, _ = phone.SegmentValue(model.SegmentTypeOperatorName)

		summary.Numbers = append(summary.Numbers, analyzed)
		summary.ByOperator[analyzed.Operator]++
	}

	for _, failure := range failures {
		summary.Errors = append(summary.Errors, failure)
	}

	sort.Slice(summary.Numbers, func(i, j int) bool { return summary.Numbers[i].Index < summary.Numbers[j].Index })
	sort.Slice(summary.Errors, func(i, j int) bool { return summary.Errors[i].Index < summary.Errors[j].Index })

	return summary
}
