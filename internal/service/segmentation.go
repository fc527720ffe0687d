package service

import (
	"context"
	"errors"

	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/metrics"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"go.uber.org/zap"
)

const (
	outcomeSuccess   = "success"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

type PhoneSegmentationService interface {
	SegmentPhoneNumber(ctx context.Context, phone *model.PhoneNumber) (*model.PhoneNumber, error)
	Analyze(raw string) (*model.PhoneNumber, error)
}

type phoneSegmentation struct {
	validator   segmentation.Validator
	factory     segmentation.HandlerFactory
	phoneRepo   repository.PhoneNumberRepository
	segmentRepo repository.TechnicalSegmentRepository
	txManager   repository.TxManager
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewPhoneSegmentationService(validator segmentation.Validator, factory segmentation.HandlerFactory,
	phoneRepo repository.PhoneNumberRepository, segmentRepo repository.TechnicalSegmentRepository,
	txManager repository.TxManager, metrics *metrics.Metrics, logger *zap.Logger) PhoneSegmentationService {
	return &phoneSegmentation{
		validator:   validator,
		factory:     factory,
		phoneRepo:   phoneRepo,
		segmentRepo: segmentRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

func (s *phoneSegmentation) Analyze(raw string) (*model.PhoneNumber, error) {
	normalized, segments, err := s.run(raw)
	if err != nil {
		return nil, err
	}

	return &model.PhoneNumber{Number: normalized, Segments: segments}, nil
}

// SegmentPhoneNumber replaces the technical segments of phone. A phone without an
// id is inserted first; both writes share one transaction. On error phone is left
// as it was passed in.
func (s *phoneSegmentation) SegmentPhoneNumber(ctx context.Context, phone *model.PhoneNumber) (*model.PhoneNumber, error) {
	if phone == nil {
		s.metrics.RecordPhoneNumberProcessed(outcomeInvalid)
		return nil, NewServiceError(constants.ErrCodeInvalidPhoneNumber, segmentation.ErrInvalidPhoneNumber)
	}

	normalized, segments, err := s.run(phone.Number)
	if err != nil {
		s.metrics.RecordPhoneNumberProcessed(outcomeInvalid)
		s.logger.Debug("Phone number rejected by validator",
			zap.Int64("phoneNumberID", phone.ID),
			zap.String("number", phone.Number))
		return nil, err
	}

	candidate := *phone
	candidate.Segments = nil
	if candidate.ID == 0 {
		candidate.Number = normalized
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		if candidate.ID == 0 {
			if err := s.phoneRepo.Save(ctx, &candidate); err != nil {
				return err
			}
		} else if _, err := s.segmentRepo.DeleteByPhoneNumberID(ctx, candidate.ID); err != nil {
			return err
		}

		for i := range segments {
			segments[i].PhoneNumberID = candidate.ID
			if err := s.segmentRepo.Save(ctx, &segments[i]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrPhoneNumberDuplicate) {
			s.metrics.RecordPhoneNumberProcessed(outcomeDuplicate)
			return nil, NewServiceError(constants.ErrCodeDuplicatePhoneNumber, err)
		}

		s.metrics.RecordPhoneNumberProcessed(outcomeError)
		s.logger.Error("Failed to persist phone number segments",
			zap.Int64("phoneNumberID", phone.ID),
			zap.String("number", normalized),
			zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	candidate.Segments = segments
	*phone = candidate
	s.metrics.RecordPhoneNumberProcessed(outcomeSuccess)

	s.logger.Debug("Phone number segmented",
		zap.Int64("phoneNumberID", phone.ID),
		zap.String("number", phone.Number),
		zap.Int("segments", len(segments)))

	return phone, nil
}

func (s *phoneSegmentation) run(raw string) (string, []model.Segment, error) {
	normalized, err := s.validator.Normalize(raw)
	if err != nil {
		return "", nil, NewServiceError(constants.ErrCodeInvalidPhoneNumber, segmentation.ErrInvalidPhoneNumber)
	}

	segments, err := s.factory.NewChain().Handle(normalized)
	if err != nil {
		return "", nil, NewServiceError(constants.ErrCodeInvalidPhoneNumber, err)
	}

	return normalized, segments, nil
}
