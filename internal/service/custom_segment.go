package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"go.uber.org/zap"
)

type CustomSegmentService interface {
	Create(ctx context.Context, cmd CreateCustomSegmentCommand) (*model.CustomSegment, error)
	Update(ctx context.Context, cmd UpdateCustomSegmentCommand) (*model.CustomSegment, error)
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*model.CustomSegment, error)
	List(ctx context.Context) ([]model.CustomSegment, error)
	AutoAssign(ctx context.Context, phoneNumberID int64) (int, error)
}

type customSegment struct {
	segmentRepo repository.CustomSegmentRepository
	phoneRepo   repository.PhoneNumberRepository
	matcher     CustomSegmentMatcher
	logger      *zap.Logger
}

func NewCustomSegmentService(segmentRepo repository.CustomSegmentRepository, phoneRepo repository.PhoneNumberRepository,
	matcher CustomSegmentMatcher, logger *zap.Logger) CustomSegmentService {
	return &customSegment{segmentRepo: segmentRepo, phoneRepo: phoneRepo, matcher: matcher, logger: logger}
}

func (c *customSegment) Create(ctx context.Context, cmd CreateCustomSegmentCommand) (*model.CustomSegment, error) {
	pattern, err := validatePattern(cmd.Pattern)
	if err != nil {
		return nil, err
	}

	segment := &model.CustomSegment{
		Name:        strings.TrimSpace(cmd.Name),
		Description: cmd.Description,
		Pattern:     pattern,
	}

	if err := c.save(ctx, segment); err != nil {
		return nil, err
	}

	c.logger.Info("Custom segment created",
		zap.Int64("customSegmentID", segment.ID),
		zap.String("name", segment.Name))

	return segment, nil
}

func (c *customSegment) Update(ctx context.Context, cmd UpdateCustomSegmentCommand) (*model.CustomSegment, error) {
	pattern, err := validatePattern(cmd.Pattern)
	if err != nil {
		return nil, err
	}

	segment, err := c.Get(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	segment.Name = strings.TrimSpace(cmd.Name)
	segment.Description = cmd.Description
	segment.Pattern = pattern

	if err := c.save(ctx, segment); err != nil {
		return nil, err
	}

	return segment, nil
}

func (c *customSegment) Delete(ctx context.Context, id int64) error {
	deleted, err := c.segmentRepo.Delete(ctx, id)
	if err != nil {
		c.logger.Error("Failed to delete custom segment", zap.Int64("customSegmentID", id), zap.Error(err))
		return NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}
	if !deleted {
		return NewServiceError(constants.ErrCodeCustomSegmentNotFound, repository.ErrCustomSegmentNotFound)
	}

	c.logger.Info("Custom segment deleted", zap.Int64("customSegmentID", id))
	return nil
}

func (c *customSegment) Get(ctx context.Context, id int64) (*model.CustomSegment, error) {
	segment, err := c.segmentRepo.FindByID(ctx, id)
	if err == nil {
		return segment, nil
	}

	if errors.Is(err, repository.ErrCustomSegmentNotFound) {
		return nil, NewServiceError(constants.ErrCodeCustomSegmentNotFound, err)
	}

	c.logger.Error("Failed to load custom segment", zap.Int64("customSegmentID", id), zap.Error(err))
	return nil, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
}

func (c *customSegment) List(ctx context.Context) ([]model.CustomSegment, error) {
	segments, err := c.segmentRepo.FindAll(ctx)
	if err != nil {
		c.logger.Error("Failed to list custom segments", zap.Error(err))
		return nil, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	return segments, nil
}

func (c *customSegment) AutoAssign(ctx context.Context, phoneNumberID int64) (int, error) {
	phone, err := c.phoneRepo.FindByID(ctx, phoneNumberID)
	if err != nil {
		if errors.Is(err, repository.ErrPhoneNumberNotFound) {
			return 0, NewServiceError(constants.ErrCodePhoneNumberNotFound, err)
		}
		c.logger.Error("Failed to load phone number", zap.Int64("phoneNumberID", phoneNumberID), zap.Error(err))
		return 0, NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
	}

	assigned, err := c.matcher.AutoAssignSegments(ctx, phone)
	if err != nil {
		return assigned, NewServiceError(constants.ErrCodeDatabase, err)
	}

	return assigned, nil
}

func (c *customSegment) save(ctx context.Context, segment *model.CustomSegment) error {
	err := c.segmentRepo.Save(ctx, segment)
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrCustomSegmentDuplicate) {
		return NewServiceError(constants.ErrCodeCustomSegmentExists, err)
	}

	c.logger.Error("Failed to save custom segment", zap.String("name", segment.Name), zap.Error(err))
	return NewServiceError(constants.ErrCodeDatabase, ErrDatabase)
}

// validatePattern rejects patterns that would never compile. An empty pattern is
// stored as nil.
func validatePattern(pattern *string) (*string, error) {
	if pattern == nil || strings.TrimSpace(*pattern) == "" {
		return nil, nil
	}

	if _, err := segmentation.CompilePattern(*pattern); err != nil {
		return nil, NewServiceError(constants.ErrCodeInvalidPattern, segmentation.ErrInvalidPattern)
	}

	return pattern, nil
}
