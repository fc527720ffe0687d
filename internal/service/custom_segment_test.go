package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Behyna/sms-services/smscampaign/internal/constants"
	"github.com/Behyna/sms-services/smscampaign/internal/mocks"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/repository"
	"github.com/Behyna/sms-services/smscampaign/internal/segmentation"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCustomSegment_Create(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("stores a segment with a valid pattern", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("Save", ctx, mock.MatchedBy(func(segment *model.CustomSegment) bool {
			return segment.Name == "MTN" && *segment.Pattern == `^\+22507`
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*model.CustomSegment).ID = 3
		}).Return(nil)

		segment, err := svc.Create(ctx, service.CreateCustomSegmentCommand{Name: "  MTN ", Pattern: strPtr(`^\+22507`)})

		require.NoError(t, err)
		assert.Equal(t, int64(3), segment.ID)
		mockSegmentRepo.AssertExpectations(t)
	})

	t.Run("blank pattern is stored as none", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("Save", ctx, mock.MatchedBy(func(segment *model.CustomSegment) bool {
			return segment.Pattern == nil
		})).Return(nil)

		segment, err := svc.Create(ctx, service.CreateCustomSegmentCommand{Name: "Manual", Pattern: strPtr("  ")})

		require.NoError(t, err)
		assert.False(t, segment.HasPattern())
	})

	t.Run("invalid pattern", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		_, err := svc.Create(ctx, service.CreateCustomSegmentCommand{Name: "Broken", Pattern: strPtr(`([`)})

		assert.ErrorIs(t, err, segmentation.ErrInvalidPattern)
		assertServiceCode(t, err, constants.ErrCodeInvalidPattern)
		mockSegmentRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("Save", ctx, mock.Anything).Return(repository.ErrCustomSegmentDuplicate)

		_, err := svc.Create(ctx, service.CreateCustomSegmentCommand{Name: "MTN"})

		assertServiceCode(t, err, constants.ErrCodeCustomSegmentExists)
	})

	t.Run("database error", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("Save", ctx, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Create(ctx, service.CreateCustomSegmentCommand{Name: "MTN"})

		assert.ErrorIs(t, err, service.ErrDatabase)
	})
}

func TestCustomSegment_UpdateDeleteGet(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("update replaces the editable fields", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("FindByID", ctx, int64(3)).
			Return(&model.CustomSegment{ID: 3, Name: "Old", Pattern: strPtr(`^\+22501`)}, nil)
		mockSegmentRepo.On("Save", ctx, mock.MatchedBy(func(segment *model.CustomSegment) bool {
			return segment.ID == 3 && segment.Name == "New" && segment.Pattern == nil
		})).Return(nil)

		segment, err := svc.Update(ctx, service.UpdateCustomSegmentCommand{ID: 3, Name: "New"})

		require.NoError(t, err)
		assert.Equal(t, "New", segment.Name)
		mockSegmentRepo.AssertExpectations(t)
	})

	t.Run("update of a missing segment", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("FindByID", ctx, int64(3)).Return(nil, repository.ErrCustomSegmentNotFound)

		_, err := svc.Update(ctx, service.UpdateCustomSegmentCommand{ID: 3, Name: "New"})

		assertServiceCode(t, err, constants.ErrCodeCustomSegmentNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("Delete", ctx, int64(3)).Return(true, nil).Once()
		mockSegmentRepo.On("Delete", ctx, int64(3)).Return(false, nil).Once()

		assert.NoError(t, svc.Delete(ctx, 3))
		assertServiceCode(t, svc.Delete(ctx, 3), constants.ErrCodeCustomSegmentNotFound)
	})

	t.Run("list failure", func(t *testing.T) {
		mockSegmentRepo := &mocks.CustomSegmentRepository{}
		svc := service.NewCustomSegmentService(mockSegmentRepo, &mocks.PhoneNumberRepository{},
			&mocks.CustomSegmentMatcher{}, logger)

		mockSegmentRepo.On("FindAll", ctx).Return(nil, errors.New("db down"))

		_, err := svc.List(ctx)

		assertServiceCode(t, err, constants.ErrCodeDatabase)
	})
}

func TestCustomSegment_AutoAssign(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("loads the number and delegates to the matcher", func(t *testing.T) {
		mockPhoneRepo := &mocks.PhoneNumberRepository{}
		mockMatcher := &mocks.CustomSegmentMatcher{}
		svc := service.NewCustomSegmentService(&mocks.CustomSegmentRepository{}, mockPhoneRepo, mockMatcher, logger)

		phone := &model.PhoneNumber{ID: 7, Number: "+2250701020304"}
		mockPhoneRepo.On("FindByID", ctx, int64(7)).Return(phone, nil)
		mockMatcher.On("AutoAssignSegments", ctx, phone).Return(2, nil)

		assigned, err := svc.AutoAssign(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, 2, assigned)
	})

	t.Run("unknown number", func(t *testing.T) {
		mockPhoneRepo := &mocks.PhoneNumberRepository{}
		mockMatcher := &mocks.CustomSegmentMatcher{}
		svc := service.NewCustomSegmentService(&mocks.CustomSegmentRepository{}, mockPhoneRepo, mockMatcher, logger)

		mockPhoneRepo.On("FindByID", ctx, int64(7)).Return(nil, repository.ErrPhoneNumberNotFound)

		_, err := svc.AutoAssign(ctx, 7)

		assertServiceCode(t, err, constants.ErrCodePhoneNumberNotFound)
		mockMatcher.AssertNotCalled(t, "AutoAssignSegments", mock.Anything, mock.Anything)
	})

	t.Run("matcher failure", func(t *testing.T) {
		mockPhoneRepo := &mocks.PhoneNumberRepository{}
		mockMatcher := &mocks.CustomSegmentMatcher{}
		svc := service.NewCustomSegmentService(&mocks.CustomSegmentRepository{}, mockPhoneRepo, mockMatcher, logger)

		phone := &model.PhoneNumber{ID: 7}
		mockPhoneRepo.On("FindByID", ctx, int64(7)).Return(phone, nil)
		mockMatcher.On("AutoAssignSegments", ctx, phone).Return(1, service.ErrDatabase)

		assigned, err := svc.AutoAssign(ctx, 7)

		assert.Equal(t, 1, assigned)
		assertServiceCode(t, err, constants.ErrCodeDatabase)
	})
}
