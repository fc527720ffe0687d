package mocks

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/stretchr/testify/mock"
)

type CustomSegmentRepository struct {
	mock.Mock
}

func (c *CustomSegmentRepository) FindAll(ctx context.Context) ([]model.CustomSegment, error) {
	args := c.Called(ctx)
	segments, _ := args.Get(0).([]model.CustomSegment)
	return segments, args.Error(1)
}

func (c *CustomSegmentRepository) FindByID(ctx context.Context, id int64) (*model.CustomSegment, error) {
	args := c.Called(ctx, id)
	segment, _ := args.Get(0).(*model.CustomSegment)
	return segment, args.Error(1)
}

func (c *CustomSegmentRepository) FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.CustomSegment, error) {
	args := c.Called(ctx, phoneNumberID)
	segments, _ := args.Get(0).([]model.CustomSegment)
	return segments, args.Error(1)
}

func (c *CustomSegmentRepository) FindPhoneNumbers(ctx context.Context, segmentID int64) ([]model.PhoneNumber, error) {
	args := c.Called(ctx, segmentID)
	phones, _ := args.Get(0).([]model.PhoneNumber)
	return phones, args.Error(1)
}

func (c *CustomSegmentRepository) Save(ctx context.Context, segment *model.CustomSegment) error {
	args := c.Called(ctx, segment)
	return args.Error(0)
}

func (c *CustomSegmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := c.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (c *CustomSegmentRepository) AddPhoneNumberToSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error) {
	args := c.Called(ctx, phoneNumberID, segmentID)
	return args.Bool(0), args.Error(1)
}

func (c *CustomSegmentRepository) RemovePhoneNumberFromSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error) {
	args := c.Called(ctx, phoneNumberID, segmentID)
	return args.Bool(0), args.Error(1)
}

type RegexTester struct {
	mock.Mock
}

func (r *RegexTester) Test(pattern, subject string) bool {
	args := r.Called(pattern, subject)
	return args.Bool(0)
}
