package mocks

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/internal/service"
	"github.com/stretchr/testify/mock"
)

type PhoneSegmentationService struct {
	mock.Mock
}

func (p *PhoneSegmentationService) SegmentPhoneNumber(ctx context.Context, phone *model.PhoneNumber) (*model.PhoneNumber, error) {
	args := p.Called(ctx, phone)
	segmented, _ := args.Get(0).(*model.PhoneNumber)
	return segmented, args.Error(1)
}

func (p *PhoneSegmentationService) Analyze(raw string) (*model.PhoneNumber, error) {
	args := p.Called(raw)
	phone, _ := args.Get(0).(*model.PhoneNumber)
	return phone, args.Error(1)
}

type BatchSegmentationService struct {
	mock.Mock
}

func (b *BatchSegmentationService) ProcessAndSavePhoneNumbers(ctx context.Context, raws []string) (*service.BatchResult, error) {
	args := b.Called(ctx, raws)
	result, _ := args.Get(0).(*service.BatchResult)
	return result, args.Error(1)
}

func (b *BatchSegmentationService) ProcessPhoneNumbers(ctx context.Context, raws []string) any {
	args := b.Called(ctx, raws)
	return args.Get(0)
}

type CustomSegmentMatcher struct {
	mock.Mock
}

func (c *CustomSegmentMatcher) Matches(phone *model.PhoneNumber, segment *model.CustomSegment) bool {
	args := c.Called(phone, segment)
	return args.Bool(0)
}

func (c *CustomSegmentMatcher) FindMatchingSegments(ctx context.Context, phone *model.PhoneNumber) ([]model.CustomSegment, error) {
	args := c.Called(ctx, phone)
	segments, _ := args.Get(0).([]model.CustomSegment)
	return segments, args.Error(1)
}

func (c *CustomSegmentMatcher) AutoAssignSegments(ctx context.Context, phone *model.PhoneNumber) (int, error) {
	args := c.Called(ctx, phone)
	return args.Int(0), args.Error(1)
}

func (c *CustomSegmentMatcher) BatchAutoAssignSegments(ctx context.Context, phones []*model.PhoneNumber) (map[int64]int, error) {
	args := c.Called(ctx, phones)
	counts, _ := args.Get(0).(map[int64]int)
	return counts, args.Error(1)
}

type CustomSegmentService struct {
	mock.Mock
}

func (c *CustomSegmentService) Create(ctx context.Context, cmd service.CreateCustomSegmentCommand) (*model.CustomSegment, error) {
	args := c.Called(ctx, cmd)
	segment, _ := args.Get(0).(*model.CustomSegment)
	return segment, args.Error(1)
}

func (c *CustomSegmentService) Update(ctx context.Context, cmd service.UpdateCustomSegmentCommand) (*model.CustomSegment, error) {
	args := c.Called(ctx, cmd)
	segment, _ := args.Get(0).(*model.CustomSegment)
	return segment, args.Error(1)
}

func (c *CustomSegmentService) Delete(ctx context.Context, id int64) error {
	args := c.Called(ctx, id)
	return args.Error(0)
}

func (c *CustomSegmentService) Get(ctx context.Context, id int64) (*model.CustomSegment, error) {
	args := c.Called(ctx, id)
	segment, _ := args.Get(0).(*model.CustomSegment)
	return segment, args.Error(1)
}

func (c *CustomSegmentService) List(ctx context.Context) ([]model.CustomSegment, error) {
	args := c.Called(ctx)
	segments, _ := args.Get(0).([]model.CustomSegment)
	return segments, args.Error(1)
}

func (c *CustomSegmentService) AutoAssign(ctx context.Context, phoneNumberID int64) (int, error) {
	args := c.Called(ctx, phoneNumberID)
	return args.Int(0), args.Error(1)
}
