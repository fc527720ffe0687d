package mocks

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/stretchr/testify/mock"
)

type PhoneNumberRepository struct {
	mock.Mock
}

func (p *PhoneNumberRepository) FindByID(ctx context.Context, id int64) (*model.PhoneNumber, error) {
	args := p.Called(ctx, id)
	phone, _ := args.Get(0).(*model.PhoneNumber)
	return phone, args.Error(1)
}

func (p *PhoneNumberRepository) FindByNumber(ctx context.Context, number string) (*model.PhoneNumber, error) {
	args := p.Called(ctx, number)
	phone, _ := args.Get(0).(*model.PhoneNumber)
	return phone, args.Error(1)
}

func (p *PhoneNumberRepository) FindAll(ctx context.Context, limit, offset int) ([]model.PhoneNumber, error) {
	args := p.Called(ctx, limit, offset)
	phones, _ := args.Get(0).([]model.PhoneNumber)
	return phones, args.Error(1)
}

func (p *PhoneNumberRepository) Save(ctx context.Context, phone *model.PhoneNumber) error {
	args := p.Called(ctx, phone)
	return args.Error(0)
}

func (p *PhoneNumberRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := p.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type TechnicalSegmentRepository struct {
	mock.Mock
}

func (t *TechnicalSegmentRepository) FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.Segment, error) {
	args := t.Called(ctx, phoneNumberID)
	segments, _ := args.Get(0).([]model.Segment)
	return segments, args.Error(1)
}

func (t *TechnicalSegmentRepository) FindByType(ctx context.Context, segmentType model.SegmentType) ([]model.Segment, error) {
	args := t.Called(ctx, segmentType)
	segments, _ := args.Get(0).([]model.Segment)
	return segments, args.Error(1)
}

func (t *TechnicalSegmentRepository) Save(ctx context.Context, segment *model.Segment) error {
	args := t.Called(ctx, segment)
	return args.Error(0)
}

func (t *TechnicalSegmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := t.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (t *TechnicalSegmentRepository) DeleteByPhoneNumberID(ctx context.Context, phoneNumberID int64) (int64, error) {
	args := t.Called(ctx, phoneNumberID)
	return args.Get(0).(int64), args.Error(1)
}
