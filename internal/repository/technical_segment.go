package repository

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"gorm.io/gorm"
)

type TechnicalSegmentRepository interface {
	FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.Segment, error)
	FindByType(ctx context.Context, segmentType model.SegmentType) ([]model.Segment, error)
	Save(ctx context.Context, segment *model.Segment) error
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteByPhoneNumberID(ctx context.Context, phoneNumberID int64) (int64, error)
}

type TechnicalSegment struct {
	db *gorm.DB
}

func NewTechnicalSegmentRepository(db *gorm.DB) TechnicalSegmentRepository {
	return &TechnicalSegment{db: db}
}

func (t *TechnicalSegment) FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.Segment, error) {
	var segments []model.Segment

	err := GetTx(ctx, t.db).
		Where("phone_number_id = ?", phoneNumberID).
		Order("id ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}

	return segments, nil
}

func (t *TechnicalSegment) FindByType(ctx context.Context, segmentType model.SegmentType) ([]model.Segment, error) {
	var segments []model.Segment

	err := GetTx(ctx, t.db).
		Where("segment_type = ?", segmentType).
		Order("id ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}

	return segments, nil
}

func (t *TechnicalSegment) Save(ctx context.Context, segment *model.Segment) error {
	return GetTx(ctx, t.db).Save(segment).Error
}

func (t *TechnicalSegment) Delete(ctx context.Context, id int64) (bool, error) {
	result := GetTx(ctx, t.db).Where("id = ?", id).Delete(&model.Segment{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (t *TechnicalSegment) DeleteByPhoneNumberID(ctx context.Context, phoneNumberID int64) (int64, error) {
	result := GetTx(ctx, t.db).Where("phone_number_id = ?", phoneNumberID).Delete(&model.Segment{})
	return result.RowsAffected, result.Error
}
