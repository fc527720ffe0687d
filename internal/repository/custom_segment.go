package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomSegmentRepository interface {
	FindAll(ctx context.Context) ([]model.CustomSegment, error)
	FindByID(ctx context.Context, id int64) (*model.CustomSegment, error)
	FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.CustomSegment, error)
	FindPhoneNumbers(ctx context.Context, segmentID int64) ([]model.PhoneNumber, error)
	Save(ctx context.Context, segment *model.CustomSegment) error
	Delete(ctx context.Context, id int64) (bool, error)
	AddPhoneNumberToSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error)
	RemovePhoneNumberFromSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error)
}

type CustomSegment struct {
	db *gorm.DB
}

func NewCustomSegmentRepository(db *gorm.DB) CustomSegmentRepository {
	return &CustomSegment{db: db}
}

func (c *CustomSegment) FindAll(ctx context.Context) ([]model.CustomSegment, error) {
	var segments []model.CustomSegment

	if err := GetTx(ctx, c.db).Order("id ASC").Find(&segments).Error; err != nil {
		return nil, err
	}

	return segments, nil
}

func (c *CustomSegment) FindByID(ctx context.Context, id int64) (*model.CustomSegment, error) {
	var segment model.CustomSegment

	err := GetTx(ctx, c.db).Where("id = ?", id).First(&segment).Error
	if err == nil {
		return &segment, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomSegmentNotFound
	}

	return nil, err
}

func (c *CustomSegment) FindByPhoneNumberID(ctx context.Context, phoneNumberID int64) ([]model.CustomSegment, error) {
	var segments []model.CustomSegment

	err := GetTx(ctx, c.db).
		Joins("JOIN phone_number_custom_segment pncs ON pncs.custom_segment_id = custom_segments.id").
		Where("pncs.phone_number_id = ?", phoneNumberID).
		Order("custom_segments.id ASC").
		Find(&segments).Error
	if err != nil {
		return nil, err
	}

	return segments, nil
}

func (c *CustomSegment) FindPhoneNumbers(ctx context.Context, segmentID int64) ([]model.PhoneNumber, error) {
	var phones []model.PhoneNumber

	err := GetTx(ctx, c.db).
		Joins("JOIN phone_number_custom_segment pncs ON pncs.phone_number_id = phone_numbers.id").
		Where("pncs.custom_segment_id = ?", segmentID).
		Order("phone_numbers.id ASC").
		Find(&phones).Error
	if err != nil {
		return nil, err
	}

	return phones, nil
}

func (c *CustomSegment) Save(ctx context.Context, segment *model.CustomSegment) error {
	db := GetTx(ctx, c.db)

	var err error
	if segment.ID == 0 {
		err = db.Create(segment).Error
	} else {
		err = db.Model(segment).Select("name", "description", "pattern", "updated_at").Updates(segment).Error
	}

	if isDuplicateKey(err) {
		return ErrCustomSegmentDuplicate
	}

	return err
}

func (c *CustomSegment) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := GetTx(ctx, c.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("custom_segment_id = ?", id).Delete(&model.PhoneNumberCustomSegment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.CustomSegment{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

// AddPhoneNumberToSegment is a no-op returning false when the membership already exists.
func (c *CustomSegment) AddPhoneNumberToSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error) {
	link := model.PhoneNumberCustomSegment{
		PhoneNumberID:   phoneNumberID,
		CustomSegmentID: segmentID,
		CreatedAt:       time.Now().UTC(),
	}

	result := GetTx(ctx, c.db).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (c *CustomSegment) RemovePhoneNumberFromSegment(ctx context.Context, phoneNumberID, segmentID int64) (bool, error) {
	result := GetTx(ctx, c.db).
		Where("phone_number_id = ? AND custom_segment_id = ?", phoneNumberID, segmentID).
		Delete(&model.PhoneNumberCustomSegment{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
