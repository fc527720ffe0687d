package repository

import (
	"context"
	"errors"

	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Normalizer canonicalizes a raw number before lookups.
type Normalizer interface {
	Normalize(raw string) (string, error)
}

type PhoneNumberRepository interface {
	FindByID(ctx context.Context, id int64) (*model.PhoneNumber, error)
	FindByNumber(ctx context.Context, number string) (*model.PhoneNumber, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.PhoneNumber, error)
	Save(ctx context.Context, phone *model.PhoneNumber) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type PhoneNumber struct {
	db         *gorm.DB
	normalizer Normalizer
}

func NewPhoneNumberRepository(db *gorm.DB, normalizer Normalizer) PhoneNumberRepository {
	return &PhoneNumber{db: db, normalizer: normalizer}
}

func (p *PhoneNumber) FindByID(ctx context.Context, id int64) (*model.PhoneNumber, error) {
	var phone model.PhoneNumber

	err := GetTx(ctx, p.db).
		Preload("Segments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ?", id).
		First(&phone).Error
	if err == nil {
		return &phone, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhoneNumberNotFound
	}

	return nil, err
}

func (p *PhoneNumber) FindByNumber(ctx context.Context, number string) (*model.PhoneNumber, error) {
	normalized, err := p.normalizer.Normalize(number)
	if err != nil {
		return nil, ErrPhoneNumberNotFound
	}

	var phone model.PhoneNumber

	err = GetTx(ctx, p.db).
		Preload("Segments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("number = ?", normalized).
		First(&phone).Error
	if err == nil {
		return &phone, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPhoneNumberNotFound
	}

	return nil, err
}

func (p *PhoneNumber) FindAll(ctx context.Context, limit, offset int) ([]model.PhoneNumber, error) {
	var phones []model.PhoneNumber

	query := GetTx(ctx, p.db).Order("id ASC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&phones).Error; err != nil {
		return nil, err
	}

	return phones, nil
}

// Save inserts phones without an id and otherwise rewrites the profile fields
// only; the number itself never changes after creation.
func (p *PhoneNumber) Save(ctx context.Context, phone *model.PhoneNumber) error {
	db := GetTx(ctx, p.db)

	if phone.ID == 0 {
		err := db.Omit(clause.Associations).Create(phone).Error
		if err == nil {
			return nil
		}

		if isDuplicateKey(err) {
			return ErrPhoneNumberDuplicate
		}

		return err
	}

	result := db.Model(phone).
		Select("civility", "first_name", "name", "company", "sector", "notes").
		Updates(phone)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&model.PhoneNumber{}).Where("id = ?", phone.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrPhoneNumberNotFound
		}
	}

	return nil
}

func (p *PhoneNumber) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool

	err := GetTx(ctx, p.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("phone_number_id = ?", id).Delete(&model.Segment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("phone_number_id = ?", id).Delete(&model.PhoneNumberCustomSegment{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", id).Delete(&model.PhoneNumber{})
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}
