package database

import (
	"context"

	"github.com/Behyna/sms-services/smscampaign/internal/config"
	"github.com/Behyna/sms-services/smscampaign/internal/model"
	"github.com/Behyna/sms-services/smscampaign/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}

// Migrate creates or updates the tables owned by this service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.PhoneNumber{},
		&model.Segment{},
		&model.CustomSegment{},
		&model.PhoneNumberCustomSegment{},
		&model.SMSQueue{},
	)
}
