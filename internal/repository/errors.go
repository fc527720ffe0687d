package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrPhoneNumberNotFound    = errors.New("PHONE_NUMBER_NOT_FOUND")
	ErrPhoneNumberDuplicate   = errors.New("PHONE_NUMBER_DUPLICATE")
	ErrCustomSegmentNotFound  = errors.New("CUSTOM_SEGMENT_NOT_FOUND")
	ErrCustomSegmentDuplicate = errors.New("CUSTOM_SEGMENT_DUPLICATE")
	ErrQueueEntryNotFound     = errors.New("QUEUE_ENTRY_NOT_FOUND")
)

const mysqlDuplicateEntry = 1062

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
