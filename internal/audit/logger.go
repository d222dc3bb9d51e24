package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/bookora/booking-api/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	serviceProviderID uint,
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	metadata any,
) error {

	var metaJSON string
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metaJSON = string(b)
		}
	}

	// A logger without a database discards entries.
	if l.db == nil {
		return nil
	}

	entry := models.AuditLog{
		ServiceProviderID: serviceProviderID,
		UserID:            userID,
		Action:            action,
		Entity:            entity,
		EntityID:          entityID,
		Metadata:          metaJSON,
	}

	return l.db.Create(&entry).Error
}
