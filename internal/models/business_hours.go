package models

import "time"

// BusinessHours holds one open/close window per (provider, weekday).
// Times are wall-clock "15:04" strings; weekday follows time.Weekday (0 = Sunday).
type BusinessHours struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceProviderID uint `gorm:"index:idx_business_hours_provider_weekday" json:"service_provider_id"`

	Weekday   int    `gorm:"index:idx_business_hours_provider_weekday" json:"weekday"`
	OpenTime  string `gorm:"size:5" json:"open_time"`
	CloseTime string `gorm:"size:5" json:"close_time"`
	IsOpen    bool   `gorm:"default:true" json:"is_open"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
