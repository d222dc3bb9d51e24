package models

import "time"

// ProviderService is one offering: a service as sold by one provider.
// DurationMinutes drives slot granularity for that offering.
type ProviderService struct {
	ServiceProviderID uint            `gorm:"primaryKey" json:"service_provider_id"`
	ServiceProvider   ServiceProvider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ServiceID uint    `gorm:"primaryKey" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Price           float64 `json:"price"`
	Description     string  `gorm:"size:255" json:"description"`
	IsAvailable     bool    `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
