package dto

type SearchServiceDTO struct {
	ServiceID           uint    `json:"service_id"`
	ServiceName         string  `json:"service_name"`
	DurationMinutes     int     `json:"duration_minutes"`
	Price               float64 `json:"price"`
	IsAvailable         bool    `json:"is_available"`
	ServiceProviderID   uint    `json:"service_provider_id"`
	ServiceProviderName string  `json:"service_provider_name"`
}
