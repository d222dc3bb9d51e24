package dto

import "time"

type AppointmentListDTO struct {
	ID                  uint      `json:"id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Status              string    `json:"status"`
	Notes               string    `json:"notes"`
	ServiceID           uint      `json:"service_id"`
	ServiceName         string    `json:"service_name"`
	ServiceProviderID   uint      `json:"service_provider_id"`
	ServiceProviderName string    `json:"service_provider_name"`
}
