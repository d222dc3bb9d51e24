package models

import "time"

type Location struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Address string `gorm:"size:255;not null" json:"address"`
	City    string `gorm:"size:100;not null" json:"city"`
	ZipCode string `gorm:"size:20;not null" json:"zip_code"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
