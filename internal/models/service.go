package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:100;not null" json:"name"`

	// NormalizedName is the lower-cased, diacritics-stripped form used by search.
	NormalizedName string `gorm:"size:100;index" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
