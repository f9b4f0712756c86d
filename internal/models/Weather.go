package models

import (
	"time"

	"gorm.io/gorm"
)

// Weather is the conditions snapshot captured when a trip is created.
// One row per trip, absent when the lookup failed or was skipped.
type Weather struct {
	gorm.Model
	TripID       uint      `json:"trip_id" gorm:"uniqueIndex;not null"`
	City         string    `json:"city"`
	TemperatureC float64   `json:"temperature_c"`
	FeelsLikeC   float64   `json:"feels_like_c"`
	Humidity     int       `json:"humidity"`
	Description  string    `json:"description"`
	WindSpeed    float64   `json:"wind_speed"`
	FetchedAt    time.Time `json:"fetched_at"`
}
