package models

import "github.com/paddlespot/paddlespot/internal/weather"

// Forecast is the body of GET /v1/weather/forecast.
type Forecast struct {
	Latitude  float64               `json:"latitude"`
	Longitude float64               `json:"longitude"`
	Days      []weather.DayForecast `json:"days"`
}
