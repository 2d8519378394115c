package models

import (
	"net/url"
	"strconv"

	"github.com/paddlespot/paddlespot/internal/validation"
)

// CoordinateQuery is a lat/lon pair read from the query string.
type CoordinateQuery struct {
	Lat      float64 `json:"lat" validate:"latitude"`
	Lon      float64 `json:"lon" validate:"longitude"`
	RadiusKm float64 `json:"radiusKm" validate:"gte=0,lte=1000"`
}

// ParseCoordinateQuery reads lat, lon and an optional radiusKm. present is
// false when neither lat nor lon was given.
func ParseCoordinateQuery(q url.Values) (query CoordinateQuery, present bool, err error) {
	latRaw, lonRaw := q.Get("lat"), q.Get("lon")
	if latRaw == "" && lonRaw == "" {
		return query, false, nil
	}

	if query.Lat, err = parseFloat("lat", latRaw); err != nil {
		return query, true, err
	}
	if query.Lon, err = parseFloat("lon", lonRaw); err != nil {
		return query, true, err
	}
	if raw := q.Get("radiusKm"); raw != "" {
		if query.RadiusKm, err = parseFloat("radiusKm", raw); err != nil {
			return query, true, err
		}
	}

	if err := validation.Struct(query); err != nil {
		return query, true, err
	}
	return query, true, nil
}

func parseFloat(field, raw string) (float64, error) {
	if raw == "" {
		return 0, validation.NewError(field, "required", "is required")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validation.NewError(field, "number", "must be a number")
	}
	return v, nil
}
