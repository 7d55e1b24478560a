package domain

import (
	"math"
	"time"
)

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a longitude/latitude pair.
func NewGeoPoint(longitude, latitude float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: [2]float64{longitude, latitude}}
}

func (p GeoPoint) Longitude() float64 { return p.Coordinates[0] }
func (p GeoPoint) Latitude() float64  { return p.Coordinates[1] }

// Valid reports whether both coordinates are finite and inside the WGS84
// ranges accepted by a 2dsphere index.
func (p GeoPoint) Valid() bool {
	for _, c := range p.Coordinates {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return math.Abs(p.Longitude()) <= 180 && math.Abs(p.Latitude()) <= 90
}

// AttendanceRecord is an append-only, immutable attendance mark.
type AttendanceRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Location  GeoPoint  `json:"location"`
}
