package geo

import (
	"math"

	"github.com/paulmach/orb"
)

// TangentPlane is a flat-earth local frame anchored at an origin point.
// Axes follow the camera convention: X east, Y up, Z north, all in meters.
// The approximation is only valid for short ranges (tens of nautical miles),
// which matches the radar's maximum display distance.
type TangentPlane struct {
	origin      Point
	originAltFt float64
	cosLat      float64
}

// Vec3 is a position in tangent-plane meters (east, up, north).
type Vec3 struct {
	X, Y, Z float64
}

// NewTangentPlane anchors a frame at the given origin and altitude.
func NewTangentPlane(origin Point, originAltFt float64) *TangentPlane {
	return &TangentPlane{
		origin:      origin,
		originAltFt: originAltFt,
		cosLat:      math.Cos(origin.Lat * math.Pi / 180.0),
	}
}

// Origin returns the anchor point.
func (p *TangentPlane) Origin() Point { return p.origin }

// ToWorld converts a geographic position to tangent-plane meters.
func (p *TangentPlane) ToWorld(pt Point, altFt float64) Vec3 {
	dLat := (pt.Lat - p.origin.Lat) * math.Pi / 180.0
	dLon := (pt.Lon - p.origin.Lon) * math.Pi / 180.0

	return Vec3{
		X: dLon * EarthRadiusM * p.cosLat,
		Y: (altFt - p.originAltFt) / FeetPerMeter,
		Z: dLat * EarthRadiusM,
	}
}

// ToGeo converts tangent-plane meters back to a geographic position and
// altitude in feet.
func (p *TangentPlane) ToGeo(v Vec3) (Point, float64) {
	lat := p.origin.Lat + (v.Z/EarthRadiusM)*180.0/math.Pi
	lon := p.origin.Lon
	if p.cosLat != 0 {
		lon += (v.X / (EarthRadiusM * p.cosLat)) * 180.0 / math.Pi
	}
	return Point{Lat: lat, Lon: lon}, p.originAltFt + v.Y*FeetPerMeter
}

// Bound returns an orb.Bound covering radiusNM around the origin, for API
// consumers that draw range rings or fetch tiles.
func (p *TangentPlane) Bound(radiusNM float64) orb.Bound {
	radiusM := radiusNM * MetersPerNM
	dLat := (radiusM / EarthRadiusM) * 180.0 / math.Pi
	dLon := dLat
	if p.cosLat > 1e-9 {
		dLon = dLat / p.cosLat
	}
	return orb.Bound{
		Min: orb.Point{p.origin.Lon - dLon, p.origin.Lat - dLat},
		Max: orb.Point{p.origin.Lon + dLon, p.origin.Lat + dLat},
	}
}
