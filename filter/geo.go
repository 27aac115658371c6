package filter

import (
	"math"

	"github.com/s0up4200/flightradar/flightradar"
)

const (
	earthRadiusKm = 6371.0
	kmPerDegree   = 111.32
)

// DistanceKm returns the great-circle distance between two coordinates
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// BoxesAround returns bounding boxes that together contain the circle of
// radiusKm around the given point. A circle crossing the antimeridian is
// split into one box on each side of it.
func BoxesAround(lat, lon, radiusKm float64) []flightradar.Bounds {
	latDelta := radiusKm / kmPerDegree
	north := math.Min(lat+latDelta, 90)
	south := math.Max(lat-latDelta, -90)

	lonDelta := 180.0
	if c := math.Cos(radians(lat)); c > 1e-9 {
		lonDelta = math.Min(radiusKm/(kmPerDegree*c), 180)
	}
	if lonDelta >= 180 {
		return []flightradar.Bounds{{North: north, South: south, West: -180, East: 180}}
	}

	west, east := lon-lonDelta, lon+lonDelta
	switch {
	case west < -180:
		return []flightradar.Bounds{
			{North: north, South: south, West: -180, East: east},
			{North: north, South: south, West: west + 360, East: 180},
		}
	case east > 180:
		return []flightradar.Bounds{
			{North: north, South: south, West: west, East: 180},
			{North: north, South: south, West: -180, East: east - 360},
		}
	}
	return []flightradar.Bounds{{North: north, South: south, West: west, East: east}}
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
