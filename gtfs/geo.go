package gtfs

import "math"

const earthRadius = 6371000.0 // meters

// haversine returns the great-circle distance in meters between two [lat, lon]
// points given in degrees.
func haversine(a, b [2]float64) float64 {
	lat1, lat2 := a[0]*math.Pi/180, b[0]*math.Pi/180
	dLat := lat2 - lat1
	dLon := (b[1] - a[1]) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadius * math.Asin(math.Min(1, math.Sqrt(h)))
}

// latitudeSpan converts a distance into the latitude difference (degrees) it covers.
func latitudeSpan(meters float64) float64 {
	return meters / earthRadius * 180 / math.Pi
}

// walkSeconds rounds a walk up to whole seconds, never below one.
func walkSeconds(meters, speed float64) int64 {
	s := int64(math.Ceil(meters / speed))
	if s < 1 {
		return 1
	}
	return s
}
