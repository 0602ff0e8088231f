package geo

import "github.com/golang/geo/s2"

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371008.8

// DistanceMeters возвращает расстояние по большому кругу между двумя точками
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	a := s2.LatLngFromDegrees(lat1, lon1)
	b := s2.LatLngFromDegrees(lat2, lon2)
	return a.Distance(b).Radians() * EarthRadiusMeters
}
