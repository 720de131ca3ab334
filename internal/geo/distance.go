package geo

import "math"

// earthRadiusKm - средний радиус Земли в километрах
const earthRadiusKm = 6371.0

// DistanceKm вычисляет расстояние по большому кругу (формула гаверсинуса) между двумя точками.
// Координаты передаются в градусах.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	// asin из-за погрешностей округления может получить значение чуть больше 1
	c := 2 * math.Asin(math.Min(1, math.Sqrt(a)))

	return earthRadiusKm * c
}

// ValidCoordinates проверяет, что широта в [-90,90], долгота в [-180,180]
func ValidCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
