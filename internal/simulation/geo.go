package simulation

import (
	"math"

	"carrental-backend/internal/models"
)

// Distance вычисляет расстояние между двумя точками по формуле гаверсинуса (в метрах)
func Distance(from, to models.Location) float64 {
	R := 6371000.0 // Радиус Земли в метрах
	φ1 := from.Latitude * math.Pi / 180
	φ2 := to.Latitude * math.Pi / 180
	dφ := (to.Latitude - from.Latitude) * math.Pi / 180
	dλ := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dφ/2)*math.Sin(dφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(dλ/2)*math.Sin(dλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// Lerp линейно интерполирует координату между двумя точками по доле пути t
func Lerp(from, to models.Location, t float64) models.Location {
	return models.Location{
		Latitude:  from.Latitude + (to.Latitude-from.Latitude)*t,
		Longitude: from.Longitude + (to.Longitude-from.Longitude)*t,
	}
}
