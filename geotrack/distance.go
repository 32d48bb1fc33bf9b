package geotrack

import "github.com/jftuga/geodist"

// DistanceKm is the haversine length of the polyline through all points.
func (t *Track) DistanceKm() float64 {
	total := 0.0
	for i := 1; i < len(t.Points); i++ {
		prev := geodist.Coord{Lat: t.Points[i-1].Lat, Lon: t.Points[i-1].Lon}
		curr := geodist.Coord{Lat: t.Points[i].Lat, Lon: t.Points[i].Lon}
		_, km := geodist.HaversineDistance(prev, curr)
		total += km
	}

	return total
}
