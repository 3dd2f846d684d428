package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate in degrees
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds is the smallest lat/lon box containing a set of points
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// HaversineKm returns the great-circle distance in kilometers between two points.
func HaversineKm(a, b Point) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLon := toRad(b.Lon - a.Lon)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Nearest returns the index of the candidate closest to origin and its distance.
// Ties keep the first candidate. ok is false when candidates is empty.
func Nearest(origin Point, candidates []Point) (index int, distanceKm float64, ok bool) {
	index = -1
	for i, c := range candidates {
		d := HaversineKm(origin, c)
		if index == -1 || d < distanceKm {
			index, distanceKm = i, d
		}
	}
	return index, distanceKm, index != -1
}

// BoundsOf returns the box covering all points. The zero Bounds is returned for no points.
func BoundsOf(points ...Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{South: points[0].Lat, North: points[0].Lat, West: points[0].Lon, East: points[0].Lon}
	for _, p := range points[1:] {
		b.South = math.Min(b.South, p.Lat)
		b.North = math.Max(b.North, p.Lat)
		b.West = math.Min(b.West, p.Lon)
		b.East = math.Max(b.East, p.Lon)
	}
	return b
}

// Center returns the midpoint of the box
func (b Bounds) Center() Point {
	return Point{Lat: (b.South + b.North) / 2, Lon: (b.West + b.East) / 2}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
