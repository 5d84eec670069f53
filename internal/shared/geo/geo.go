package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3958.8

// HaversineMiles returns the great-circle distance in miles between two
// points given in decimal degrees.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

// TrackDistanceMiles sums the leg distances of a coordinate track. Each
// coordinate is GeoJSON-ordered: [longitude, latitude, elevation?]. Tracks
// with fewer than two points have zero length.
func TrackDistanceMiles(coords [][]float64) float64 {
	total := 0.0
	for i := 1; i < len(coords); i++ {
		prev, cur := coords[i-1], coords[i]
		if len(prev) < 2 || len(cur) < 2 {
			continue
		}
		total += HaversineMiles(prev[1], prev[0], cur[1], cur[0])
	}
	return total
}

// ElevationGainFt sums positive elevation deltas along a track, in feet.
// Descents are ignored, and legs where either endpoint lacks a third
// component contribute nothing.
func ElevationGainFt(coords [][]float64) float64 {
	gain := 0.0
	for i := 1; i < len(coords); i++ {
		prev, cur := coords[i-1], coords[i]
		if len(prev) < 3 || len(cur) < 3 {
			continue
		}
		if d := cur[2] - prev[2]; d > 0 {
			gain += d
		}
	}
	return gain
}

// Bounds is a lat/lng bounding box.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`
}

// Extend grows the bounds to include every point of the track and reports
// whether any point was consumed.
func (b *Bounds) Extend(coords [][]float64, empty bool) bool {
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		lng, lat := c[0], c[1]
		if empty {
			b.MinLat, b.MaxLat = lat, lat
			b.MinLng, b.MaxLng = lng, lng
			empty = false
			continue
		}
		b.MinLat = math.Min(b.MinLat, lat)
		b.MaxLat = math.Max(b.MaxLat, lat)
		b.MinLng = math.Min(b.MinLng, lng)
		b.MaxLng = math.Max(b.MaxLng, lng)
	}
	return !empty
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
