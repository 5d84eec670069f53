package trip

import (
	"encoding/json"
	"fmt"

	"github.com/pmcdona037/mcd-moves/internal/geojson"
	"github.com/pmcdona037/mcd-moves/internal/shared/geo"
)

type Meta struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	StartDate   string     `json:"start_date"`
	StartTime   string     `json:"start_time"`
	EndDate     string     `json:"end_date"`
	EndTime     string     `json:"end_time"`
	Days        []DayEntry `json:"days"`
}

// DayEntry is one declared day of a trip. The metadata format has two
// shapes: a bare filename (legacy), and an object carrying the filename plus
// optional hand-measured stats (manual). Manual stats are authoritative and
// suppress metric computation entirely.
type DayEntry struct {
	File            string
	Manual          bool
	DistanceMiles   float64
	ElevationGainFt float64
}

func (e *DayEntry) UnmarshalJSON(data []byte) error {
	switch {
	case len(data) > 0 && data[0] == '"':
		*e = DayEntry{}
		return json.Unmarshal(data, &e.File)
	case len(data) > 0 && data[0] == '{':
		var obj struct {
			File            string  `json:"file"`
			DistanceMiles   float64 `json:"distance_miles"`
			ElevationGainFt float64 `json:"elevation_gain_ft"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*e = DayEntry{
			File:            obj.File,
			Manual:          true,
			DistanceMiles:   obj.DistanceMiles,
			ElevationGainFt: obj.ElevationGainFt,
		}
		return nil
	default:
		return fmt.Errorf("day entry must be a filename or an object, got %s", data)
	}
}

func (e DayEntry) MarshalJSON() ([]byte, error) {
	if !e.Manual {
		return json.Marshal(e.File)
	}
	return json.Marshal(struct {
		File            string  `json:"file"`
		DistanceMiles   float64 `json:"distance_miles"`
		ElevationGainFt float64 `json:"elevation_gain_ft"`
	}{e.File, e.DistanceMiles, e.ElevationGainFt})
}

// DayResult is the normalized outcome for one day. Index is the stable
// zero-based position in the declared day list; Day is the display label.
// When OK is false the metrics are zero and Geometry is absent.
type DayResult struct {
	Index           int               `json:"index"`
	Day             int               `json:"day"`
	OK              bool              `json:"ok"`
	DistanceMiles   float64           `json:"distance_miles"`
	ElevationGainFt float64           `json:"elevation_gain_ft"`
	Color           string            `json:"color"`
	Geometry        *geojson.Document `json:"geometry,omitempty"`
	Error           string            `json:"error,omitempty"`
}

type Totals struct {
	DistanceMiles   float64  `json:"distance_miles"`
	ElevationGainFt float64  `json:"elevation_gain_ft"`
	VertPerMile     *float64 `json:"vert_per_mile"`
}

// Summary is the full pipeline output for a trip. Days always has the same
// length and order as the declared day list. Bounds covers the successful
// days' geometry; when none produced usable coordinates BoundsError is set
// and Center falls back to DefaultCenter.
type Summary struct {
	RunID       string      `json:"run_id"`
	Meta        Meta        `json:"meta"`
	Days        []DayResult `json:"days"`
	Totals      Totals      `json:"totals"`
	Bounds      *geo.Bounds `json:"bounds,omitempty"`
	BoundsError string      `json:"bounds_error,omitempty"`
	Center      *[2]float64 `json:"center,omitempty"`
}

// DefaultCenter is the map center (lat, lng) used when no day yields
// geometry to derive bounds from.
var DefaultCenter = [2]float64{39.8283, -98.5795}

var dayPalette = []string{
	"#e6194b", "#3cb44b", "#4363d8", "#f58231",
	"#911eb4", "#46a5c4", "#f032e6", "#808000",
}

func dayColor(index int) string {
	return dayPalette[index%len(dayPalette)]
}
