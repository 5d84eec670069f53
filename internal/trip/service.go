package trip

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/pmcdona037/mcd-moves/internal/geojson"
	"github.com/pmcdona037/mcd-moves/internal/shared/geo"
	"github.com/pmcdona037/mcd-moves/internal/stream"
)

type Service struct {
	src Source
	hub *stream.Hub
}

func NewService(src Source, hub *stream.Hub) *Service {
	return &Service{src: src, hub: hub}
}

func (s *Service) Meta(ctx context.Context, tripID string) (Meta, error) {
	return s.src.Meta(ctx, tripID)
}

// Summarize runs the whole pipeline for one trip: metadata fetch, concurrent
// day loads, and reduction into totals and bounds. Day failures are isolated
// into ok=false rows; only a metadata failure or an empty day list is fatal.
// On ErrNoDays the returned summary still carries the metadata so the trip
// header can render.
//
// runID names the progress channel day results are broadcast on as they
// settle; empty means the caller did not ask to watch and one is generated.
func (s *Service) Summarize(ctx context.Context, tripID, runID string) (Summary, error) {
	meta, err := s.src.Meta(ctx, tripID)
	if err != nil {
		return Summary{}, err
	}
	if len(meta.Days) == 0 {
		return Summary{Meta: meta}, ErrNoDays
	}
	if runID == "" {
		runID = uuid.NewString()
	}

	// One goroutine per day, joined by the barrier below. Each writes only
	// its own slot, so completion order never reorders the result list and
	// a failing day cannot touch its siblings.
	results := make([]DayResult, len(meta.Days))
	var wg sync.WaitGroup
	for i, entry := range meta.Days {
		wg.Add(1)
		go func(i int, entry DayEntry) {
			defer wg.Done()
			results[i] = s.loadDay(ctx, tripID, entry, i)
			s.publish(runID, "day", results[i])
		}(i, entry)
	}
	wg.Wait()

	summary := Summary{RunID: runID, Meta: meta, Days: results}
	var bounds geo.Bounds
	haveBounds := false
	for _, r := range results {
		if !r.OK {
			continue
		}
		summary.Totals.DistanceMiles += r.DistanceMiles
		summary.Totals.ElevationGainFt += r.ElevationGainFt
		haveBounds = bounds.Extend(r.Geometry.Track(), !haveBounds)
	}
	if summary.Totals.DistanceMiles > 0 {
		v := summary.Totals.ElevationGainFt / summary.Totals.DistanceMiles
		summary.Totals.VertPerMile = &v
	}
	if haveBounds {
		summary.Bounds = &bounds
	} else {
		summary.BoundsError = "map bounds undeterminable: no day produced usable geometry"
		center := DefaultCenter
		summary.Center = &center
	}

	s.publish(runID, "totals", summary.Totals)
	return summary, nil
}

// loadDay fetches and normalizes one day. It never returns an error: any
// failure becomes an ok=false result with zero metrics and no geometry.
func (s *Service) loadDay(ctx context.Context, tripID string, entry DayEntry, index int) DayResult {
	res := DayResult{Index: index, Day: index + 1, Color: dayColor(index)}

	doc, err := s.src.Day(ctx, tripID, entry.File)
	if err != nil {
		log.Printf("trip %s day %d (%s): %v", tripID, index+1, entry.File, err)
		res.Error = err.Error()
		return res
	}

	res.OK = true
	res.Geometry = doc
	if day, ok := propNumber(doc.FirstProperties(), "day"); ok {
		res.Day = int(day)
	}
	res.DistanceMiles, res.ElevationGainFt = normalizeDay(entry, doc)
	return res
}

// normalizeDay reconciles the two metadata shapes into one pair of metrics.
// Manual entries use their declared stats and never trigger computation.
// Legacy entries prefer stats embedded in the geometry's first feature;
// only when neither is embedded are metrics derived from the coordinates.
func normalizeDay(entry DayEntry, doc *geojson.Document) (distance, elevation float64) {
	if entry.Manual {
		return entry.DistanceMiles, entry.ElevationGainFt
	}

	props := doc.FirstProperties()
	dist, haveDist := propNumber(props, "distance_miles")
	elev, haveElev := propNumber(props, "elevation_gain_ft")
	if haveDist || haveElev {
		return dist, elev
	}

	coords := doc.Track()
	return geo.TrackDistanceMiles(coords), geo.ElevationGainFt(coords)
}

func propNumber(props map[string]any, key string) (float64, bool) {
	v, ok := props[key].(float64)
	return v, ok
}

func (s *Service) publish(runID, kind string, payload any) {
	if s.hub == nil {
		return
	}
	msg, err := json.Marshal(map[string]any{"type": kind, "data": payload})
	if err != nil {
		return
	}
	s.hub.Broadcast(runID, msg)
}
