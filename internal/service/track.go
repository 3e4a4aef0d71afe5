package service

import (
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/hercules-fit/hercules-api/internal/apperr"
)

// TrackPoint is one flattened GPS sample. Time is RFC3339 or null when the
// source point carried no timestamp.
type TrackPoint struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Ele  float64 `json:"ele"`
	Time *string `json:"time"`
}

// ParseTrack flattens a GPX document into an ordered point sequence,
// preserving track and segment order.
func ParseTrack(data []byte) ([]TrackPoint, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInvalidInput, "could not parse GPX track", err)
	}

	var points []TrackPoint
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				tp := TrackPoint{
					Lat: p.Latitude,
					Lon: p.Longitude,
				}
				if p.Elevation.NotNull() {
					tp.Ele = p.Elevation.Value()
				}
				if !p.Timestamp.IsZero() {
					ts := p.Timestamp.Format(time.RFC3339)
					tp.Time = &ts
				}
				points = append(points, tp)
			}
		}
	}
	return points, nil
}
