// Package trackdetect detects whether an activity includes a portion run on
// a standard 400m track. A sliding window scans the GPS stream, the convex
// hull of each window is compared to a template oval via Hu moment shape
// matching, and geometric gates (bounding box, axis lengths, aspect ratio,
// fill ratio) reject non-track shapes. Known track locations are cached so
// later activities at the same track resolve without a fresh fit.
package trackdetect

import (
	"fmt"
	"log"
	"math"

	"github.com/runpace/runpace-backend-go/internal/config"
	"github.com/runpace/runpace-backend-go/internal/models"
	"github.com/runpace/runpace-backend-go/internal/spatial"
	"github.com/runpace/runpace-backend-go/internal/stats"
)

// Detection methods
const (
	MethodKnown  = "known"
	MethodFitted = "fitted"
)

// Cache is the storage for previously detected track locations.
type Cache interface {
	All() ([]models.DetectedTrack, error)
	Insert(track *models.DetectedTrack) error
}

// Result describes the outcome of track detection for one GPS stream.
type Result struct {
	IsTrack        bool     `json:"isTrack"`
	FitScore       float64  `json:"fitScore"`
	OrientationDeg *float64 `json:"orientationDeg"`
	Method         string   `json:"method,omitempty"`
	WindowStartTS  *float64 `json:"windowStartTs"`
	WindowEndTS    *float64 `json:"windowEndTs"`
}

// Detector scans GPS streams for track-shaped windows.
type Detector struct {
	cfg      config.TrackConfig
	cache    Cache
	template []spatial.XY
}

// NewDetector builds a detector with the given thresholds and track cache.
func NewDetector(cfg config.TrackConfig, cache Cache) *Detector {
	return &Detector{
		cfg:      cfg,
		cache:    cache,
		template: buildTemplateOval(cfg.StraightLengthM, cfg.TurnRadiusM, 50),
	}
}

// buildTemplateOval traces the lane-1 outline of a standard 400m track:
// two straights of length s joined by semicircles of radius r, nPerSegment
// points per segment.
func buildTemplateOval(s, r float64, nPerSegment int) []spatial.XY {
	halfS := s / 2
	pts := make([]spatial.XY, 0, 4*nPerSegment)

	// Top straight, left to right
	for i := 0; i < nPerSegment; i++ {
		x := linspace(-halfS, halfS, nPerSegment, i)
		pts = append(pts, spatial.XY{X: x, Y: r})
	}
	// Right semicircle, top to bottom, centered at (halfS, 0)
	for i := 0; i < nPerSegment; i++ {
		angle := linspace(math.Pi/2, -math.Pi/2, nPerSegment, i)
		pts = append(pts, spatial.XY{X: halfS + r*math.Cos(angle), Y: r * math.Sin(angle)})
	}
	// Bottom straight, right to left
	for i := 0; i < nPerSegment; i++ {
		x := linspace(halfS, -halfS, nPerSegment, i)
		pts = append(pts, spatial.XY{X: x, Y: -r})
	}
	// Left semicircle, bottom to top, centered at (-halfS, 0)
	for i := 0; i < nPerSegment; i++ {
		angle := linspace(3*math.Pi/2, math.Pi/2, nPerSegment, i)
		pts = append(pts, spatial.XY{X: -halfS + r*math.Cos(angle), Y: r * math.Sin(angle)})
	}

	return pts
}

func linspace(from, to float64, n, i int) float64 {
	if n == 1 {
		return from
	}
	return from + float64(i)*(to-from)/float64(n-1)
}

type gpsPoint struct {
	ts  float64
	lat float64
	lon float64
}

type windowScore struct {
	score     float64
	shortAxis float64
	longAxis  float64
	angle     float64
}

type bestWindow struct {
	windowScore
	startTS     float64
	endTS       float64
	centroidLat float64
	centroidLon float64
}

// Detect scans one GPS stream for a track-shaped window. Streams shorter
// than the window size are never a track. When no cached track matches and
// a window fits the oval, the best-fitting window's centroid is saved to
// the cache under the given activity.
func (d *Detector) Detect(activityID int64, streamPoints []models.StreamPoint) (Result, error) {
	var result Result

	points := make([]gpsPoint, 0, len(streamPoints))
	for _, sp := range streamPoints {
		if sp.Lat == nil || sp.Lon == nil || sp.TimestampS == nil {
			continue
		}
		points = append(points, gpsPoint{ts: *sp.TimestampS, lat: *sp.Lat, lon: *sp.Lon})
	}

	if len(points) < d.cfg.WindowSize {
		return result, nil
	}

	var best *bestWindow

	for start := 0; start+d.cfg.WindowSize <= len(points); start += d.cfg.WindowStep {
		window := points[start : start+d.cfg.WindowSize]

		var sumLat, sumLon float64
		for _, p := range window {
			sumLat += p.lat
			sumLon += p.lon
		}
		cLat := sumLat / float64(len(window))
		cLon := sumLon / float64(len(window))

		local := make([]spatial.XY, len(window))
		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for i, p := range window {
			x, y := spatial.LocalXY(cLat, cLon, p.lat, p.lon)
			local[i] = spatial.XY{X: x, Y: y}
			minX = math.Min(minX, x)
			maxX = math.Max(maxX, x)
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}

		// A window wider than a track plus warmup drift cannot be one
		if maxX-minX > d.cfg.MaxBboxM || maxY-minY > d.cfg.MaxBboxM {
			continue
		}

		known, err := d.checkKnownTracks(cLat, cLon)
		if err != nil {
			return result, err
		}
		if known != nil {
			result.IsTrack = true
			if known.FitScore != nil {
				result.FitScore = *known.FitScore
			}
			result.OrientationDeg = known.OrientationDeg
			result.Method = MethodKnown
			startTS, endTS := window[0].ts, window[len(window)-1].ts
			result.WindowStartTS = &startTS
			result.WindowEndTS = &endTS
			return result, nil
		}

		ws := d.scoreWindow(local)
		if ws != nil && (best == nil || ws.score < best.score) {
			best = &bestWindow{
				windowScore: *ws,
				startTS:     window[0].ts,
				endTS:       window[len(window)-1].ts,
				centroidLat: cLat,
				centroidLon: cLon,
			}
		}
	}

	if best == nil {
		return result, nil
	}

	result.IsTrack = true
	result.FitScore = stats.RoundTo(best.score, 4)
	angle := best.angle
	result.OrientationDeg = &angle
	result.Method = MethodFitted
	result.WindowStartTS = &best.startTS
	result.WindowEndTS = &best.endTS

	track := &models.DetectedTrack{
		Lat:                  best.centroidLat,
		Lon:                  best.centroidLon,
		OrientationDeg:       &angle,
		FitScore:             &result.FitScore,
		DetectedByActivityID: &activityID,
	}
	if err := d.cache.Insert(track); err != nil {
		log.Printf("[TrackDetect] Failed to save detected track: %v", err)
	}

	return result, nil
}

// checkKnownTracks returns the first cached track within the known-track
// radius of the window centroid.
func (d *Detector) checkKnownTracks(centroidLat, centroidLon float64) (*models.DetectedTrack, error) {
	tracks, err := d.cache.All()
	if err != nil {
		return nil, fmt.Errorf("failed to load detected tracks: %w", err)
	}

	for i := range tracks {
		dx, dy := spatial.LocalXY(tracks[i].Lat, tracks[i].Lon, centroidLat, centroidLon)
		if math.Hypot(dx, dy) <= d.cfg.KnownTrackRadiusM {
			return &tracks[i], nil
		}
	}
	return nil, nil
}

// scoreWindow matches one window of local-plane points against the template
// oval. Returns nil when any gate fails.
func (d *Detector) scoreWindow(local []spatial.XY) *windowScore {
	hull := spatial.ConvexHull(local)
	if len(hull) < 5 {
		return nil
	}

	score := spatial.MatchShapes(d.template, hull)
	if score > d.cfg.MatchScoreMax {
		return nil
	}

	rect := spatial.MinAreaRect(hull)
	shortAxis := rect.ShortAxis()
	longAxis := rect.LongAxis()

	if shortAxis < d.cfg.MinShortAxisM || shortAxis > d.cfg.MaxShortAxisM {
		return nil
	}
	if longAxis < d.cfg.MinLongAxisM || longAxis > d.cfg.MaxLongAxisM {
		return nil
	}
	if shortAxis <= 0 {
		return nil
	}
	aspect := longAxis / shortAxis
	if aspect < d.cfg.MinAspectRatio || aspect > d.cfg.MaxAspectRatio {
		return nil
	}

	// Real track ovals fill ~0.88 of their bounding rect; straight-line
	// shapes fill ~0.57
	rectArea := shortAxis * longAxis
	if rectArea <= 0 {
		return nil
	}
	if spatial.PolygonArea(hull)/rectArea < d.cfg.MinFillRatio {
		return nil
	}

	return &windowScore{
		score:     score,
		shortAxis: shortAxis,
		longAxis:  longAxis,
		angle:     rect.AngleDeg,
	}
}
