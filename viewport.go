package main

import "fmt"

const (
	// Terminal cells are roughly twice as tall as they are wide, so one
	// row covers twice the degrees of one column to keep shapes round.
	charAspect = 2.0

	// Vertical scale when no country drives the zoom.
	defaultDegPerRow = 0.75

	// Padding around a fitted country, as a fraction of its span added
	// to each side.
	fitMargin = 1.0

	// Floor for fitted spans so tiny countries still get context.
	minFitSpan = 4.0
)

// Viewport maps the character grid onto a window of the equirectangular
// plane. The window is centered on (CenterLat, CenterLon) and extends
// HalfWidth degrees of longitude and HalfHeight degrees of latitude to
// each side.
type Viewport struct {
	CenterLat  float64
	CenterLon  float64
	HalfWidth  float64
	HalfHeight float64
	Cols       int
	Rows       int
}

// computeViewport builds the viewport for a grid of cols x rows centered
// on the given point. With a highlight country the zoom is chosen to fit
// its bounding box plus margin; otherwise a fixed default scale applies.
// The window always stays within the valid coordinate range: it shrinks
// when larger than the world and slides toward the equator when it
// would reach past a pole.
func computeViewport(lat, lon float64, cols, rows int, highlight *Country) (Viewport, error) {
	if cols <= 0 || rows <= 0 {
		return Viewport{}, fmt.Errorf("%w: %dx%d", ErrBadGridSize, cols, rows)
	}

	halfHeight := defaultDegPerRow * float64(rows) / 2
	if highlight != nil {
		latSpan := highlight.Bounds.Max[1] - highlight.Bounds.Min[1]
		lonSpan := highlight.Bounds.Max[0] - highlight.Bounds.Min[0]
		latSpan *= 1 + 2*fitMargin
		lonSpan *= 1 + 2*fitMargin
		if latSpan < minFitSpan {
			latSpan = minFitSpan
		}
		if lonSpan < minFitSpan {
			lonSpan = minFitSpan
		}
		halfHeight = latSpan / 2
		// Widen vertically if the country is wide relative to the grid.
		if need := lonSpan / 2 * charAspect * float64(rows) / float64(cols); need > halfHeight {
			halfHeight = need
		}
	}

	halfWidth := halfHeight * float64(cols) / (float64(rows) * charAspect)

	// Shrink symmetrically rather than distort if the window would
	// exceed the whole map.
	if halfHeight > 90 {
		scale := 90 / halfHeight
		halfHeight *= scale
		halfWidth *= scale
	}
	if halfWidth > 180 {
		scale := 180 / halfWidth
		halfHeight *= scale
		halfWidth *= scale
	}

	// Slide the window back toward the equator when it would reach past
	// a pole. Longitude needs no such shift: it wraps.
	centerLat := clampLat(lat)
	if centerLat+halfHeight > 90 {
		centerLat = 90 - halfHeight
	}
	if centerLat-halfHeight < -90 {
		centerLat = -90 + halfHeight
	}

	return Viewport{
		CenterLat:  centerLat,
		CenterLon:  wrapLon(lon),
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
		Cols:       cols,
		Rows:       rows,
	}, nil
}

// DegPerCol is the longitude covered by one column.
func (v Viewport) DegPerCol() float64 { return 2 * v.HalfWidth / float64(v.Cols) }

// DegPerRow is the latitude covered by one row.
func (v Viewport) DegPerRow() float64 { return 2 * v.HalfHeight / float64(v.Rows) }

// CellCenter returns the geographic center of a grid cell. Row 0 is the
// top of the grid (highest latitude).
func (v Viewport) CellCenter(row, col int) (lat, lon float64) {
	lat = v.CenterLat + v.HalfHeight - (float64(row)+0.5)*v.DegPerRow()
	lon = wrapLon(v.CenterLon - v.HalfWidth + (float64(col)+0.5)*v.DegPerCol())
	return lat, lon
}

// Cell is the inverse of CellCenter: the grid cell containing a point.
// The returned row or column may fall outside the grid.
func (v Viewport) Cell(lat, lon float64) (row, col int) {
	row = int((v.CenterLat + v.HalfHeight - lat) / v.DegPerRow())
	col = int((lonDelta(lon, v.CenterLon) + v.HalfWidth) / v.DegPerCol())
	return row, col
}
