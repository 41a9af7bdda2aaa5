package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// Minimum rectangle extent for degenerate (axis-aligned or zero-length)
// edges; the R-tree rejects zero-sized rectangles.
const segmentRectEps = 1e-6

// borderSegment is one polygon edge stored in the spatial index, in the
// dataset's unwrapped longitudes.
type borderSegment struct {
	country int // dataset index of the owning country
	ax, ay  float64
	bx, by  float64
	rect    rtreego.Rect
}

// Bounds implements rtreego.Spatial.
func (s *borderSegment) Bounds() rtreego.Rect { return s.rect }

// segmentIndex answers "which border edges run near this point" without
// scanning every edge of every country per grid cell.
type segmentIndex struct {
	tree *rtreego.Rtree
}

func buildSegmentIndex(countries []Country) *segmentIndex {
	var entries []rtreego.Spatial
	for ci := range countries {
		for _, poly := range countries[ci].Polygons {
			for _, ring := range poly {
				for i := 1; i < len(ring); i++ {
					entries = append(entries, segmentEntries(ci, ring[i-1], ring[i])...)
				}
			}
		}
	}
	return &segmentIndex{tree: rtreego.NewTree(2, 25, 50, entries...)}
}

// segmentEntries builds the index entries for one edge. Edges near the
// antimeridian get a second copy shifted a full revolution, so queries
// from either side of the seam can reach them.
func segmentEntries(country int, a, b orb.Point) []rtreego.Spatial {
	seg := borderSegment{
		country: country,
		ax:      a[0], ay: a[1],
		bx: b[0], by: b[1],
	}
	out := []rtreego.Spatial{seg.shifted(0)}
	if math.Max(seg.ax, seg.bx) > 170 {
		out = append(out, seg.shifted(-360))
	}
	if math.Min(seg.ax, seg.bx) < -170 {
		out = append(out, seg.shifted(360))
	}
	return out
}

func (s borderSegment) shifted(dlon float64) *borderSegment {
	s.ax += dlon
	s.bx += dlon
	w := math.Abs(s.ax - s.bx)
	h := math.Abs(s.ay - s.by)
	if w < segmentRectEps {
		w = segmentRectEps
	}
	if h < segmentRectEps {
		h = segmentRectEps
	}
	origin := rtreego.Point{math.Min(s.ax, s.bx), math.Min(s.ay, s.by)}
	rect, _ := rtreego.NewRect(origin, []float64{w, h})
	s.rect = rect
	return &s
}

// nearBorder reports whether any border edge runs within the elliptical
// radius (lonRadius, latRadius) of the point, and whether one of the
// nearby edges belongs to the country at index highlight.
func (idx *segmentIndex) nearBorder(lon, lat, lonRadius, latRadius float64, highlight int) (near, highlightNear bool) {
	origin := rtreego.Point{lon - lonRadius, lat - latRadius}
	rect, err := rtreego.NewRect(origin, []float64{2 * lonRadius, 2 * latRadius})
	if err != nil {
		return false, false
	}
	for _, sp := range idx.tree.SearchIntersect(rect) {
		seg := sp.(*borderSegment)
		// Scale to the cell footprint so "near" means the same fraction
		// of a cell in both axes.
		ax := (seg.ax - lon) / lonRadius
		ay := (seg.ay - lat) / latRadius
		bx := (seg.bx - lon) / lonRadius
		by := (seg.by - lat) / latRadius
		if segmentDistSq(ax, ay, bx, by) <= 1 {
			near = true
			if seg.country == highlight {
				return true, true
			}
		}
	}
	return near, false
}
