package main

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// Tolerance for "exactly on the boundary" checks, in degrees. Points this
// close to a ring edge count as inside the ring's polygon.
const onBoundaryEps = 1e-9

// wrapLon folds a longitude into the [-180, 180] range. In-range values
// pass through untouched so they keep their exact representation.
func wrapLon(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}

// clampLat pins a latitude into the [-90, 90] range.
func clampLat(lat float64) float64 {
	if lat < -90 {
		return -90
	}
	if lat > 90 {
		return 90
	}
	return lat
}

// lonDelta returns the signed shortest longitude difference a-b.
// Longitude is treated as circular, so two values on opposite sides of
// the antimeridian come out adjacent instead of a world apart.
func lonDelta(a, b float64) float64 {
	d := math.Mod(a-b+540, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

// unwrapRing rewrites a ring with continuous longitudes: each vertex
// sits within half a revolution of its predecessor, so a ring written
// across the antimeridian becomes one contiguous shape. Unwrapped
// longitudes may leave [-180, 180]; containment tests compensate by
// probing points shifted by full revolutions.
func unwrapRing(ring orb.Ring) orb.Ring {
	if len(ring) == 0 {
		return ring
	}
	out := make(orb.Ring, len(ring))
	out[0] = ring[0]
	prev := ring[0][0]
	for i := 1; i < len(ring); i++ {
		// Shift by whole revolutions only, so in-range vertices keep
		// their exact coordinates and closed rings stay closed.
		lon := ring[i][0] + 360*math.Round((prev-ring[i][0])/360)
		out[i] = orb.Point{lon, ring[i][1]}
		prev = lon
	}
	return out
}

// pointInRing is a planar ray-casting test with the ray cast eastward
// from the point. Rings must be unwrapped; the caller shifts the point
// into the ring's longitude range.
func pointInRing(lon, lat float64, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		yi, yj := ring[i][1], ring[j][1]
		if (yi > lat) != (yj > lat) {
			xi := ring[i][0] - lon
			xj := ring[j][0] - lon
			if 0 < (xj-xi)*(lat-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// pointOnRing reports whether the point lies within eps degrees of any
// edge of the ring.
func pointOnRing(lon, lat float64, ring orb.Ring, eps float64) bool {
	n := len(ring)
	if n < 2 {
		return false
	}
	j := n - 1
	for i := 0; i < n; i++ {
		ax := ring[j][0] - lon
		ay := ring[j][1] - lat
		bx := ring[i][0] - lon
		by := ring[i][1] - lat
		if segmentDistSq(ax, ay, bx, by) <= eps*eps {
			return true
		}
		j = i
	}
	return false
}

// segmentDistSq returns the squared distance from the origin to the
// segment (ax,ay)-(bx,by).
func segmentDistSq(ax, ay, bx, by float64) float64 {
	dx, dy := bx-ax, by-ay
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return ax*ax + ay*ay
	}
	t := -(ax*dx + ay*dy) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	px, py := ax+t*dx, ay+t*dy
	return px*px + py*py
}

// pointInPolygon tests the outer ring minus holes. A point exactly on any
// ring edge counts as inside, which keeps sample points that land on a
// shared border classified consistently.
func pointInPolygon(lon, lat float64, poly orb.Polygon) bool {
	if len(poly) == 0 {
		return false
	}
	if !pointInRing(lon, lat, poly[0]) && !pointOnRing(lon, lat, poly[0], onBoundaryEps) {
		return false
	}
	for _, hole := range poly[1:] {
		if pointInRing(lon, lat, hole) && !pointOnRing(lon, lat, hole, onBoundaryEps) {
			return false
		}
	}
	return true
}

// ringSignedArea returns the signed planar area of a ring (positive for
// counter-clockwise winding). Only relative magnitudes matter here; it is
// used to find a country's largest ring.
func ringSignedArea(ring orb.Ring) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	area := 0.0
	j := n - 1
	for i := 0; i < n; i++ {
		area += (ring[j][0] - ring[i][0]) * (ring[j][1] + ring[i][1])
		j = i
	}
	return area / 2
}

// horizontalSpans returns sorted (enter, exit) longitude pairs where the
// given latitude line runs inside the ring.
func horizontalSpans(lat float64, ring orb.Ring) [][2]float64 {
	n := len(ring)
	if n < 3 {
		return nil
	}
	var crossings []float64
	j := n - 1
	for i := 0; i < n; i++ {
		yi, yj := ring[i][1], ring[j][1]
		if (yi > lat) != (yj > lat) {
			xi, xj := ring[i][0], ring[j][0]
			crossings = append(crossings, (xj-xi)*(lat-yi)/(yj-yi)+xi)
		}
		j = i
	}
	sort.Float64s(crossings)
	spans := make([][2]float64, 0, len(crossings)/2)
	for i := 0; i+1 < len(crossings); i += 2 {
		spans = append(spans, [2]float64{crossings[i], crossings[i+1]})
	}
	return spans
}

// verticalSpans returns sorted (enter, exit) latitude pairs where the
// given longitude line runs inside the ring.
func verticalSpans(lon float64, ring orb.Ring) [][2]float64 {
	n := len(ring)
	if n < 3 {
		return nil
	}
	var crossings []float64
	j := n - 1
	for i := 0; i < n; i++ {
		xi, xj := ring[i][0], ring[j][0]
		if (xi > lon) != (xj > lon) {
			yi, yj := ring[i][1], ring[j][1]
			crossings = append(crossings, (yj-yi)*(lon-xi)/(xj-xi)+yi)
		}
		j = i
	}
	sort.Float64s(crossings)
	spans := make([][2]float64, 0, len(crossings)/2)
	for i := 0; i+1 < len(crossings); i += 2 {
		spans = append(spans, [2]float64{crossings[i], crossings[i+1]})
	}
	return spans
}

// ringInteriorPoint scans a grid of candidate latitudes across the ring
// and picks the span midpoint with the most clearance in both axes — a
// cheap "most interior point", good enough to anchor a short label.
func ringInteriorPoint(ring orb.Ring) (lon, lat float64) {
	minLon, maxLon := math.MaxFloat64, -math.MaxFloat64
	minLat, maxLat := math.MaxFloat64, -math.MaxFloat64
	for _, p := range ring {
		minLon = math.Min(minLon, p[0])
		maxLon = math.Max(maxLon, p[0])
		minLat = math.Min(minLat, p[1])
		maxLat = math.Max(maxLat, p[1])
	}

	const steps = 24
	bestLon, bestLat := (minLon+maxLon)/2, (minLat+maxLat)/2
	bestScore := 0.0

	for row := 1; row < steps; row++ {
		candLat := minLat + (maxLat-minLat)*float64(row)/steps
		for _, h := range horizontalSpans(candLat, ring) {
			midLon := (h[0] + h[1]) / 2
			halfW := (h[1] - h[0]) / 2
			for _, v := range verticalSpans(midLon, ring) {
				if candLat < v[0] || candLat > v[1] {
					continue
				}
				halfH := math.Min(candLat-v[0], v[1]-candLat)
				score := math.Min(halfW, halfH)
				if score > bestScore {
					bestScore = score
					bestLon, bestLat = midLon, candLat
				}
				break
			}
		}
	}
	return bestLon, bestLat
}
