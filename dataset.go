package main

import (
	_ "embed"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Simplified world borders, decoded once at startup. Countries keep their
// Natural Earth style ISO_A2 and NAME properties.
//
//go:embed data/countries.geojson
var worldGeoJSON []byte

// Country is one record of the border dataset. Values are read-only after
// loading and safe to share across goroutines.
type Country struct {
	Code     string
	Name     string
	Polygons orb.MultiPolygon
	Bounds   orb.Bound

	// Anchor is the most interior point of the country's largest ring,
	// used as the map center when a country is selected by code.
	AnchorLon float64
	AnchorLat float64
}

// World bundles the immutable dataset with its derived segment index.
type World struct {
	Countries []Country
	segments  *segmentIndex
}

var (
	worldOnce   sync.Once
	worldShared *World
	worldErr    error
)

// loadWorld decodes the embedded dataset exactly once for the process.
// A decode failure here is fatal to every caller: nothing can be
// rendered without borders.
func loadWorld() (*World, error) {
	worldOnce.Do(func() {
		countries, err := decodeCountries(worldGeoJSON)
		if err != nil {
			worldErr = err
			return
		}
		worldShared = newWorld(countries)
	})
	return worldShared, worldErr
}

// newWorld wraps a country list and builds its segment index.
func newWorld(countries []Country) *World {
	return &World{Countries: countries, segments: buildSegmentIndex(countries)}
}

func decodeCountries(raw []byte) ([]Country, error) {
	fc, err := geojson.UnmarshalFeatureCollection(raw)
	if err != nil {
		return nil, fmt.Errorf("border dataset: %w", err)
	}
	countries := make([]Country, 0, len(fc.Features))
	for _, f := range fc.Features {
		var mp orb.MultiPolygon
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			mp = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			mp = g
		default:
			continue
		}
		code, _ := f.Properties["ISO_A2"].(string)
		name, _ := f.Properties["NAME"].(string)
		mp = unwrapMultiPolygon(mp)
		c := Country{Code: code, Name: name, Polygons: mp, Bounds: mp.Bound()}
		c.AnchorLon, c.AnchorLat = countryAnchor(mp)
		countries = append(countries, c)
	}
	if len(countries) == 0 {
		return nil, fmt.Errorf("border dataset: no usable features")
	}
	return countries, nil
}

// unwrapMultiPolygon rewrites every ring with continuous longitudes, so
// later geometry runs on plain planar coordinates.
func unwrapMultiPolygon(mp orb.MultiPolygon) orb.MultiPolygon {
	out := make(orb.MultiPolygon, len(mp))
	for i, poly := range mp {
		rings := make(orb.Polygon, len(poly))
		for j, ring := range poly {
			rings[j] = unwrapRing(ring)
		}
		out[i] = rings
	}
	return out
}

// countryAnchor picks the most interior point of the largest outer ring,
// so multi-part countries anchor on their mainland rather than a
// mid-ocean bounding box center.
func countryAnchor(mp orb.MultiPolygon) (lon, lat float64) {
	var best orb.Ring
	bestArea := 0.0
	for _, poly := range mp {
		if len(poly) == 0 || len(poly[0]) < 3 {
			continue
		}
		if a := math.Abs(ringSignedArea(poly[0])); a > bestArea {
			bestArea = a
			best = poly[0]
		}
	}
	if best == nil {
		return 0, 0
	}
	lon, lat = ringInteriorPoint(best)
	return wrapLon(lon), lat
}

// FindCode returns the dataset index for a 2-letter country code.
// Matching is case-insensitive; there is no fuzzy matching.
func (w *World) FindCode(code string) (int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range w.Countries {
		if w.Countries[i].Code == code {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrCountryNotFound, code)
}

// pointInCountry tests all polygons of one country. The point is also
// tried a full revolution to either side, so wrapped longitudes still
// hit rings that unwrapped past the antimeridian. A cheap bounding box
// rejection guards the polygon tests.
func pointInCountry(lon, lat float64, c *Country) bool {
	for _, shift := range [3]float64{0, -360, 360} {
		x := lon + shift
		if !boundContains(c.Bounds, x, lat) {
			continue
		}
		for _, poly := range c.Polygons {
			if pointInPolygon(x, lat, poly) {
				return true
			}
		}
	}
	return false
}

func boundContains(b orb.Bound, lon, lat float64) bool {
	return lon >= b.Min[0]-onBoundaryEps && lon <= b.Max[0]+onBoundaryEps &&
		lat >= b.Min[1]-onBoundaryEps && lat <= b.Max[1]+onBoundaryEps
}

// At returns the index of the first country in dataset order containing
// the point, or -1 for open water. Overlapping claims (disputed areas in
// the source data) resolve to whichever feature appears first in the
// bundled file — a fixed, documented tie-break.
func (w *World) At(lon, lat float64) int {
	for i := range w.Countries {
		if pointInCountry(lon, lat, &w.Countries[i]) {
			return i
		}
	}
	return -1
}

// ResolveCoordinates returns the country containing (or nearly
// containing) the point, or ErrNoCountryAtPoint for open water.
func (w *World) ResolveCoordinates(lon, lat float64) (int, error) {
	if idx := w.NearestAt(lon, lat); idx >= 0 {
		return idx, nil
	}
	return -1, fmt.Errorf("%w: %g, %g", ErrNoCountryAtPoint, lat, lon)
}

// NearestAt retries At with a small expanding ring of probe offsets, up
// to one degree out. Resolved coordinates often sit just outside a
// simplified coastline; this forgives the near miss.
func (w *World) NearestAt(lon, lat float64) int {
	if idx := w.At(lon, lat); idx >= 0 {
		return idx
	}
	for _, off := range []float64{0.25, 0.5, 1.0} {
		for _, d := range [][2]float64{
			{off, 0}, {-off, 0}, {0, off}, {0, -off},
			{off, off}, {off, -off}, {-off, off}, {-off, -off},
		} {
			if idx := w.At(wrapLon(lon+d[0]), clampLat(lat+d[1])); idx >= 0 {
				return idx
			}
		}
	}
	return -1
}
