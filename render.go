package main

import "errors"

var (
	// ErrCountryNotFound is returned when a highlight code has no entry
	// in the border dataset. There is no fuzzy matching.
	ErrCountryNotFound = errors.New("unknown country code")

	// ErrBadGridSize is returned for non-positive grid dimensions.
	ErrBadGridSize = errors.New("grid dimensions must be positive")

	// ErrNoCountryAtPoint is returned when coordinates resolve to open
	// water even after the near-miss probes.
	ErrNoCountryAtPoint = errors.New("no country at point")
)

// RenderResult is a finished map: one string per grid row, each exactly
// Cols characters wide, plus the clamped coordinates the map was
// requested for. Near a pole the window slides toward the equator, so
// the point may sit off-center.
type RenderResult struct {
	Lines []string
	Lat   float64
	Lon   float64
}

// renderMap draws a cols x rows character map centered on the given
// point. With a non-empty highlightCode that country renders as solid
// fill and drives the zoom level. The call is a pure function of its
// arguments and the immutable dataset, so identical inputs always yield
// identical grids.
func renderMap(w *World, lat, lon float64, highlightCode string, cols, rows int) (*RenderResult, error) {
	highlight := -1
	var highlighted *Country
	if highlightCode != "" {
		idx, err := w.FindCode(highlightCode)
		if err != nil {
			return nil, err
		}
		highlight = idx
		highlighted = &w.Countries[idx]
	}

	lat, lon = clampLat(lat), wrapLon(lon)
	v, err := computeViewport(lat, lon, cols, rows, highlighted)
	if err != nil {
		return nil, err
	}

	grid := rasterize(w, v, highlight)

	chars := make([]rune, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			c := grid.at(row, col)
			code := ""
			if c.country >= 0 {
				code = w.Countries[c.country].Code
			}
			ch := glyphFor(c, row, col, code)
			if c.state == cellOcean && grid.nearLand(row, col) && coastDot(row, col) {
				ch = glyphTexture
			}
			chars[row*cols+col] = ch
		}
	}

	placeLabels(w, grid, chars)

	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		lines[row] = string(chars[row*cols : (row+1)*cols])
	}
	return &RenderResult{Lines: lines, Lat: lat, Lon: lon}, nil
}
