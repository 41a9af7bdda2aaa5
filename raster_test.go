package main

import (
	"reflect"
	"testing"
)

func mustWorld(t *testing.T) *World {
	t.Helper()
	w, err := loadWorld()
	if err != nil {
		t.Fatalf("loadWorld: %v", err)
	}
	return w
}

func mustCode(t *testing.T, w *World, code string) int {
	t.Helper()
	idx, err := w.FindCode(code)
	if err != nil {
		t.Fatalf("FindCode(%s): %v", code, err)
	}
	return idx
}

// TestRasterizeCenteredHighlight renders Germany in its own centered
// viewport and checks the cells nearest the geographic center carry the
// highlight (or its outline).
func TestRasterizeCenteredHighlight(t *testing.T) {
	w := mustWorld(t)
	de := mustCode(t, w, "DE")
	v, err := computeViewport(51.15, 10.55, 80, 24, &w.Countries[de])
	if err != nil {
		t.Fatalf("computeViewport: %v", err)
	}
	grid := rasterize(w, v, de)

	row, col := v.Cell(51.15, 10.55)
	c := grid.at(row, col)
	if c.state != cellHighlight && c.state != cellBorder {
		t.Errorf("center cell state = %d, want highlight or border", c.state)
	}
	if c.country != de {
		t.Errorf("center cell country = %d, want %d (DE)", c.country, de)
	}
}

// TestRasterizeDeterministic checks that the row-parallel sampling
// produces identical grids on repeated runs.
func TestRasterizeDeterministic(t *testing.T) {
	w := mustWorld(t)
	de := mustCode(t, w, "DE")
	v, err := computeViewport(51.15, 10.55, 80, 24, &w.Countries[de])
	if err != nil {
		t.Fatalf("computeViewport: %v", err)
	}
	a := rasterize(w, v, de)
	b := rasterize(w, v, de)
	if !reflect.DeepEqual(a, b) {
		t.Error("two rasterizations of the same viewport differ")
	}
}

// TestRasterizeDatelineContinuity samples a viewport straddling the
// antimeridian over Chukotka and requires unbroken land across the
// seam.
func TestRasterizeDatelineContinuity(t *testing.T) {
	w := mustWorld(t)
	ru := mustCode(t, w, "RU")
	v, err := computeViewport(66, 179, 40, 12, nil)
	if err != nil {
		t.Fatalf("computeViewport: %v", err)
	}
	// Sanity: the window must actually cross the dateline.
	if v.CenterLon+v.HalfWidth <= 180 {
		t.Fatalf("viewport [%g, %g] does not cross the dateline", v.CenterLon-v.HalfWidth, v.CenterLon+v.HalfWidth)
	}
	grid := rasterize(w, v, -1)
	for _, row := range []int{5, 6} {
		for col := 0; col < v.Cols; col++ {
			c := grid.at(row, col)
			if c.country != ru {
				lat, lon := v.CellCenter(row, col)
				t.Errorf("cell (%d, %d) at (%g, %g): country = %d, want RU", row, col, lat, lon, c.country)
			}
		}
	}
}

// TestRasterizeSingleCell is the degenerate 1x1 grid.
func TestRasterizeSingleCell(t *testing.T) {
	w := mustWorld(t)
	v, err := computeViewport(0, 0, 1, 1, nil)
	if err != nil {
		t.Fatalf("computeViewport: %v", err)
	}
	grid := rasterize(w, v, -1)
	if got := grid.at(0, 0); got.state != cellOcean {
		t.Errorf("mid-Atlantic cell state = %d, want ocean", got.state)
	}
}

// TestRasterizeBorderNeighbors checks that a border between two visible
// countries produces border cells somewhere in the grid.
func TestRasterizeBorderNeighbors(t *testing.T) {
	w := mustWorld(t)
	de := mustCode(t, w, "DE")
	v, err := computeViewport(51.15, 10.55, 80, 24, &w.Countries[de])
	if err != nil {
		t.Fatalf("computeViewport: %v", err)
	}
	grid := rasterize(w, v, de)

	var borders, highlightBorders int
	for row := 0; row < v.Rows; row++ {
		for col := 0; col < v.Cols; col++ {
			c := grid.at(row, col)
			if c.state == cellBorder {
				borders++
				if c.highlightBorder {
					highlightBorders++
				}
			}
		}
	}
	if borders == 0 {
		t.Error("no border cells in a viewport full of countries")
	}
	if highlightBorders == 0 {
		t.Error("no highlight outline cells around the highlighted country")
	}
}
