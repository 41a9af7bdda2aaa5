package main

import "sync"

// cellState classifies what one grid cell shows.
type cellState uint8

const (
	cellOcean cellState = iota
	cellInterior
	cellBorder
	cellHighlight
)

// cell is the semantic result of sampling one grid position.
type cell struct {
	state   cellState
	country int // dataset index of the containing country, -1 for ocean

	// highlightBorder marks border cells that trace the highlighted
	// country's outline; they render as solid fill.
	highlightBorder bool
}

// stateGrid is the rasterizer output, row-major.
type stateGrid struct {
	cols, rows int
	cells      []cell
}

func newStateGrid(cols, rows int) *stateGrid {
	return &stateGrid{cols: cols, rows: rows, cells: make([]cell, cols*rows)}
}

func (g *stateGrid) at(row, col int) cell     { return g.cells[row*g.cols+col] }
func (g *stateGrid) set(row, col int, c cell) { g.cells[row*g.cols+col] = c }

func (g *stateGrid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// nearLand reports whether any orthogonal neighbor of the cell belongs
// to a country.
func (g *stateGrid) nearLand(row, col int) bool {
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		r, c := row+d[0], col+d[1]
		if g.inBounds(r, c) && g.at(r, c).country >= 0 {
			return true
		}
	}
	return false
}

// Border detection radius as a fraction of one cell's footprint in each
// axis. Edges passing within this ellipse of a cell center mark the cell.
const borderRadiusCells = 0.6

// rasterize samples every cell center of the viewport and classifies it.
// Rows are independent, so they are sampled in parallel; the result is
// deterministic regardless of scheduling.
func rasterize(w *World, v Viewport, highlight int) *stateGrid {
	grid := newStateGrid(v.Cols, v.Rows)
	lonRadius := v.DegPerCol() * borderRadiusCells
	latRadius := v.DegPerRow() * borderRadiusCells

	var wg sync.WaitGroup
	for row := 0; row < v.Rows; row++ {
		wg.Add(1)
		go func(row int) {
			defer wg.Done()
			for col := 0; col < v.Cols; col++ {
				lat, lon := v.CellCenter(row, col)
				grid.set(row, col, classify(w, lon, lat, lonRadius, latRadius, highlight))
			}
		}(row)
	}
	wg.Wait()
	return grid
}

// classify resolves one sample point. Border proximity wins over plain
// containment so outlines stay visible inside the solid fill; the
// highlighted country's own edges are flagged so they can render solid.
func classify(w *World, lon, lat, lonRadius, latRadius float64, highlight int) cell {
	country := w.At(lon, lat)
	near, highlightNear := w.segments.nearBorder(lon, lat, lonRadius, latRadius, highlight)
	switch {
	case near:
		return cell{state: cellBorder, country: country, highlightBorder: highlightNear}
	case highlight >= 0 && country == highlight:
		return cell{state: cellHighlight, country: country}
	case country >= 0:
		return cell{state: cellInterior, country: country}
	default:
		return cell{state: cellOcean, country: -1}
	}
}
