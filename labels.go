package main

import "sort"

// Labels search at most this many rings outward from their anchor before
// giving up. Placement is best effort; a crowded corner drops its label.
const labelSearchRadius = 8

type labelCandidate struct {
	code     string
	count    int
	row, col int
}

// placeLabels overlays each visible country's 2-letter code onto the
// character grid. Bigger on-screen countries place first, so when two
// labels compete for a slot the more prominent one wins the spot nearer
// its centroid. Labels never cover the highlighted fill or each other.
func placeLabels(w *World, grid *stateGrid, chars []rune) {
	type tally struct {
		count  int
		sumRow int
		sumCol int
	}
	counts := make(map[int]*tally)
	for row := 0; row < grid.rows; row++ {
		for col := 0; col < grid.cols; col++ {
			ci := grid.at(row, col).country
			if ci < 0 {
				continue
			}
			t := counts[ci]
			if t == nil {
				t = &tally{}
				counts[ci] = t
			}
			t.count++
			t.sumRow += row
			t.sumCol += col
		}
	}

	cands := make([]labelCandidate, 0, len(counts))
	for ci, t := range counts {
		code := w.Countries[ci].Code
		if !labelable(code) {
			continue
		}
		cands = append(cands, labelCandidate{
			code:  code,
			count: t.count,
			row:   t.sumRow / t.count,
			col:   t.sumCol / t.count,
		})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].code < cands[j].code
	})

	occupied := make([]bool, grid.cols*grid.rows)
	for _, cand := range cands {
		if row, col, ok := findSlot(grid, occupied, cand.row, cand.col); ok {
			idx := row*grid.cols + col
			chars[idx] = rune(cand.code[0])
			chars[idx+1] = rune(cand.code[1])
			occupied[idx] = true
			occupied[idx+1] = true
		}
	}
}

// labelable filters out placeholder codes like "-99" that the dataset
// uses for territories without an assigned ISO code.
func labelable(code string) bool {
	if len(code) != 2 {
		return false
	}
	for i := 0; i < 2; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	return true
}

// findSlot searches square rings of growing radius around the anchor for
// the first 2-wide position that may hold a label. Ring positions are
// visited in scan order, making placement deterministic.
func findSlot(grid *stateGrid, occupied []bool, anchorRow, anchorCol int) (row, col int, ok bool) {
	for r := 0; r <= labelSearchRadius; r++ {
		for dr := -r; dr <= r; dr++ {
			for dc := -r; dc <= r; dc++ {
				if max(abs(dr), abs(dc)) != r {
					continue
				}
				row, col := anchorRow+dr, anchorCol+dc
				if slotFree(grid, occupied, row, col) {
					return row, col, true
				}
			}
		}
	}
	return 0, 0, false
}

// slotFree reports whether a label may occupy (row,col) and the cell to
// its right: both in bounds, neither taken by another label, and neither
// part of the highlighted country's solid rendering.
func slotFree(grid *stateGrid, occupied []bool, row, col int) bool {
	if !grid.inBounds(row, col) || !grid.inBounds(row, col+1) {
		return false
	}
	for _, c := range []int{col, col + 1} {
		if occupied[row*grid.cols+c] {
			return false
		}
		cell := grid.at(row, c)
		if cell.state == cellHighlight {
			return false
		}
		if cell.state == cellBorder && cell.highlightBorder {
			return false
		}
	}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
