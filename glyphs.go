package main

import (
	"encoding/binary"
	"hash/fnv"
)

const (
	glyphFill    = '#'
	glyphBorder  = '·'
	glyphTexture = '.'
	glyphOcean   = ' '

	// Dither densities: interior cells dot about one in six, coastal
	// ocean cells one in twenty-four.
	ditherDivisor = 6
	coastDivisor  = 24
)

// glyphFor maps a cell's semantic state to its printed character.
// Highlighted fill and the highlighted country's own outline render
// solid; other borders get the lighter midpoint marker.
func glyphFor(c cell, row, col int, code string) rune {
	switch c.state {
	case cellHighlight:
		return glyphFill
	case cellBorder:
		if c.highlightBorder {
			return glyphFill
		}
		return glyphBorder
	case cellInterior:
		if ditherDot(row, col, code) {
			return glyphTexture
		}
		return glyphOcean
	default:
		return glyphOcean
	}
}

// ditherDot decides whether a non-highlighted interior cell shows a dot.
// It hashes the cell position and owning country, so the texture is
// stable across renders of the same viewport.
func ditherDot(row, col int, code string) bool {
	return cellHash(row, col, code)%ditherDivisor == 0
}

// coastDot softens the land/ocean boundary: an ocean cell adjacent to
// land shows a sparse dot now and then.
func coastDot(row, col int) bool {
	return cellHash(row, col, "")%coastDivisor == 0
}

func cellHash(row, col int, code string) uint32 {
	h := fnv.New32a()
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:], uint32(row))
	binary.LittleEndian.PutUint32(buf[4:], uint32(col))
	h.Write(buf[:])
	h.Write([]byte(code))
	return h.Sum32()
}
