package main

import (
	"errors"
	"testing"
)

// TestRenderMapGermany is the end-to-end scenario: Germany highlighted
// in a centered 80x24 viewport.
func TestRenderMapGermany(t *testing.T) {
	w := mustWorld(t)
	result, err := renderMap(w, 51.15, 10.55, "DE", 80, 24)
	if err != nil {
		t.Fatalf("renderMap: %v", err)
	}
	if len(result.Lines) != 24 {
		t.Fatalf("got %d lines, want 24", len(result.Lines))
	}
	for i, line := range result.Lines {
		if n := len([]rune(line)); n != 80 {
			t.Errorf("line %d is %d characters, want 80", i, n)
		}
	}
	if result.Lat != 51.15 || result.Lon != 10.55 {
		t.Errorf("resolved center = (%g, %g), want (51.15, 10.55)", result.Lat, result.Lon)
	}
}

func TestRenderMapDeterministic(t *testing.T) {
	w := mustWorld(t)
	a, err := renderMap(w, 51.15, 10.55, "DE", 80, 24)
	if err != nil {
		t.Fatalf("renderMap: %v", err)
	}
	b, err := renderMap(w, 51.15, 10.55, "DE", 80, 24)
	if err != nil {
		t.Fatalf("renderMap: %v", err)
	}
	for i := range a.Lines {
		if a.Lines[i] != b.Lines[i] {
			t.Fatalf("line %d differs between identical renders:\n%s\n%s", i, a.Lines[i], b.Lines[i])
		}
	}
}

// TestRenderMapUnknownCode requires a NotFound condition and no grid.
func TestRenderMapUnknownCode(t *testing.T) {
	w := mustWorld(t)
	result, err := renderMap(w, 0, 0, "ZZ", 80, 24)
	if !errors.Is(err, ErrCountryNotFound) {
		t.Fatalf("error = %v, want ErrCountryNotFound", err)
	}
	if result != nil {
		t.Error("got a grid alongside the error")
	}
}

func TestRenderMapBadSize(t *testing.T) {
	w := mustWorld(t)
	if _, err := renderMap(w, 0, 0, "", 0, 24); !errors.Is(err, ErrBadGridSize) {
		t.Errorf("error = %v, want ErrBadGridSize", err)
	}
}

// TestRenderMapSingleCell must not crash and returns one character.
func TestRenderMapSingleCell(t *testing.T) {
	w := mustWorld(t)
	result, err := renderMap(w, 0, 0, "", 1, 1)
	if err != nil {
		t.Fatalf("renderMap: %v", err)
	}
	if len(result.Lines) != 1 || len([]rune(result.Lines[0])) != 1 {
		t.Fatalf("got %v, want a single-character grid", result.Lines)
	}
}

// TestRenderMapClampsCoordinates checks out-of-range centers are pulled
// into the valid range instead of failing.
func TestRenderMapClampsCoordinates(t *testing.T) {
	w := mustWorld(t)
	result, err := renderMap(w, 95, 200, "", 20, 10)
	if err != nil {
		t.Fatalf("renderMap: %v", err)
	}
	if result.Lat != 90 {
		t.Errorf("clamped lat = %g, want 90", result.Lat)
	}
	if result.Lon != -160 {
		t.Errorf("wrapped lon = %g, want -160", result.Lon)
	}
}

func TestDitherStable(t *testing.T) {
	for row := 0; row < 30; row++ {
		for col := 0; col < 30; col++ {
			if ditherDot(row, col, "FR") != ditherDot(row, col, "FR") {
				t.Fatalf("dither at (%d, %d) is not stable", row, col)
			}
		}
	}
}
