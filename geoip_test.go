package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testGeoIPManager(server *httptest.Server) *GeoIPManager {
	return NewGeoIPManager("", server.URL)
}

func TestLookupIPOnline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/8.8.8.8" {
			t.Errorf("request path = %s, want /8.8.8.8", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"success","country":"United States","countryCode":"US","lat":37.751,"lon":-97.822}`)
	}))
	defer server.Close()

	loc, err := testGeoIPManager(server).LookupIP("8.8.8.8")
	if err != nil {
		t.Fatalf("LookupIP: %v", err)
	}
	if loc.CountryCode != "US" || loc.Country != "United States" {
		t.Errorf("got %+v, want US / United States", loc)
	}
	if loc.Latitude != 37.751 || loc.Longitude != -97.822 {
		t.Errorf("got coordinates (%g, %g)", loc.Latitude, loc.Longitude)
	}
}

// TestLocateSelf hits the service without an address path component.
func TestLocateSelf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			t.Errorf("request path = %s, want /", r.URL.Path)
		}
		fmt.Fprint(w, `{"status":"success","country":"Germany","countryCode":"DE","lat":51.15,"lon":10.55}`)
	}))
	defer server.Close()

	loc, err := testGeoIPManager(server).LocateSelf()
	if err != nil {
		t.Fatalf("LocateSelf: %v", err)
	}
	if loc.CountryCode != "DE" {
		t.Errorf("CountryCode = %s, want DE", loc.CountryCode)
	}
}

// TestLookupIPFailStatus surfaces the service's own failure message.
func TestLookupIPFailStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"fail","message":"private range"}`)
	}))
	defer server.Close()

	_, err := testGeoIPManager(server).LookupIP("10.0.0.1")
	if err == nil || !strings.Contains(err.Error(), "private range") {
		t.Errorf("error = %v, want the service message", err)
	}
}

func TestLookupIPHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	if _, err := testGeoIPManager(server).LookupIP("8.8.8.8"); err == nil {
		t.Error("expected an error for HTTP 503")
	}
}

// TestLookupDatabaseBadPath falls through to the web service when the
// database cannot be opened.
func TestLookupDatabaseBadPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","country":"Japan","countryCode":"JP","lat":35.6,"lon":139.7}`)
	}))
	defer server.Close()

	g := NewGeoIPManager("/nonexistent/GeoLite2-City.mmdb", server.URL)
	loc, err := g.LookupIP("203.0.113.5")
	if err != nil {
		t.Fatalf("LookupIP: %v", err)
	}
	if loc.CountryCode != "JP" {
		t.Errorf("CountryCode = %s, want JP from the fallback service", loc.CountryCode)
	}
}
