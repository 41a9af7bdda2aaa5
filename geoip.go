package main

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/oschwald/geoip2-golang"
)

const ipAPIBaseURL = "http://ip-api.com/json"

// LocationInfo is a resolved geolocation.
type LocationInfo struct {
	Country     string
	CountryCode string
	Latitude    float64
	Longitude   float64
}

// GeoIPManager resolves IP addresses to locations. With a configured
// MaxMind database path, explicit lookups run offline; everything else
// goes through the ip-api.com web service.
type GeoIPManager struct {
	dbPath     string
	baseURL    string
	httpClient *http.Client
}

// NewGeoIPManager builds a resolver. Both arguments may be empty:
// dbPath enables offline lookups, apiURL overrides the default web
// service endpoint.
func NewGeoIPManager(dbPath, apiURL string) *GeoIPManager {
	if apiURL == "" {
		apiURL = ipAPIBaseURL
	}
	return &GeoIPManager{
		dbPath:  dbPath,
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// LookupIP resolves an explicit IP address, preferring the local
// database when configured.
func (g *GeoIPManager) LookupIP(ipStr string) (LocationInfo, error) {
	if g.dbPath != "" {
		loc, err := g.lookupDatabase(ipStr)
		if err == nil {
			return loc, nil
		}
		debugLog("GeoIP: Database lookup failed for %s: %v", ipStr, err)
	}
	return g.lookupOnline(ipStr)
}

// LocateSelf resolves the host's own public location. This always uses
// the web service: a local database cannot know the caller's public
// address.
func (g *GeoIPManager) LocateSelf() (LocationInfo, error) {
	return g.lookupOnline("")
}

func (g *GeoIPManager) lookupDatabase(ipStr string) (LocationInfo, error) {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return LocationInfo{}, fmt.Errorf("invalid IP address: %s", ipStr)
	}
	db, err := geoip2.Open(g.dbPath)
	if err != nil {
		return LocationInfo{}, err
	}
	defer db.Close()

	rec, err := db.City(ip)
	if err != nil {
		return LocationInfo{}, err
	}
	if rec.Country.IsoCode == "" {
		return LocationInfo{}, fmt.Errorf("no country record for %s", ipStr)
	}
	debugLog("GeoIP: Database hit for %s: %s", ipStr, rec.Country.IsoCode)
	return LocationInfo{
		Country:     rec.Country.Names["en"],
		CountryCode: rec.Country.IsoCode,
		Latitude:    rec.Location.Latitude,
		Longitude:   rec.Location.Longitude,
	}, nil
}

type ipAPIResponse struct {
	Status      string  `json:"status"`
	Message     string  `json:"message"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

func (g *GeoIPManager) lookupOnline(ipStr string) (LocationInfo, error) {
	url := fmt.Sprintf("%s/%s?fields=status,message,countryCode,country,lat,lon", g.baseURL, ipStr)
	debugLog("GeoIP: Fetching %s", url)

	resp, err := g.httpClient.Get(url)
	if err != nil {
		return LocationInfo{}, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return LocationInfo{}, fmt.Errorf("geolocation service: HTTP %d", resp.StatusCode)
	}

	var apiResp ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return LocationInfo{}, fmt.Errorf("geolocation service: %w", err)
	}
	if apiResp.Status != "success" {
		return LocationInfo{}, fmt.Errorf("geolocation service: %s", apiResp.Message)
	}

	debugLog("GeoIP: Resolved %q to %s (%.2f, %.2f)", ipStr, apiResp.CountryCode, apiResp.Lat, apiResp.Lon)
	return LocationInfo{
		Country:     apiResp.Country,
		CountryCode: apiResp.CountryCode,
		Latitude:    apiResp.Lat,
		Longitude:   apiResp.Lon,
	}, nil
}
