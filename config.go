package main

import "github.com/BurntSushi/toml"

// Config holds optional settings from a TOML file. Command-line flags
// take precedence over anything set here.
type Config struct {
	Map struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"map"`

	GeoIP struct {
		// Path to a local MaxMind City database for offline lookups of
		// explicit IP addresses.
		DatabasePath string `toml:"database_path"`
		// Alternative geolocation endpoint speaking the ip-api.com
		// JSON contract.
		APIURL string `toml:"api_url"`
	} `toml:"geoip"`

	Display struct {
		// Full-screen terminal display instead of plain stdout.
		Screen bool `toml:"screen"`
		// All map colors set to white.
		Monochrome bool `toml:"monochrome"`
	} `toml:"display"`
}

func LoadConfig(path string) (*Config, error) {
	var config Config

	if path == "" {
		return &config, nil
	}

	_, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, err
	}

	return &config, nil
}
