package main

import (
	"flag"
	"fmt"
	"math"
	"os"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

func showHelp() {
	fmt.Printf(`which-country - detect your country by IP and render an ASCII map

DESCRIPTION:
    Renders a character map of the area around your location, with your
    country drawn as a solid fill, neighboring borders and short country
    code labels. The location comes from IP geolocation unless a country
    code or coordinates are given.

USAGE:
    which-country [OPTIONS]

OPTIONS:
    -h               Show this help message
    -d <filename>    Enable debug logging to specified file
    -f <filename>    Read settings from a TOML config file
    -W <columns>     Map width in characters (default: 80)
    -H <rows>        Map height in characters (default: 24)
    -c <code>        Country code to display (e.g. US, FR, JP) - skips IP lookup
    -lat <degrees>   Latitude (requires -lon) - derives country from coordinates
    -lon <degrees>   Longitude (requires -lat)
    -ip <address>    Locate the given IP address instead of this host
    -s               Full-screen terminal display, resizes with the window
    -m               Monochrome display for terminals with limited colors

CONFIGURATION:
    The optional config file may set map.width, map.height,
    geoip.database_path (a local MaxMind City database used for -ip
    lookups), geoip.api_url, display.screen and display.monochrome.
    Flags take precedence over the config file.

EXAMPLES:
    which-country                    # Locate this host and map its country
    which-country -c JP              # Map Japan without any network lookup
    which-country -lat 48.8 -lon 2.3 # Map whatever country contains the point
    which-country -ip 8.8.8.8        # Locate an arbitrary address
    which-country -s -d debug.log    # Full-screen display with debug logging

	`)
}

func main() {
	var debugFile = flag.String("d", "", "Debug log filename")
	var showHelpFlag = flag.Bool("h", false, "Show help")
	var configPath = flag.String("f", "", "TOML config file")
	var width = flag.Int("W", 0, "Map width in characters")
	var height = flag.Int("H", 0, "Map height in characters")
	var countryCode = flag.String("c", "", "Country code to display (e.g. US, FR, JP)")
	var latFlag = flag.Float64("lat", math.NaN(), "Latitude (requires -lon)")
	var lonFlag = flag.Float64("lon", math.NaN(), "Longitude (requires -lat)")
	var ipAddr = flag.String("ip", "", "IP address to locate instead of this host")
	var screenMode = flag.Bool("s", false, "Full-screen terminal display")
	var monochrome = flag.Bool("m", false, "Monochrome display (all colors set to white)")

	flag.Parse()

	if *showHelpFlag {
		showHelp()
		os.Exit(0)
	}

	if math.IsNaN(*latFlag) != math.IsNaN(*lonFlag) {
		fmt.Fprintf(os.Stderr, "Error: -lat and -lon must be supplied together\n")
		os.Exit(1)
	}

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot read config file '%s': %v\n", *configPath, err)
		os.Exit(1)
	}

	cols := resolveSize(*width, config.Map.Width, defaultWidth)
	rows := resolveSize(*height, config.Map.Height, defaultHeight)
	if cols <= 0 || rows <= 0 {
		fmt.Fprintf(os.Stderr, "Error: Map size must be positive\n")
		os.Exit(1)
	}

	if *debugFile != "" {
		file, err := openDebugLog(*debugFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: Cannot open debug log file '%s': %v\n", *debugFile, err)
			os.Exit(1)
		}
		defer file.Close()
		debugLog("Debug logging started for which-country")
	}

	world, err := loadWorld()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	debugLog("Dataset: %d countries loaded", len(world.Countries))

	name, code, lat, lon, err := resolveLocation(world, config, *countryCode, *latFlag, *lonFlag, *ipAddr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Only highlight codes the dataset actually carries. A geolocated
	// code outside the dataset still renders, just without a fill.
	highlightCode := ""
	if idx, err := world.FindCode(code); err == nil {
		highlightCode = world.Countries[idx].Code
	} else {
		debugLog("Render: code %s not in dataset, rendering without highlight", code)
	}

	header := fmt.Sprintf("You appear to be in: %s (%s)", name, code)

	if *screenMode || config.Display.Screen {
		display, err := NewDisplay(*monochrome || config.Display.Monochrome)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing display: %v\n", err)
			os.Exit(1)
		}
		err = display.Run(header, formatCoords(lat, lon), func(cols, rows int) (*RenderResult, error) {
			return renderMap(world, lat, lon, highlightCode, cols, rows)
		})
		display.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result, err := renderMap(world, lat, lon, highlightCode, cols, rows)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(header)
	fmt.Println()
	for _, line := range result.Lines {
		fmt.Println(line)
	}
	fmt.Println()
	fmt.Println(formatCoords(result.Lat, result.Lon))
}

// resolveSize picks the first positive value of flag, config, default.
func resolveSize(flagVal, configVal, fallback int) int {
	if flagVal > 0 {
		return flagVal
	}
	if configVal > 0 {
		return configVal
	}
	return fallback
}

// resolveLocation turns the command-line selection into a display name,
// country code and center point. An explicit country code wins over
// coordinates, and coordinates win over any IP lookup.
func resolveLocation(world *World, config *Config, countryCode string, lat, lon float64, ipAddr string) (string, string, float64, float64, error) {
	if countryCode != "" {
		idx, err := world.FindCode(countryCode)
		if err != nil {
			return "", "", 0, 0, err
		}
		c := &world.Countries[idx]
		debugLog("Resolve: code %s -> %s at (%.2f, %.2f)", c.Code, c.Name, c.AnchorLat, c.AnchorLon)
		return c.Name, c.Code, c.AnchorLat, c.AnchorLon, nil
	}

	if !math.IsNaN(lat) {
		lat, lon = clampLat(lat), wrapLon(lon)
		idx, err := world.ResolveCoordinates(lon, lat)
		if err != nil {
			return "", "", 0, 0, fmt.Errorf("%w (ocean?)", err)
		}
		c := &world.Countries[idx]
		debugLog("Resolve: point (%.2f, %.2f) -> %s", lat, lon, c.Code)
		return c.Name, c.Code, lat, lon, nil
	}

	geoip := NewGeoIPManager(config.GeoIP.DatabasePath, config.GeoIP.APIURL)
	var loc LocationInfo
	var err error
	if ipAddr != "" {
		loc, err = geoip.LookupIP(ipAddr)
	} else {
		fmt.Fprint(os.Stderr, "Looking up your location... ")
		loc, err = geoip.LocateSelf()
		if err == nil {
			fmt.Fprintln(os.Stderr, "done.")
		} else {
			fmt.Fprintln(os.Stderr, "error.")
		}
	}
	if err != nil {
		return "", "", 0, 0, err
	}
	debugLog("Resolve: geolocation -> %s (%.2f, %.2f)", loc.CountryCode, loc.Latitude, loc.Longitude)
	return loc.Country, loc.CountryCode, loc.Latitude, loc.Longitude, nil
}

func formatCoords(lat, lon float64) string {
	ns := "N"
	if lat < 0 {
		ns = "S"
	}
	ew := "E"
	if lon < 0 {
		ew = "W"
	}
	return fmt.Sprintf("Coordinates: %.2f°%s, %.2f°%s", math.Abs(lat), ns, math.Abs(lon), ew)
}
