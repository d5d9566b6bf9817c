package geo

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	olc "github.com/google/open-location-code/go"
)

const maxPriceLevel = 4

// FormatDistance renders a distance for display: whole meters below one
// kilometer ("450m"), one decimal place otherwise ("2.3km").
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%dm", int(math.Round(km*1000)))
	}
	return fmt.Sprintf("%.1fkm", km)
}

// FormatPriceLevel renders a price level as repeated "$" signs.
func FormatPriceLevel(level int) string {
	if level < 0 {
		level = 0
	}
	if level > maxPriceLevel {
		level = maxPriceLevel
	}
	return strings.Repeat("$", level)
}

// DirectionsURL builds a Google Maps directions link to the given point.
func DirectionsURL(lat, lon float64) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", fmt.Sprintf("%g,%g", lat, lon))
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

// PlusCode returns the 10 digit Open Location Code for a point.
func PlusCode(lat, lon float64) string {
	return olc.Encode(lat, lon, 10)
}
