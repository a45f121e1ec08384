package ui

import (
	"fmt"
	"strings"
)

// mapProduct is one entry of the map selector
type mapProduct struct {
	name string
	url  string
}

// spcLegend explains the SPC convective outlook colors
var spcLegend = []struct {
	color string
	risk  string
}{
	{"Light Green", "General T-Storm"},
	{"Dark Green", "Marginal"},
	{"Yellow", "Slight"},
	{"Orange", "Enhanced"},
	{"Red", "Moderate"},
	{"Magenta", "High"},
}

const spcProduct = "SPC Outlook"

// mapProducts returns the selector entries for a radar station, e.g. "KFFC".
// The warnings map is keyed by the station's office id. A social feed entry is
// appended when socialURL is set.
func mapProducts(radarStation, socialURL string) []mapProduct {
	station := strings.ToUpper(radarStation)
	office := strings.ToLower(strings.TrimPrefix(station, "K"))
	products := []mapProduct{
		{"Current Radar", fmt.Sprintf("https://radar.weather.gov/ridge/standard/%s_0.gif", station)},
		{"Active Alerts Map", fmt.Sprintf("https://www.weather.gov/images/%s/big/GA_WWA.png", office)},
		{spcProduct, "https://www.spc.noaa.gov/products/activity_loop.gif"},
	}
	if socialURL != "" {
		products = append(products, mapProduct{"Social", socialURL})
	}
	return products
}
