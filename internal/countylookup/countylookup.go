// Package countylookup reads the NWS county boundary shapefile and derives
// county allow-lists for forecast offices.
package countylookup

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jonas-p/go-shp"
)

// CountiesURL is the NWS county warning area shapefile (updated a few times a year)
const CountiesURL = "https://www.weather.gov/source/gis/Shapefiles/County/c_18mr25.zip"

// County is one row of the county shapefile
type County struct {
	Name  string // COUNTYNAME, e.g. "Rabun"
	State string // two-letter state
	CWA   string // forecast office id, e.g. "GSP"
	FIPS  string
	Lat   float64
	Lon   float64
}

// Load reads every county from a .shp file (with its .dbf alongside)
func Load(shapefilePath string) ([]County, error) {
	shape, err := shp.Open(shapefilePath)
	if err != nil {
		return nil, fmt.Errorf("opening shapefile: %w", err)
	}
	defer shape.Close()

	idx := fieldIndex(shape.Fields())
	nameField, ok := idx["COUNTYNAME"]
	if !ok {
		return nil, fmt.Errorf("shapefile %s has no COUNTYNAME field", shapefilePath)
	}
	cwaField, ok := idx["CWA"]
	if !ok {
		return nil, fmt.Errorf("shapefile %s has no CWA field", shapefilePath)
	}

	attr := func(row int, name string) string {
		f, ok := idx[name]
		if !ok {
			return ""
		}
		return cleanAttr(shape.ReadAttribute(row, f))
	}

	var counties []County
	for shape.Next() {
		n, _ := shape.Shape()

		c := County{
			Name:  cleanAttr(shape.ReadAttribute(n, nameField)),
			CWA:   strings.ToUpper(cleanAttr(shape.ReadAttribute(n, cwaField))),
			State: attr(n, "STATE"),
			FIPS:  attr(n, "FIPS"),
		}
		c.Lat, _ = strconv.ParseFloat(attr(n, "LAT"), 64)
		c.Lon, _ = strconv.ParseFloat(attr(n, "LON"), 64)
		if c.Name == "" {
			continue
		}
		counties = append(counties, c)
	}

	return counties, nil
}

// ForOffice returns the sorted, de-duplicated county names a forecast office
// covers. An empty state matches every state.
func ForOffice(counties []County, cwa, state string) []string {
	cwa = strings.ToUpper(strings.TrimSpace(cwa))
	state = strings.ToUpper(strings.TrimSpace(state))

	seen := make(map[string]bool)
	names := make([]string, 0)
	for _, c := range counties {
		if c.CWA != cwa {
			continue
		}
		if state != "" && !strings.EqualFold(c.State, state) {
			continue
		}
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

func fieldIndex(fields []shp.Field) map[string]int {
	idx := make(map[string]int, len(fields))
	for i, f := range fields {
		idx[strings.ToUpper(cleanAttr(f.String()))] = i
	}
	return idx
}

func cleanAttr(s string) string {
	return strings.TrimSpace(strings.Trim(s, "\x00"))
}
