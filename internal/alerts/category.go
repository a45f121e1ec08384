package alerts

import "strings"

// Category is a non-exclusive summary bucket. One alert may land in several.
type Category string

const (
	CategoryTornado          Category = "tornado"
	CategorySevereWarn       Category = "severeWarn"
	CategorySevere           Category = "severe"
	CategoryFlood            Category = "flood"
	CategoryHeat             Category = "heat"
	CategoryHeatAdvisory     Category = "heatAdvisory"
	CategoryCold             Category = "cold"
	CategoryAirQuality       Category = "airQuality"
	CategorySpecialStatement Category = "specialStatement"
)

// categoryRule matches when the event contains every keyword in all and at
// least one keyword in any (an empty any always matches).
type categoryRule struct {
	category Category
	all      []string
	any      []string
}

var categoryRules = []categoryRule{
	{category: CategoryTornado, all: []string{"tornado"}},
	{category: CategorySevereWarn, all: []string{"severe", "warning"}},
	{category: CategorySevere, all: []string{"severe"}},
	{category: CategoryFlood, all: []string{"flood"}},
	{category: CategoryHeat, all: []string{"heat"}},
	{category: CategoryHeatAdvisory, all: []string{"heat", "advisory"}},
	{category: CategoryCold, any: []string{"cold", "blizzard", "freeze"}},
	{category: CategoryAirQuality, all: []string{"air quality"}},
	{category: CategorySpecialStatement, all: []string{"special weather statement"}},
}

// Categories lists every category in table order
func Categories() []Category {
	out := make([]Category, len(categoryRules))
	for i, r := range categoryRules {
		out[i] = r.category
	}
	return out
}

// Categorize returns every category whose keywords appear in event.
func Categorize(event string) []Category {
	lower := strings.ToLower(event)
	if lower == "" {
		return nil
	}

	var out []Category
	for _, r := range categoryRules {
		if r.matches(lower) {
			out = append(out, r.category)
		}
	}
	return out
}

func (r categoryRule) matches(lower string) bool {
	for _, kw := range r.all {
		if !strings.Contains(lower, kw) {
			return false
		}
	}
	if len(r.any) == 0 {
		return true
	}
	for _, kw := range r.any {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CategoryCounts maps each category to the number of alerts in it
type CategoryCounts map[Category]int

// Count tallies categories across filtered alerts. Every known category is
// present in the result, zero or not.
func Count(filtered []FilteredAlert) CategoryCounts {
	counts := make(CategoryCounts, len(categoryRules))
	for _, c := range Categories() {
		counts[c] = 0
	}
	for _, a := range filtered {
		for _, c := range a.Categories {
			counts[c]++
		}
	}
	return counts
}

// StyleTag is the single visual treatment for an alert card
type StyleTag string

const (
	StyleTornado          StyleTag = "tornado"
	StyleSevere           StyleTag = "severe"
	StyleWatch            StyleTag = "watch"
	StyleFlood            StyleTag = "flood"
	StyleHeat             StyleTag = "heat"
	StyleAirQuality       StyleTag = "air-quality"
	StyleSpecialStatement StyleTag = "special-statement"
	StyleDefault          StyleTag = "default"
)

// styleRules are evaluated in order; first match wins.
var styleRules = []struct {
	keyword string
	tag     StyleTag
}{
	{"tornado", StyleTornado},
	{"severe", StyleSevere},
	{"watch", StyleWatch},
	{"flood", StyleFlood},
	{"heat", StyleHeat},
	{"air quality", StyleAirQuality},
	{"special weather statement", StyleSpecialStatement},
}

// Style picks the style tag for an event by first-match precedence
func Style(event string) StyleTag {
	lower := strings.ToLower(event)
	for _, r := range styleRules {
		if strings.Contains(lower, r.keyword) {
			return r.tag
		}
	}
	return StyleDefault
}
