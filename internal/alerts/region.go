package alerts

import (
	"strings"

	"github.com/ngmaloney/wx-dashboard/internal/config"
)

// Region decides whether an alert concerns the monitored area
type Region struct {
	offices []office
}

type office struct {
	sender   string
	counties map[string]bool // nil means the whole office
}

// NewRegion builds a Region from the configured offices
func NewRegion(offices []config.Office) *Region {
	r := &Region{offices: make([]office, 0, len(offices))}
	for _, o := range offices {
		sender := strings.ToLower(strings.TrimSpace(o.SenderName))
		if sender == "" {
			continue
		}
		entry := office{sender: sender}
		if len(o.Counties) > 0 {
			entry.counties = make(map[string]bool, len(o.Counties))
			for _, c := range o.Counties {
				entry.counties[normalizeCounty(c)] = true
			}
		}
		r.offices = append(r.offices, entry)
	}
	return r
}

// Contains reports whether an alert from senderName covering areaDesc is in region
func (r *Region) Contains(senderName, areaDesc string) bool {
	sender := strings.ToLower(senderName)
	if sender == "" {
		return false
	}

	var tokens []string
	for _, o := range r.offices {
		if !strings.Contains(sender, o.sender) {
			continue
		}
		if o.counties == nil {
			return true
		}
		if tokens == nil {
			tokens = AreaTokens(areaDesc)
		}
		for _, tok := range tokens {
			if o.counties[normalizeCounty(tok)] {
				return true
			}
		}
	}
	return false
}

// AreaTokens splits a free-text areaDesc into county names, dropping state codes.
// "Fulton, GA; DeKalb, GA" yields ["Fulton", "DeKalb"].
func AreaTokens(areaDesc string) []string {
	tokens := make([]string, 0)
	for _, part := range strings.Split(areaDesc, ";") {
		for _, tok := range strings.Split(part, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" || isStateCode(tok) {
				continue
			}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// CountyList formats areaDesc for display, or "Unknown" when it has no counties
func CountyList(areaDesc string) string {
	tokens := AreaTokens(areaDesc)
	if len(tokens) == 0 {
		return "Unknown"
	}
	return strings.Join(tokens, ", ")
}

func normalizeCounty(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, " county")
	return strings.TrimSpace(name)
}

func isStateCode(tok string) bool {
	if len(tok) != 2 {
		return false
	}
	for _, r := range tok {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
