package noaa

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// GridpointValues holds the raw gridpoint layers the dashboard uses
type GridpointValues struct {
	Temperature                Series
	ApparentTemperature        Series
	ProbabilityOfPrecipitation Series
	UpdatedAt                  time.Time
}

// Series is one gridpoint layer: values over consecutive validity intervals.
// Adjacent hours with the same value are coalesced by NWS into one interval
// ("2025-06-01T14:00:00+00:00/PT3H").
type Series struct {
	UnitCode string // e.g. "wmoUnit:degC", "wmoUnit:percent"
	Values   []SeriesValue
}

// SeriesValue is a value valid for [Start, Start+Duration)
type SeriesValue struct {
	Start    time.Time
	Duration time.Duration
	Value    *float64
}

// At returns the value whose interval contains t. ok is false when no interval
// covers t; value may be nil when the interval exists but the feed sent null.
func (s Series) At(t time.Time) (value *float64, ok bool) {
	for _, v := range s.Values {
		if !t.Before(v.Start) && t.Before(v.Start.Add(v.Duration)) {
			return v.Value, true
		}
	}
	return nil, false
}

func (l *gridpointLayer) toSeries() Series {
	if l == nil {
		return Series{}
	}
	s := Series{UnitCode: l.UOM, Values: make([]SeriesValue, 0, len(l.Values))}
	for _, v := range l.Values {
		start, dur, err := parseValidTime(v.ValidTime)
		if err != nil {
			continue
		}
		s.Values = append(s.Values, SeriesValue{Start: start, Duration: dur, Value: v.Value})
	}
	return s
}

// parseValidTime parses an ISO-8601 "start/duration" interval
func parseValidTime(s string) (time.Time, time.Duration, error) {
	startStr, durStr, found := strings.Cut(s, "/")
	if !found {
		return time.Time{}, 0, fmt.Errorf("validTime %q has no duration", s)
	}
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("validTime %q: %w", s, err)
	}
	dur, err := parseISODuration(durStr)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("validTime %q: %w", s, err)
	}
	return start, dur, nil
}

// parseISODuration handles the PnDTnHnMnS subset NWS emits ("PT1H", "P1DT6H").
// Years, months and weeks are not used by the gridpoint feed and are rejected.
func parseISODuration(s string) (time.Duration, error) {
	if !strings.HasPrefix(s, "P") || len(s) < 3 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	var total time.Duration
	inTime := false
	num := ""
	for _, r := range s[1:] {
		switch {
		case r == 'T':
			if inTime || num != "" {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			inTime = true
		case r >= '0' && r <= '9':
			num += string(r)
		default:
			if num == "" {
				return 0, fmt.Errorf("invalid duration %q", s)
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return 0, fmt.Errorf("invalid duration %q: %w", s, err)
			}
			num = ""

			var unit time.Duration
			switch {
			case r == 'D' && !inTime:
				unit = 24 * time.Hour
			case r == 'H' && inTime:
				unit = time.Hour
			case r == 'M' && inTime:
				unit = time.Minute
			case r == 'S' && inTime:
				unit = time.Second
			default:
				return 0, fmt.Errorf("unsupported duration unit %q in %q", r, s)
			}
			total += time.Duration(n) * unit
		}
	}
	if num != "" || total == 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return total, nil
}
