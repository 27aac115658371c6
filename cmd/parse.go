package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/s0up4200/flightradar/flightradar"
)

// parseBounds parses "north,south,west,east"
func parseBounds(s string) (*flightradar.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounds must be north,south,west,east: %q", s)
	}
	var vals [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid bounds coordinate %q: %w", part, err)
		}
		vals[i] = v
	}
	return &flightradar.Bounds{North: vals[0], South: vals[1], West: vals[2], East: vals[3]}, nil
}

// parseAirports parses codes optionally prefixed with a direction, e.g. "inbound:LHR"
func parseAirports(values []string) ([]flightradar.AirportWithDirection, error) {
	airports := make([]flightradar.AirportWithDirection, 0, len(values))
	for _, v := range values {
		dir, code, found := strings.Cut(v, ":")
		if !found {
			airports = append(airports, flightradar.AirportCode(v))
			continue
		}
		d := flightradar.Direction(strings.ToLower(dir))
		switch d {
		case flightradar.DirectionBoth, flightradar.DirectionInbound, flightradar.DirectionOutbound:
		default:
			return nil, fmt.Errorf("unknown airport direction %q", dir)
		}
		airports = append(airports, flightradar.AirportWithDirection{Airport: code, Direction: d})
	}
	return airports, nil
}

// parseRoutes parses "ORIGIN-DESTINATION" pairs
func parseRoutes(values []string) ([]flightradar.Route, error) {
	routes := make([]flightradar.Route, 0, len(values))
	for _, v := range values {
		origin, dest, found := strings.Cut(v, "-")
		if !found || origin == "" || dest == "" {
			return nil, fmt.Errorf("route must be ORIGIN-DESTINATION: %q", v)
		}
		routes = append(routes, flightradar.Route{Origin: origin, Destination: dest})
	}
	return routes, nil
}

// parseRange parses "N" or "LOW-HIGH"
func parseRange(s string) (flightradar.Range, error) {
	parts := strings.SplitN(s, "-", 2)
	values := make([]int, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return flightradar.Range{}, fmt.Errorf("invalid range %q: %w", s, err)
		}
		values = append(values, v)
	}
	return flightradar.NewRange(values...)
}

func parseRanges(values []string) ([]flightradar.Range, error) {
	ranges := make([]flightradar.Range, 0, len(values))
	for _, v := range values {
		r, err := parseRange(v)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

// parseTime accepts RFC 3339, a zone-less datetime in UTC, or unix seconds
func parseTime(s string) (time.Time, error) {
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q (want RFC 3339 or unix seconds)", s)
}

func parseOptionalTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toCategories(values []string) []flightradar.FlightCategory {
	out := make([]flightradar.FlightCategory, 0, len(values))
	for _, v := range values {
		out = append(out, flightradar.FlightCategory(strings.ToUpper(v)))
	}
	return out
}

func toDataSources(values []string) []flightradar.DataSource {
	out := make([]flightradar.DataSource, 0, len(values))
	for _, v := range values {
		if strings.EqualFold(v, "all") {
			out = append(out, flightradar.SourceAll)
			continue
		}
		out = append(out, flightradar.DataSource(strings.ToUpper(v)))
	}
	return out
}

func toEventTypes(values []string) []flightradar.EventType {
	out := make([]flightradar.EventType, 0, len(values))
	for _, v := range values {
		out = append(out, flightradar.EventType(strings.ToLower(v)))
	}
	return out
}
