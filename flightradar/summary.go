package flightradar

import (
	"time"
)

// SummaryWindow is the furthest back a flight summary datetime window may start
const SummaryWindow = 14 * 24 * time.Hour

// now is replaced in tests.
var now = time.Now

// FlightSummaryFilter selects flights either by fr24 id or by a takeoff/landing
// datetime window combined with at least one other filter.
type FlightSummaryFilter struct {
	FlightIDs          []string
	FlightDatetimeFrom *time.Time
	FlightDatetimeTo   *time.Time
	Flights            []string
	Callsigns          []string
	Registrations      []string
	PaintedAs          []string
	OperatingAs        []string
	Airports           []AirportWithDirection
	Routes             []Route
	Aircraft           []string
}

// Validate applies list caps, then the id/window rules, then the window
// bounds and finally the additional filter requirement.
func (f FlightSummaryFilter) Validate() error {
	checks := []error{
		checkListLength("flight_ids", f.FlightIDs),
		checkListLength("flights", f.Flights),
		checkListLength("callsigns", f.Callsigns),
		checkListLength("registrations", f.Registrations),
		checkListLength("painted_as", f.PaintedAs),
		checkListLength("operating_as", f.OperatingAs),
		checkListLength("airports", f.Airports),
		checkListLength("routes", f.Routes),
		checkListLength("aircraft", f.Aircraft),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	hasIDs := len(f.FlightIDs) > 0
	hasWindow := f.FlightDatetimeFrom != nil && f.FlightDatetimeTo != nil
	partialWindow := f.FlightDatetimeFrom != nil || f.FlightDatetimeTo != nil

	switch {
	case hasIDs && partialWindow:
		return validationErr("flight_ids", "flight_ids cannot be combined with flight_datetime_from and flight_datetime_to")
	case !hasIDs && !hasWindow:
		return validationErr("", "either flight_datetime_from and flight_datetime_to or flight_ids must be provided")
	case hasIDs:
		return nil
	}

	from, to := *f.FlightDatetimeFrom, *f.FlightDatetimeTo
	if from.Before(now().Add(-SummaryWindow)) {
		return validationErr("flight_datetime_from", "flight_datetime_from must be within the last 14 days")
	}
	if !from.Before(to) {
		return validationErr("flight_datetime_from", "flight_datetime_from must be before flight_datetime_to")
	}

	if !f.hasAdditionalFilter() {
		return validationErr("", "at least one filter parameter must be provided")
	}
	return nil
}

func (f FlightSummaryFilter) hasAdditionalFilter() bool {
	return len(f.Flights) > 0 ||
		len(f.Callsigns) > 0 ||
		len(f.Registrations) > 0 ||
		len(f.PaintedAs) > 0 ||
		len(f.OperatingAs) > 0 ||
		len(f.Airports) > 0 ||
		len(f.Routes) > 0 ||
		len(f.Aircraft) > 0
}

// Params renders the filter to wire parameters. Datetimes are sent as UTC
// RFC 3339.
func (f FlightSummaryFilter) Params() Params {
	return Params{
		"flight_ids":           joinStrings(f.FlightIDs),
		"flight_datetime_from": isoParam(f.FlightDatetimeFrom),
		"flight_datetime_to":   isoParam(f.FlightDatetimeTo),
		"flights":              joinStrings(f.Flights),
		"callsigns":            joinStrings(f.Callsigns),
		"registrations":        joinStrings(f.Registrations),
		"painted_as":           joinStrings(f.PaintedAs),
		"operating_as":         joinStrings(f.OperatingAs),
		"airports":             joinStringers(f.Airports),
		"routes":               joinStringers(f.Routes),
		"aircraft":             joinStrings(f.Aircraft),
	}
}

func isoParam(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return strPtr(t.UTC().Format(time.RFC3339))
}

// FlightSummaryRequest lists flight summaries. Sort is optional.
type FlightSummaryRequest struct {
	Filter FlightSummaryFilter
	Limit  int
	Sort   Sort
}

// NewFlightSummaryRequest validates and returns a flight summary request
func NewFlightSummaryRequest(filter FlightSummaryFilter, limit int, sort Sort) (*FlightSummaryRequest, error) {
	req := &FlightSummaryRequest{Filter: filter, Limit: limit, Sort: sort}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the filter, the limit and the sort order
func (r *FlightSummaryRequest) Validate() error {
	if err := r.Filter.Validate(); err != nil {
		return err
	}
	if err := validateLimit(r.Limit); err != nil {
		return err
	}
	switch r.Sort {
	case "", SortAsc, SortDesc:
		return nil
	}
	return validationErr("sort", "sort must be one of asc, desc")
}

// Params renders the request to query parameters
func (r *FlightSummaryRequest) Params() Params {
	p := r.Filter.Params()
	p["limit"] = limitParam(r.Limit)
	p["sort"] = optString(string(r.Sort))
	return p
}

// FlightSummaryCountRequest counts flight summaries
type FlightSummaryCountRequest struct {
	Filter FlightSummaryFilter
}

// NewFlightSummaryCountRequest validates and returns a summary count request
func NewFlightSummaryCountRequest(filter FlightSummaryFilter) (*FlightSummaryCountRequest, error) {
	req := &FlightSummaryCountRequest{Filter: filter}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the filter
func (r *FlightSummaryCountRequest) Validate() error {
	return r.Filter.Validate()
}

// Params renders the filter to query parameters
func (r *FlightSummaryCountRequest) Params() Params {
	return r.Filter.Params()
}

// FlightSummaryLight summarizes a flight leg
type FlightSummaryLight struct {
	FR24ID          string
	Flight          *string
	Callsign        *string
	OperatingAs     *string
	PaintedAs       *string
	Type            *string
	Reg             *string
	OrigICAO        *string
	DatetimeTakeoff *time.Time
	DestICAO        *string
	DatetimeLanded  *time.Time
	Hex             *string
	FirstSeen       *time.Time
	LastSeen        *time.Time
	FlightEnded     *bool
}

// FlightSummary adds runways, actual destination and distances to FlightSummaryLight
type FlightSummary struct {
	FlightSummaryLight
	OrigIATA       *string
	RunwayTakeoff  *string
	DestIATA       *string
	DestICAOActual *string
	DestIATAActual *string
	RunwayLanded   *string
	// FlightTime is in seconds.
	FlightTime     *float64
	ActualDistance *float64
	CircleDistance *float64
}

type flightSummaryLightDTO struct {
	FR24ID          *string `json:"fr24_id" validate:"required"`
	Flight          *string `json:"flight"`
	Callsign        *string `json:"callsign"`
	OperatingAs     *string `json:"operating_as"`
	PaintedAs       *string `json:"painted_as"`
	Type            *string `json:"type"`
	Reg             *string `json:"reg"`
	OrigICAO        *string `json:"orig_icao"`
	DatetimeTakeoff *string `json:"datetime_takeoff"`
	DestICAO        *string `json:"dest_icao"`
	DatetimeLanded  *string `json:"datetime_landed"`
	Hex             *string `json:"hex"`
	FirstSeen       *string `json:"first_seen"`
	LastSeen        *string `json:"last_seen"`
	FlightEnded     *bool   `json:"flight_ended"`
}

type flightSummaryDTO struct {
	flightSummaryLightDTO
	OrigIATA       *string  `json:"orig_iata"`
	RunwayTakeoff  *string  `json:"runway_takeoff"`
	DestIATA       *string  `json:"dest_iata"`
	DestICAOActual *string  `json:"dest_icao_actual"`
	DestIATAActual *string  `json:"dest_iata_actual"`
	RunwayLanded   *string  `json:"runway_landed"`
	FlightTime     *float64 `json:"flight_time"`
	ActualDistance *float64 `json:"actual_distance"`
	CircleDistance *float64 `json:"circle_distance"`
}

func toFlightSummaryLight(d flightSummaryLightDTO) (FlightSummaryLight, error) {
	var (
		s   FlightSummaryLight
		err error
	)
	if s.DatetimeTakeoff, err = parseOptionalTimestamp("datetime_takeoff", d.DatetimeTakeoff); err != nil {
		return s, err
	}
	if s.DatetimeLanded, err = parseOptionalTimestamp("datetime_landed", d.DatetimeLanded); err != nil {
		return s, err
	}
	if s.FirstSeen, err = parseOptionalTimestamp("first_seen", d.FirstSeen); err != nil {
		return s, err
	}
	if s.LastSeen, err = parseOptionalTimestamp("last_seen", d.LastSeen); err != nil {
		return s, err
	}

	s.FR24ID = deref(d.FR24ID)
	s.Flight = d.Flight
	s.Callsign = d.Callsign
	s.OperatingAs = d.OperatingAs
	s.PaintedAs = d.PaintedAs
	s.Type = d.Type
	s.Reg = d.Reg
	s.OrigICAO = d.OrigICAO
	s.DestICAO = d.DestICAO
	s.Hex = d.Hex
	s.FlightEnded = d.FlightEnded
	return s, nil
}

func toFlightSummary(d flightSummaryDTO) (FlightSummary, error) {
	light, err := toFlightSummaryLight(d.flightSummaryLightDTO)
	if err != nil {
		return FlightSummary{}, err
	}
	return FlightSummary{
		FlightSummaryLight: light,
		OrigIATA:           d.OrigIATA,
		RunwayTakeoff:      d.RunwayTakeoff,
		DestIATA:           d.DestIATA,
		DestICAOActual:     d.DestICAOActual,
		DestIATAActual:     d.DestIATAActual,
		RunwayLanded:       d.RunwayLanded,
		FlightTime:         d.FlightTime,
		ActualDistance:     d.ActualDistance,
		CircleDistance:     d.CircleDistance,
	}, nil
}
