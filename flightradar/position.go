package flightradar

import (
	"strconv"
	"time"
)

// FlightPositionFilter narrows live and historic position queries. At least
// one field must be set.
type FlightPositionFilter struct {
	Bounds         *Bounds
	Flights        []string
	Callsigns      []string
	Registrations  []string
	PaintedAs      []string
	OperatingAs    []string
	Airports       []AirportWithDirection
	Routes         []Route
	Aircraft       []string
	AltitudeRanges []Range
	Squawks        []string
	Categories     []FlightCategory
	DataSources    []DataSource
	Airspaces      []string
	GroundSpeed    *Range
}

// Validate checks list lengths and ranges
func (f FlightPositionFilter) Validate() error {
	checks := []error{
		checkListLength("flights", f.Flights),
		checkListLength("callsigns", f.Callsigns),
		checkListLength("registrations", f.Registrations),
		checkListLength("painted_as", f.PaintedAs),
		checkListLength("operating_as", f.OperatingAs),
		checkListLength("airports", f.Airports),
		checkListLength("routes", f.Routes),
		checkListLength("aircraft", f.Aircraft),
		checkListLength("altitude_ranges", f.AltitudeRanges),
		checkListLength("squawks", f.Squawks),
		checkListLength("categories", f.Categories),
		checkListLength("data_sources", f.DataSources),
		checkListLength("airspaces", f.Airspaces),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}

	for _, r := range f.AltitudeRanges {
		if err := r.validate("altitude_ranges", "altitude range"); err != nil {
			return err
		}
	}
	if f.GroundSpeed != nil {
		if err := f.GroundSpeed.validate("gspeed", "ground speed"); err != nil {
			return err
		}
	}

	if f.isEmpty() {
		return validationErr("", "at least one filter parameter must be provided")
	}
	return nil
}

func (f FlightPositionFilter) isEmpty() bool {
	for _, v := range f.Params() {
		if v != nil {
			return false
		}
	}
	return true
}

// Params renders the filter to wire parameters. Unset filters are nil.
func (f FlightPositionFilter) Params() Params {
	p := Params{
		"bounds":          nil,
		"flights":         joinStrings(f.Flights),
		"callsigns":       joinStrings(f.Callsigns),
		"registrations":   joinStrings(f.Registrations),
		"painted_as":      joinStrings(f.PaintedAs),
		"operating_as":    joinStrings(f.OperatingAs),
		"airports":        joinStringers(f.Airports),
		"routes":          joinStringers(f.Routes),
		"aircraft":        joinStrings(f.Aircraft),
		"altitude_ranges": joinStringers(f.AltitudeRanges),
		"squawks":         joinStrings(f.Squawks),
		"categories":      joinStringers(f.Categories),
		"data_sources":    dataSourcesParam(f.DataSources),
		"airspaces":       joinStrings(f.Airspaces),
		"gspeed":          nil,
	}
	if f.Bounds != nil {
		p["bounds"] = strPtr(f.Bounds.String())
	}
	if f.GroundSpeed != nil {
		p["gspeed"] = strPtr(f.GroundSpeed.String())
	}
	return p
}

// dataSourcesParam drops the parameter entirely when SourceAll is requested.
func dataSourcesParam(sources []DataSource) *string {
	for _, s := range sources {
		if s == SourceAll {
			return nil
		}
	}
	return joinStringers(sources)
}

func validateLimit(limit int) error {
	if limit < 0 {
		return validationErr("limit", "limit must be greater than 0")
	}
	return nil
}

func limitParam(limit int) *string {
	if limit == 0 {
		return nil
	}
	return strPtr(strconv.Itoa(limit))
}

// LiveFlightPositionRequest queries current positions. A zero Limit leaves
// the server default in place.
type LiveFlightPositionRequest struct {
	Filter FlightPositionFilter
	Limit  int
}

// NewLiveFlightPositionRequest validates and returns a live position request
func NewLiveFlightPositionRequest(filter FlightPositionFilter, limit int) (*LiveFlightPositionRequest, error) {
	req := &LiveFlightPositionRequest{Filter: filter, Limit: limit}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the filter and the limit
func (r *LiveFlightPositionRequest) Validate() error {
	if err := r.Filter.Validate(); err != nil {
		return err
	}
	return validateLimit(r.Limit)
}

// Params renders the filter and limit to query parameters
func (r *LiveFlightPositionRequest) Params() Params {
	p := r.Filter.Params()
	p["limit"] = limitParam(r.Limit)
	return p
}

// LiveFlightPositionCountRequest counts current positions matching a filter
type LiveFlightPositionCountRequest struct {
	Filter FlightPositionFilter
}

// NewLiveFlightPositionCountRequest validates and returns a live count request
func NewLiveFlightPositionCountRequest(filter FlightPositionFilter) (*LiveFlightPositionCountRequest, error) {
	req := &LiveFlightPositionCountRequest{Filter: filter}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks the filter
func (r *LiveFlightPositionCountRequest) Validate() error {
	return r.Filter.Validate()
}

// Params renders the filter to query parameters
func (r *LiveFlightPositionCountRequest) Params() Params {
	return r.Filter.Params()
}

// HistoricFlightPositionRequest queries positions at a point in the past
type HistoricFlightPositionRequest struct {
	Filter    FlightPositionFilter
	Timestamp time.Time
	Limit     int
}

// NewHistoricFlightPositionRequest validates and returns a request for the
// positions at a past point in time
func NewHistoricFlightPositionRequest(filter FlightPositionFilter, at time.Time, limit int) (*HistoricFlightPositionRequest, error) {
	req := &HistoricFlightPositionRequest{Filter: filter, Timestamp: at, Limit: limit}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that a timestamp is set, then the filter and the limit
func (r *HistoricFlightPositionRequest) Validate() error {
	if r.Timestamp.IsZero() {
		return validationErr("timestamp", "timestamp is required")
	}
	if err := r.Filter.Validate(); err != nil {
		return err
	}
	return validateLimit(r.Limit)
}

// Params renders the request to query parameters. The timestamp is sent as
// unix seconds.
func (r *HistoricFlightPositionRequest) Params() Params {
	p := r.Filter.Params()
	p["timestamp"] = unixParam(r.Timestamp)
	p["limit"] = limitParam(r.Limit)
	return p
}

// HistoricFlightPositionCountRequest counts positions at a point in the past
type HistoricFlightPositionCountRequest struct {
	Filter    FlightPositionFilter
	Timestamp time.Time
}

// NewHistoricFlightPositionCountRequest validates and returns a historic count request
func NewHistoricFlightPositionCountRequest(filter FlightPositionFilter, at time.Time) (*HistoricFlightPositionCountRequest, error) {
	req := &HistoricFlightPositionCountRequest{Filter: filter, Timestamp: at}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that a timestamp is set and the filter
func (r *HistoricFlightPositionCountRequest) Validate() error {
	if r.Timestamp.IsZero() {
		return validationErr("timestamp", "timestamp is required")
	}
	return r.Filter.Validate()
}

// Params renders the filter and the unix timestamp to query parameters
func (r *HistoricFlightPositionCountRequest) Params() Params {
	p := r.Filter.Params()
	p["timestamp"] = unixParam(r.Timestamp)
	return p
}

func unixParam(t time.Time) *string {
	return strPtr(strconv.FormatInt(t.Unix(), 10))
}

// FlightPositionLight is a position report without flight details
type FlightPositionLight struct {
	FR24ID    string
	Hex       *string
	Callsign  *string
	Lat       float64
	Lon       float64
	Track     int
	Alt       int
	GSpeed    int
	VSpeed    int
	Squawk    string
	Timestamp time.Time
	Source    DataSource
}

// FlightPosition is a position report with flight, aircraft and route details
type FlightPosition struct {
	FlightPositionLight
	Flight      *string
	PaintedAs   *string
	OperatingAs *string
	OrigIATA    *string
	OrigICAO    *string
	DestIATA    *string
	DestICAO    *string
	ETA         *time.Time
	Type        *string
	Reg         *string
}

// CountResponse holds the number of records matching a query
type CountResponse struct {
	RecordCount int
}

type flightPositionLightDTO struct {
	FR24ID    *string  `json:"fr24_id" validate:"required"`
	Hex       *string  `json:"hex"`
	Callsign  *string  `json:"callsign"`
	Lat       *float64 `json:"lat" validate:"required"`
	Lon       *float64 `json:"lon" validate:"required"`
	Track     *int     `json:"track" validate:"required"`
	Alt       *int     `json:"alt" validate:"required"`
	GSpeed    *int     `json:"gspeed" validate:"required"`
	VSpeed    *int     `json:"vspeed" validate:"required"`
	Squawk    *squawk  `json:"squawk" validate:"required"`
	Timestamp *string  `json:"timestamp" validate:"required"`
	Source    *string  `json:"source" validate:"required"`
}

type flightPositionDTO struct {
	flightPositionLightDTO
	Flight      *string `json:"flight"`
	PaintedAs   *string `json:"painted_as"`
	OperatingAs *string `json:"operating_as"`
	OrigIATA    *string `json:"orig_iata"`
	OrigICAO    *string `json:"orig_icao"`
	DestIATA    *string `json:"dest_iata"`
	DestICAO    *string `json:"dest_icao"`
	ETA         *string `json:"eta"`
	Type        *string `json:"type"`
	Reg         *string `json:"reg"`
}

type countDTO struct {
	RecordCount *int `json:"record_count" validate:"required"`
}

func toFlightPositionLight(d flightPositionLightDTO) (FlightPositionLight, error) {
	ts, err := parseTimestamp("timestamp", deref(d.Timestamp))
	if err != nil {
		return FlightPositionLight{}, err
	}
	return FlightPositionLight{
		FR24ID:    deref(d.FR24ID),
		Hex:       d.Hex,
		Callsign:  d.Callsign,
		Lat:       deref(d.Lat),
		Lon:       deref(d.Lon),
		Track:     deref(d.Track),
		Alt:       deref(d.Alt),
		GSpeed:    deref(d.GSpeed),
		VSpeed:    deref(d.VSpeed),
		Squawk:    string(deref(d.Squawk)),
		Timestamp: ts,
		Source:    DataSource(deref(d.Source)),
	}, nil
}

func toFlightPosition(d flightPositionDTO) (FlightPosition, error) {
	light, err := toFlightPositionLight(d.flightPositionLightDTO)
	if err != nil {
		return FlightPosition{}, err
	}
	eta, err := parseOptionalTimestamp("eta", d.ETA)
	if err != nil {
		return FlightPosition{}, err
	}
	return FlightPosition{
		FlightPositionLight: light,
		Flight:              d.Flight,
		PaintedAs:           d.PaintedAs,
		OperatingAs:         d.OperatingAs,
		OrigIATA:            d.OrigIATA,
		OrigICAO:            d.OrigICAO,
		DestIATA:            d.DestIATA,
		DestICAO:            d.DestICAO,
		ETA:                 eta,
		Type:                d.Type,
		Reg:                 d.Reg,
	}, nil
}

func toCountResponse(d countDTO) CountResponse {
	return CountResponse{RecordCount: deref(d.RecordCount)}
}

// convertAll applies convert to every item, stopping at the first error.
func convertAll[D, M any](items []D, convert func(D) (M, error)) ([]M, error) {
	out := make([]M, 0, len(items))
	for _, item := range items {
		m, err := convert(item)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
