package flightradar

import "time"

// HistoricFlightEventRequest asks for the events of specific flights, or of
// all flights at a given time. FlightIDs and EventDatetime are mutually
// exclusive. No EventTypes means every type.
type HistoricFlightEventRequest struct {
	FlightIDs     []string
	EventDatetime *time.Time
	EventTypes    []EventType
}

// NewHistoricFlightEventRequest returns a validated request for the events
// of the given flights
func NewHistoricFlightEventRequest(flightIDs []string, eventTypes ...EventType) (*HistoricFlightEventRequest, error) {
	req := &HistoricFlightEventRequest{FlightIDs: flightIDs, EventTypes: eventTypes}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// NewHistoricFlightEventRequestAt returns a validated request for the events
// of all flights at the given time
func NewHistoricFlightEventRequestAt(at time.Time, eventTypes ...EventType) (*HistoricFlightEventRequest, error) {
	if at.IsZero() {
		return nil, validationErr("event_datetime", "event_datetime must be set")
	}
	req := &HistoricFlightEventRequest{EventDatetime: &at, EventTypes: eventTypes}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that exactly one of FlightIDs and EventDatetime is set and
// that every event type is known
func (r *HistoricFlightEventRequest) Validate() error {
	if err := checkListLength("flight_ids", r.FlightIDs); err != nil {
		return err
	}
	if len(r.FlightIDs) > 0 && r.EventDatetime != nil {
		return validationErr("flight_ids", "flight_ids cannot be combined with event_datetime")
	}
	if len(r.FlightIDs) == 0 && r.EventDatetime == nil {
		return validationErr("flight_ids", "either flight_ids or event_datetime must be provided")
	}
	for _, t := range r.EventTypes {
		if !t.IsValid() {
			return validationErr("event_types", "unknown event type %q", t)
		}
	}
	return nil
}

// Params renders the request to query parameters. Event types default to all.
func (r *HistoricFlightEventRequest) Params() Params {
	types := joinStringers(r.EventTypes)
	if types == nil {
		types = strPtr(string(EventAll))
	}
	return Params{
		"flight_ids":     joinStrings(r.FlightIDs),
		"event_datetime": isoParam(r.EventDatetime),
		"event_types":    types,
	}
}

// IsValid reports whether t is an event type the API knows
func (t EventType) IsValid() bool {
	switch t {
	case EventAll, EventGateDeparture, EventTakeoff, EventCruising,
		EventAirspaceTransition, EventDescent, EventLanded, EventGateArrival:
		return true
	}
	return false
}

// HistoricFlightEventDetails carries event specific context. Which fields
// are set depends on the event type.
type HistoricFlightEventDetails struct {
	GateIdent         *string
	GateLat           *float64
	GateLon           *float64
	TakeoffRunway     *string
	LandedICAO        *string
	LandedRunway      *string
	ExitedAirspace    *string
	ExitedAirspaceID  *string
	EnteredAirspace   *string
	EnteredAirspaceID *string
}

// HistoricFlightEvent is one milestone of a flight
type HistoricFlightEvent struct {
	Type      EventType
	Timestamp time.Time
	Lat       *float64
	Lon       *float64
	Alt       *int
	GSpeed    *int
	Details   *HistoricFlightEventDetails
}

// HistoricFlightEventsLight lists the events of one flight
type HistoricFlightEventsLight struct {
	FR24ID   string
	Callsign string
	Hex      string
	Events   []HistoricFlightEvent
}

// HistoricFlightEvents adds operator and route to HistoricFlightEventsLight
type HistoricFlightEvents struct {
	HistoricFlightEventsLight
	PaintedAs   string
	OperatingAs string
	OrigICAO    string
	OrigIATA    string
	DestIATA    string
	DestICAO    string
}

type historicFlightEventDetailsDTO struct {
	GateIdent         *string  `json:"gate_ident"`
	GateLat           *float64 `json:"gate_lat"`
	GateLon           *float64 `json:"gate_lon"`
	TakeoffRunway     *string  `json:"takeoff_runway"`
	LandedICAO        *string  `json:"landed_icao"`
	LandedRunway      *string  `json:"landed_runway"`
	ExitedAirspace    *string  `json:"exited_airspace"`
	ExitedAirspaceID  *string  `json:"exited_airspace_id"`
	EnteredAirspace   *string  `json:"entered_airspace"`
	EnteredAirspaceID *string  `json:"entered_airspace_id"`
}

type historicFlightEventDTO struct {
	Type      *string                        `json:"type" validate:"required,oneof=gate_departure takeoff cruising airspace_transition descent landed gate_arrival"`
	Timestamp *string                        `json:"timestamp" validate:"required"`
	Lat       *float64                       `json:"lat"`
	Lon       *float64                       `json:"lon"`
	Alt       *int                           `json:"alt"`
	GSpeed    *int                           `json:"gspeed"`
	Details   *historicFlightEventDetailsDTO `json:"details"`
}

type historicFlightEventsLightDTO struct {
	FR24ID   *string                  `json:"fr24_id" validate:"required"`
	Callsign *string                  `json:"callsign" validate:"required"`
	Hex      *string                  `json:"hex" validate:"required"`
	Events   []historicFlightEventDTO `json:"events" validate:"required,dive"`
}

type historicFlightEventsDTO struct {
	historicFlightEventsLightDTO
	PaintedAs   *string `json:"painted_as" validate:"required"`
	OperatingAs *string `json:"operating_as" validate:"required"`
	OrigICAO    *string `json:"orig_icao" validate:"required"`
	OrigIATA    *string `json:"orig_iata" validate:"required"`
	DestIATA    *string `json:"dest_iata" validate:"required"`
	DestICAO    *string `json:"dest_icao" validate:"required"`
}

func toHistoricFlightEventDetails(d *historicFlightEventDetailsDTO) *HistoricFlightEventDetails {
	if d == nil {
		return nil
	}
	return &HistoricFlightEventDetails{
		GateIdent:         d.GateIdent,
		GateLat:           d.GateLat,
		GateLon:           d.GateLon,
		TakeoffRunway:     d.TakeoffRunway,
		LandedICAO:        d.LandedICAO,
		LandedRunway:      d.LandedRunway,
		ExitedAirspace:    d.ExitedAirspace,
		ExitedAirspaceID:  d.ExitedAirspaceID,
		EnteredAirspace:   d.EnteredAirspace,
		EnteredAirspaceID: d.EnteredAirspaceID,
	}
}

func toHistoricFlightEvent(d historicFlightEventDTO) (HistoricFlightEvent, error) {
	ts, err := parseTimestamp("timestamp", deref(d.Timestamp))
	if err != nil {
		return HistoricFlightEvent{}, err
	}
	return HistoricFlightEvent{
		Type:      EventType(deref(d.Type)),
		Timestamp: ts,
		Lat:       d.Lat,
		Lon:       d.Lon,
		Alt:       d.Alt,
		GSpeed:    d.GSpeed,
		Details:   toHistoricFlightEventDetails(d.Details),
	}, nil
}

func toHistoricFlightEventsLight(d historicFlightEventsLightDTO) (HistoricFlightEventsLight, error) {
	events, err := convertAll(d.Events, toHistoricFlightEvent)
	if err != nil {
		return HistoricFlightEventsLight{}, err
	}
	return HistoricFlightEventsLight{
		FR24ID:   deref(d.FR24ID),
		Callsign: deref(d.Callsign),
		Hex:      deref(d.Hex),
		Events:   events,
	}, nil
}

func toHistoricFlightEvents(d historicFlightEventsDTO) (HistoricFlightEvents, error) {
	light, err := toHistoricFlightEventsLight(d.historicFlightEventsLightDTO)
	if err != nil {
		return HistoricFlightEvents{}, err
	}
	return HistoricFlightEvents{
		HistoricFlightEventsLight: light,
		PaintedAs:                 deref(d.PaintedAs),
		OperatingAs:               deref(d.OperatingAs),
		OrigICAO:                  deref(d.OrigICAO),
		OrigIATA:                  deref(d.OrigIATA),
		DestIATA:                  deref(d.DestIATA),
		DestICAO:                  deref(d.DestICAO),
	}, nil
}
