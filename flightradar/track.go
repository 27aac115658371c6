package flightradar

import "time"

// FlightTrackRequest asks for the recorded positions of one flight leg
type FlightTrackRequest struct {
	FlightID string
}

// NewFlightTrackRequest validates and returns a track request for one fr24 id
func NewFlightTrackRequest(flightID string) (*FlightTrackRequest, error) {
	req := &FlightTrackRequest{FlightID: flightID}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that a flight id is set
func (r *FlightTrackRequest) Validate() error {
	if r.FlightID == "" {
		return validationErr("flight_id", "flight_id is required")
	}
	return nil
}

// Params renders the request to query parameters
func (r *FlightTrackRequest) Params() Params {
	return Params{"flight_id": strPtr(r.FlightID)}
}

// FlightTrack is one recorded point along a flight's path. Callsign is empty
// when the point carries none.
type FlightTrack struct {
	Timestamp time.Time
	Lat       float64
	Lon       float64
	Alt       int
	GSpeed    int
	VSpeed    int
	Track     int
	Squawk    string
	Callsign  string
	Source    string
}

// FlightTracks is the track of a single flight leg
type FlightTracks struct {
	FR24ID string
	Tracks []FlightTrack
}

type flightTrackDTO struct {
	Timestamp *string  `json:"timestamp" validate:"required"`
	Lat       *float64 `json:"lat" validate:"required"`
	Lon       *float64 `json:"lon" validate:"required"`
	Alt       *int     `json:"alt" validate:"required"`
	GSpeed    *int     `json:"gspeed" validate:"required"`
	VSpeed    *int     `json:"vspeed" validate:"required"`
	Track     *int     `json:"track" validate:"required"`
	Squawk    *squawk  `json:"squawk" validate:"required"`
	Callsign  *string  `json:"callsign"`
	Source    *string  `json:"source" validate:"required"`
}

type flightTracksDTO struct {
	FR24ID *string          `json:"fr24_id" validate:"required"`
	Tracks []flightTrackDTO `json:"tracks" validate:"required,dive"`
}

func toFlightTrack(d flightTrackDTO) (FlightTrack, error) {
	ts, err := parseTimestamp("timestamp", deref(d.Timestamp))
	if err != nil {
		return FlightTrack{}, err
	}
	return FlightTrack{
		Timestamp: ts,
		Lat:       deref(d.Lat),
		Lon:       deref(d.Lon),
		Alt:       deref(d.Alt),
		GSpeed:    deref(d.GSpeed),
		VSpeed:    deref(d.VSpeed),
		Track:     deref(d.Track),
		Squawk:    string(deref(d.Squawk)),
		Callsign:  deref(d.Callsign),
		Source:    deref(d.Source),
	}, nil
}

func toFlightTracks(d flightTracksDTO) (*FlightTracks, error) {
	tracks, err := convertAll(d.Tracks, toFlightTrack)
	if err != nil {
		return nil, err
	}
	return &FlightTracks{FR24ID: deref(d.FR24ID), Tracks: tracks}, nil
}
