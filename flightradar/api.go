package flightradar

import (
	"context"
)

// API defines the flight tracking operations
type API interface {
	// GetAirlineLight retrieves an airline by ICAO code
	GetAirlineLight(ctx context.Context, icao string) (*Airline, error)

	// GetAirportLight retrieves the basic record of an airport by IATA or ICAO code
	GetAirportLight(ctx context.Context, code string) (*AirportLight, error)

	// GetAirport retrieves the full record of an airport by IATA or ICAO code
	GetAirport(ctx context.Context, code string) (*Airport, error)

	// GetLiveFlightPositionsLight retrieves current positions without flight details
	GetLiveFlightPositionsLight(ctx context.Context, req *LiveFlightPositionRequest) ([]FlightPositionLight, error)

	// GetLiveFlightPositions retrieves current positions with flight, aircraft and route details
	GetLiveFlightPositions(ctx context.Context, req *LiveFlightPositionRequest) ([]FlightPosition, error)

	// GetLiveFlightPositionCount counts the flights matching a live position filter
	GetLiveFlightPositionCount(ctx context.Context, req *LiveFlightPositionCountRequest) (*CountResponse, error)

	// GetHistoricFlightPositionsLight retrieves positions at a past point in time without flight details
	GetHistoricFlightPositionsLight(ctx context.Context, req *HistoricFlightPositionRequest) ([]FlightPositionLight, error)

	// GetHistoricFlightPositions retrieves positions at a past point in time with flight details
	GetHistoricFlightPositions(ctx context.Context, req *HistoricFlightPositionRequest) ([]FlightPosition, error)

	// GetHistoricFlightPositionCount counts the flights matching a historic position filter
	GetHistoricFlightPositionCount(ctx context.Context, req *HistoricFlightPositionCountRequest) (*CountResponse, error)

	// GetFlightSummaryLight retrieves takeoff and landing summaries of flights
	GetFlightSummaryLight(ctx context.Context, req *FlightSummaryRequest) ([]FlightSummaryLight, error)

	// GetFlightSummary retrieves flight summaries with runways, flight time and distance
	GetFlightSummary(ctx context.Context, req *FlightSummaryRequest) ([]FlightSummary, error)

	// GetFlightSummaryCount counts the flights matching a summary filter
	GetFlightSummaryCount(ctx context.Context, req *FlightSummaryCountRequest) (*CountResponse, error)

	// GetFlightTracks retrieves the positional track of one flight leg
	GetFlightTracks(ctx context.Context, req *FlightTrackRequest) (*FlightTracks, error)

	// GetAPIUsage retrieves credit usage per endpoint
	GetAPIUsage(ctx context.Context, req *APIUsageRequest) ([]APIUsage, error)

	// GetHistoricFlightEventsLight retrieves flight milestones such as takeoff and landing
	GetHistoricFlightEventsLight(ctx context.Context, req *HistoricFlightEventRequest) ([]HistoricFlightEventsLight, error)

	// GetHistoricFlightEvents retrieves flight milestones with operator and route
	GetHistoricFlightEvents(ctx context.Context, req *HistoricFlightEventRequest) ([]HistoricFlightEvents, error)
}

var _ API = (*Client)(nil)
