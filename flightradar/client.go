package flightradar

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production API root
	DefaultBaseURL = "https://fr24api.flightradar24.com/api"
	// APIVersion is sent in the Accept-Version header
	APIVersion = "v1"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "flightradar-go"
)

// Client represents a flight tracking API client
type Client struct {
	baseURL    string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new client. No request is made until an operation is
// called. WithTimeout only applies when no custom HTTP client is given.
func NewClient(baseURL, apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: invalid base URL %q", ErrInvalidConfig, baseURL)
	}

	client := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    apiKey,
		userAgent: defaultUserAgent,
		timeout:   defaultTimeout,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Timeout: client.timeout,
		}
	}

	return client, nil
}

// request is implemented by every request model.
type request interface {
	Validate() error
	Params() Params
}

func checkRequest(req request) error {
	if req == nil || reflect.ValueOf(req).IsNil() {
		return validationErr("", "request is required")
	}
	return req.Validate()
}

// doRequest performs an authenticated GET and returns the raw response.
func (c *Client) doRequest(ctx context.Context, endpoint string, params Params) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if query := params.Values(); len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept-Version", APIVersion)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	c.logger.Debug().
		Str("method", http.MethodGet).
		Str("path", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("flightradar API request")

	return resp, nil
}

// fetch performs a GET against endpoint and decodes the body into T.
func fetch[T any](ctx context.Context, c *Client, endpoint string, params Params) (T, error) {
	var zero T

	resp, err := c.doRequest(ctx, endpoint, params)
	if err != nil {
		return zero, err
	}
	defer resp.Body.Close()

	out, err := decodeResponse[T](resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.logger.Debug().
				Str("path", endpoint).
				Int("status", apiErr.StatusCode).
				Str("kind", apiErr.Kind.Error()).
				Msg("flightradar API error")
		}
		return zero, err
	}
	return out, nil
}

func staticPath(kind, code, variant string) string {
	return fmt.Sprintf("/static/%s/%s/%s", kind, url.PathEscape(code), variant)
}

// GetAirlineLight retrieves an airline by ICAO code
func (c *Client) GetAirlineLight(ctx context.Context, icao string) (*Airline, error) {
	if icao == "" {
		return nil, validationErr("icao", "airline ICAO code is required")
	}
	dto, err := fetch[airlineDTO](ctx, c, staticPath("airlines", icao, "light"), nil)
	if err != nil {
		return nil, err
	}
	airline := toAirline(dto)
	return &airline, nil
}

// GetAirportLight retrieves the basic record of an airport
func (c *Client) GetAirportLight(ctx context.Context, code string) (*AirportLight, error) {
	if code == "" {
		return nil, validationErr("code", "airport code is required")
	}
	dto, err := fetch[airportLightDTO](ctx, c, staticPath("airports", code, "light"), nil)
	if err != nil {
		return nil, err
	}
	airport := toAirportLight(dto)
	return &airport, nil
}

// GetAirport retrieves the full record of an airport including runways
func (c *Client) GetAirport(ctx context.Context, code string) (*Airport, error) {
	if code == "" {
		return nil, validationErr("code", "airport code is required")
	}
	dto, err := fetch[airportDTO](ctx, c, staticPath("airports", code, "full"), nil)
	if err != nil {
		return nil, err
	}
	airport := toAirport(dto)
	return &airport, nil
}

// GetLiveFlightPositionsLight retrieves current positions without flight details
func (c *Client) GetLiveFlightPositionsLight(ctx context.Context, req *LiveFlightPositionRequest) ([]FlightPositionLight, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightPositionLightDTO]](ctx, c, "/live/flight-positions/light", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightPositionLight)
}

// GetLiveFlightPositions retrieves current positions with flight, aircraft and route details
func (c *Client) GetLiveFlightPositions(ctx context.Context, req *LiveFlightPositionRequest) ([]FlightPosition, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightPositionDTO]](ctx, c, "/live/flight-positions/full", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightPosition)
}

// GetLiveFlightPositionCount counts the flights matching a live position filter
func (c *Client) GetLiveFlightPositionCount(ctx context.Context, req *LiveFlightPositionCountRequest) (*CountResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[countDTO](ctx, c, "/live/flight-positions/count", req.Params())
	if err != nil {
		return nil, err
	}
	count := toCountResponse(dto)
	return &count, nil
}

// GetHistoricFlightPositionsLight retrieves positions at a past point in time without flight details
func (c *Client) GetHistoricFlightPositionsLight(ctx context.Context, req *HistoricFlightPositionRequest) ([]FlightPositionLight, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightPositionLightDTO]](ctx, c, "/historic/flight-positions/light", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightPositionLight)
}

// GetHistoricFlightPositions retrieves positions at a past point in time with flight details
func (c *Client) GetHistoricFlightPositions(ctx context.Context, req *HistoricFlightPositionRequest) ([]FlightPosition, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightPositionDTO]](ctx, c, "/historic/flight-positions/full", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightPosition)
}

// GetHistoricFlightPositionCount counts the flights matching a historic position filter
func (c *Client) GetHistoricFlightPositionCount(ctx context.Context, req *HistoricFlightPositionCountRequest) (*CountResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[countDTO](ctx, c, "/historic/flight-positions/count", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	count := toCountResponse(dto)
	return &count, nil
}

// GetFlightSummaryLight retrieves takeoff and landing summaries of flights
func (c *Client) GetFlightSummaryLight(ctx context.Context, req *FlightSummaryRequest) ([]FlightSummaryLight, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightSummaryLightDTO]](ctx, c, "/flight-summary/light", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightSummaryLight)
}

// GetFlightSummary retrieves flight summaries with runways, flight time and distance
func (c *Client) GetFlightSummary(ctx context.Context, req *FlightSummaryRequest) ([]FlightSummary, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[flightSummaryDTO]](ctx, c, "/flight-summary/full", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toFlightSummary)
}

// GetFlightSummaryCount counts the flights matching a summary filter
func (c *Client) GetFlightSummaryCount(ctx context.Context, req *FlightSummaryCountRequest) (*CountResponse, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[countDTO](ctx, c, "/flight-summary/count", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	count := toCountResponse(dto)
	return &count, nil
}

// GetFlightTracks retrieves the track of one flight. The endpoint returns a
// bare list; only its first entry is used.
func (c *Client) GetFlightTracks(ctx context.Context, req *FlightTrackRequest) (*FlightTracks, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[[]flightTracksDTO](ctx, c, "/flight-tracks", req.Params())
	if err != nil {
		return nil, err
	}
	if len(dto) == 0 {
		return nil, &InvalidResponseError{Err: errors.New("flight tracks response is empty")}
	}
	return toFlightTracks(dto[0])
}

// GetAPIUsage retrieves credit usage per endpoint
func (c *Client) GetAPIUsage(ctx context.Context, req *APIUsageRequest) ([]APIUsage, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[apiUsageDTO]](ctx, c, "/usage", req.Params())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toAPIUsage)
}

// GetHistoricFlightEventsLight retrieves the milestones of flights
func (c *Client) GetHistoricFlightEventsLight(ctx context.Context, req *HistoricFlightEventRequest) ([]HistoricFlightEventsLight, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[historicFlightEventsLightDTO]](ctx, c, "/historic/flight-events/light", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toHistoricFlightEventsLight)
}

// GetHistoricFlightEvents retrieves the milestones of flights with operator and route
func (c *Client) GetHistoricFlightEvents(ctx context.Context, req *HistoricFlightEventRequest) ([]HistoricFlightEvents, error) {
	if err := checkRequest(req); err != nil {
		return nil, err
	}
	dto, err := fetch[dataEnvelope[historicFlightEventsDTO]](ctx, c, "/historic/flight-events/full", req.Params().Compact())
	if err != nil {
		return nil, err
	}
	return convertAll(dto.Data, toHistoricFlightEvents)
}
