// Package flightradar provides a typed client for the Flightradar24 REST API.
//
// The client covers static airport and airline data, live and historic flight
// positions, flight summaries, flight tracks, historic flight events and API
// usage. Request models validate their filters when constructed, so invalid
// input is rejected before any network call is made.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := flightradar.NewClient(
//		flightradar.DefaultBaseURL,
//		os.Getenv("FLIGHT_RADAR_API_KEY"),
//		logger,
//		flightradar.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	req, err := flightradar.NewLiveFlightPositionRequest(flightradar.FlightPositionFilter{
//		Bounds: &flightradar.Bounds{North: 50.682, South: 46.218, West: 14.422, East: 22.243},
//	}, 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	positions, err := client.GetLiveFlightPositionsLight(ctx, req)
//
// # Error Handling
//
// Non-success responses are returned as *APIError, which unwraps to one of
// ErrBadRequest, ErrUnauthorized, ErrInsufficientCredits, ErrNotFound,
// ErrTooManyRequests or ErrInternalServerError. Success responses that do not
// match the expected shape return *InvalidResponseError, and invalid request
// filters return *ValidationError:
//
//	if errors.Is(err, flightradar.ErrInsufficientCredits) {
//		// top up
//	}
package flightradar
