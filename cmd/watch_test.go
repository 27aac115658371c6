package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/flightradar/filter"
	"github.com/s0up4200/flightradar/flightradar"
)

// fakeAPI serves one batch of live positions per call
type fakeAPI struct {
	flightradar.API
	batches  [][]flightradar.FlightPosition
	err      error
	requests []*flightradar.LiveFlightPositionRequest
}

func (f *fakeAPI) GetLiveFlightPositions(ctx context.Context, req *flightradar.LiveFlightPositionRequest) ([]flightradar.FlightPosition, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.batches) == 0 {
		return nil, nil
	}
	batch := f.batches[0]
	f.batches = f.batches[1:]
	return batch, nil
}

func position(id string, lat, lon float64, alt int) flightradar.FlightPosition {
	return flightradar.FlightPosition{
		FlightPositionLight: flightradar.FlightPositionLight{
			FR24ID:    id,
			Lat:       lat,
			Lon:       lon,
			Alt:       alt,
			Timestamp: time.Now(),
		},
	}
}

func ids(positions []flightradar.FlightPosition) []string {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		out = append(out, p.FR24ID)
	}
	return out
}

func TestAreaWatcherPoll(t *testing.T) {
	const lat, lon = 52.2297, 21.0122

	inside := position("a", 52.25, 21.0, 3000)
	insideToo := position("b", 52.20, 21.05, 12000)
	// inside the bounding box but outside the circle
	corner := position("c", 52.40, 21.27, 5000)

	api := &fakeAPI{batches: [][]flightradar.FlightPosition{
		{inside, corner},
		{inside, insideToo},
		{insideToo},
		{inside, insideToo},
	}}

	w, err := newAreaWatcher(api, zerolog.Nop(), lat, lon, 20, flightradar.FlightPositionFilter{}, nil)
	require.NoError(t, err)

	ctx := context.Background()

	entered, err := w.poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(entered))

	entered, err = w.poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, ids(entered))

	entered, err = w.poll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entered)

	// a left and came back
	entered, err = w.poll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(entered))

	require.Len(t, api.requests, 4)
	bounds, ok := api.requests[0].Params().Get("bounds")
	require.True(t, ok)
	assert.Equal(t, filter.BoxesAround(lat, lon, 20)[0].String(), bounds)
}

func TestAreaWatcherAntimeridian(t *testing.T) {
	// Taveuni, Fiji sits right on the antimeridian
	const lat, lon = -16.85, 179.95

	east := position("east", -16.80, 179.90, 8000)
	west := position("west", -16.90, -179.95, 9000)
	api := &fakeAPI{batches: [][]flightradar.FlightPosition{
		{east, west},
		{west},
	}}

	w, err := newAreaWatcher(api, zerolog.Nop(), lat, lon, 30, flightradar.FlightPositionFilter{}, nil)
	require.NoError(t, err)

	entered, err := w.poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"east", "west"}, ids(entered))

	require.Len(t, api.requests, 2)
	first, _ := api.requests[0].Params().Get("bounds")
	second, _ := api.requests[1].Params().Get("bounds")
	assert.NotEqual(t, first, second)
	for _, req := range api.requests {
		require.NotNil(t, req.Filter.Bounds)
		assert.LessOrEqual(t, req.Filter.Bounds.East, 180.0)
		assert.GreaterOrEqual(t, req.Filter.Bounds.West, -180.0)
	}
	assert.Equal(t, -180.0, api.requests[1].Filter.Bounds.West)
}

func TestAreaWatcherWhere(t *testing.T) {
	low, err := filter.CompileFilter(`Alt < 5000`)
	require.NoError(t, err)

	api := &fakeAPI{batches: [][]flightradar.FlightPosition{
		{position("low", 51.47, -0.45, 2000), position("high", 51.47, -0.46, 35000)},
	}}

	w, err := newAreaWatcher(api, zerolog.Nop(), 51.47, -0.4543, 15, flightradar.FlightPositionFilter{}, low)
	require.NoError(t, err)

	entered, err := w.poll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"low"}, ids(entered))
}

func TestNewAreaWatcherValidation(t *testing.T) {
	_, err := newAreaWatcher(&fakeAPI{}, zerolog.Nop(), 10, 10, 0, flightradar.FlightPositionFilter{}, nil)
	assert.Error(t, err)

	_, err = newAreaWatcher(&fakeAPI{}, zerolog.Nop(), 91, 10, 5, flightradar.FlightPositionFilter{}, nil)
	assert.Error(t, err)
}

func TestAreaWatcherRun(t *testing.T) {
	t.Run("once", func(t *testing.T) {
		api := &fakeAPI{batches: [][]flightradar.FlightPosition{{position("a", 10, 10, 1000)}}}
		w, err := newAreaWatcher(api, zerolog.Nop(), 10, 10, 5, flightradar.FlightPositionFilter{}, nil)
		require.NoError(t, err)

		require.NoError(t, w.run(context.Background(), time.Hour, true))
		assert.Len(t, api.requests, 1)
		assert.Contains(t, w.inside, "a")
	})

	t.Run("fatal error stops", func(t *testing.T) {
		api := &fakeAPI{err: &flightradar.APIError{StatusCode: 401, Kind: flightradar.ErrUnauthorized}}
		w, err := newAreaWatcher(api, zerolog.Nop(), 10, 10, 5, flightradar.FlightPositionFilter{}, nil)
		require.NoError(t, err)

		err = w.run(context.Background(), time.Millisecond, false)
		assert.ErrorIs(t, err, flightradar.ErrUnauthorized)
		assert.Len(t, api.requests, 1)
	})

	t.Run("canceled context stops", func(t *testing.T) {
		api := &fakeAPI{}
		w, err := newAreaWatcher(api, zerolog.Nop(), 10, 10, 5, flightradar.FlightPositionFilter{}, nil)
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		assert.NoError(t, w.run(ctx, 10*time.Millisecond, false))
		assert.NotEmpty(t, api.requests)
	})
}
