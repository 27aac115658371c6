package flightradar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoricFlightEventRequest(t *testing.T) {
	t.Run("defaults to all event types", func(t *testing.T) {
		req, err := NewHistoricFlightEventRequest([]string{"BA123", "BA456"})
		require.NoError(t, err)

		params := req.Params().Compact()
		ids, _ := params.Get("flight_ids")
		assert.Equal(t, "BA123,BA456", ids)
		types, _ := params.Get("event_types")
		assert.Equal(t, "all", types)
		_, ok := params.Get("event_datetime")
		assert.False(t, ok)
	})

	t.Run("joins event types", func(t *testing.T) {
		req, err := NewHistoricFlightEventRequest([]string{"2efc4160"}, EventTakeoff, EventLanded)
		require.NoError(t, err)

		types, _ := req.Params().Get("event_types")
		assert.Equal(t, "takeoff,landed", types)
	})

	t.Run("event datetime alone", func(t *testing.T) {
		at := time.Date(2023, 1, 27, 5, 0, 0, 0, time.UTC)
		req := &HistoricFlightEventRequest{EventDatetime: &at}
		require.NoError(t, req.Validate())

		got, _ := req.Params().Get("event_datetime")
		assert.Equal(t, "2023-01-27T05:00:00Z", got)
	})

	t.Run("constructor at a point in time", func(t *testing.T) {
		at := time.Date(2023, 1, 27, 7, 0, 0, 0, time.FixedZone("CET", 3600))
		req, err := NewHistoricFlightEventRequestAt(at, EventGateDeparture)
		require.NoError(t, err)
		assert.Empty(t, req.FlightIDs)

		params := req.Params().Compact()
		got, _ := params.Get("event_datetime")
		assert.Equal(t, "2023-01-27T06:00:00Z", got)
		types, _ := params.Get("event_types")
		assert.Equal(t, "gate_departure", types)
		_, ok := params.Get("flight_ids")
		assert.False(t, ok)
	})

	t.Run("constructor rejects zero time", func(t *testing.T) {
		_, err := NewHistoricFlightEventRequestAt(time.Time{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("constructor at rejects unknown type", func(t *testing.T) {
		_, err := NewHistoricFlightEventRequestAt(time.Now(), EventType("boarding"))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("ids and datetime are exclusive", func(t *testing.T) {
		at := time.Now()
		req := &HistoricFlightEventRequest{FlightIDs: []string{"2efc4160"}, EventDatetime: &at}
		err := req.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be combined with event_datetime")
	})

	t.Run("one of ids or datetime required", func(t *testing.T) {
		_, err := NewHistoricFlightEventRequest(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("too many ids", func(t *testing.T) {
		_, err := NewHistoricFlightEventRequest(make([]string, MaxListLength+1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list should have at most 15 items")
	})

	t.Run("unknown event type", func(t *testing.T) {
		_, err := NewHistoricFlightEventRequest([]string{"2efc4160"}, EventType("boarding"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown event type")
	})
}

func TestAPIUsageRequest(t *testing.T) {
	req, err := NewAPIUsageRequest("")
	require.NoError(t, err)
	period, _ := req.Params().Get("period")
	assert.Equal(t, "24h", period)

	req, err = NewAPIUsageRequest(PeriodMonth)
	require.NoError(t, err)
	period, _ = req.Params().Get("period")
	assert.Equal(t, "30d", period)

	_, err = NewAPIUsageRequest(TimePeriod("2w"))
	require.Error(t, err)
}

func TestFlightTrackRequest(t *testing.T) {
	req, err := NewFlightTrackRequest("391e1d99")
	require.NoError(t, err)
	assert.Equal(t, Params{"flight_id": strPtr("391e1d99")}, req.Params())

	_, err = NewFlightTrackRequest("")
	require.Error(t, err)
}
