package flightradar

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeString(t *testing.T) {
	tests := []struct {
		name     string
		r        Range
		expected string
	}{
		{"single value", Exactly(6), "6"},
		{"pair", Between(0, 40), "0-40"},
		{"equal bounds", Between(300, 300), "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.String())
		})
	}
}

func TestNewRange(t *testing.T) {
	r, err := NewRange(5000, 7000)
	require.NoError(t, err)
	assert.Equal(t, Range{Low: 5000, High: 7000}, r)

	r, err = NewRange(6)
	require.NoError(t, err)
	assert.Equal(t, "6", r.String())

	_, err = NewRange(1, 2, 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = NewRange()
	require.Error(t, err)
}

func TestRangeValidate(t *testing.T) {
	tests := []struct {
		name   string
		r      Range
		errMsg string
	}{
		{"valid", Between(0, 3000), ""},
		{"negative low", Between(-1, 3000), "altitude range must be greater than 0"},
		{"negative high", Between(0, -5), "altitude range must be greater than 0"},
		{"descending", Between(7000, 5000), "altitude range must be in ascending order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.r.validate("altitude_ranges", "altitude range")
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestBoundsString(t *testing.T) {
	tests := []struct {
		name     string
		b        Bounds
		expected string
	}{
		{
			name:     "rounds to three decimals",
			b:        Bounds{North: 51.5074, South: -0.1278, West: 51.5074, East: -0.1278},
			expected: "51.507,-0.128,51.507,-0.128",
		},
		{
			name:     "rounds half away from zero",
			b:        Bounds{North: 42.4734, South: 37.3315, West: -10.0142, East: -4.1151},
			expected: "42.473,37.332,-10.014,-4.115",
		},
		{
			name:     "keeps short values",
			b:        Bounds{North: 50.682, South: 46.218, West: 14.422, East: 22.243},
			expected: "50.682,46.218,14.422,22.243",
		},
		{
			name:     "drops trailing zeros",
			b:        Bounds{North: 60, South: 50.5, West: 0, East: 10.25},
			expected: "60,50.5,0,10.25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.b.String())
		})
	}
}

func TestAirportsAndRoutes(t *testing.T) {
	airports := []AirportWithDirection{
		AirportCode("LHR"),
		{Airport: "WAW", Direction: DirectionInbound},
	}
	assert.Equal(t, "LHR,inbound:WAW", *joinStringers(airports))

	routes := []Route{{Origin: "LHR", Destination: "BKK"}}
	assert.Equal(t, "LHR-BKK", *joinStringers(routes))

	assert.Nil(t, joinStringers([]Route{}))
}

func TestParams(t *testing.T) {
	p := Params{
		"flights": strPtr("AF1463"),
		"limit":   nil,
	}

	t.Run("compact drops unset", func(t *testing.T) {
		compact := p.Compact()
		assert.Len(t, compact, 1)
		assert.Contains(t, compact, "flights")
		assert.Len(t, p, 2)
	})

	t.Run("values skip unset", func(t *testing.T) {
		values := p.Values()
		assert.Equal(t, "AF1463", values.Get("flights"))
		_, ok := values["limit"]
		assert.False(t, ok)
	})

	t.Run("get", func(t *testing.T) {
		v, ok := p.Get("flights")
		assert.True(t, ok)
		assert.Equal(t, "AF1463", v)

		_, ok = p.Get("limit")
		assert.False(t, ok)
	})

	t.Run("keys sorted", func(t *testing.T) {
		assert.Equal(t, []string{"flights", "limit"}, p.Keys())
	})
}

func TestCheckListLength(t *testing.T) {
	list := make([]string, MaxListLength)
	assert.NoError(t, checkListLength("flights", list))

	err := checkListLength("flights", append(list, "one more"))
	require.Error(t, err)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "flights", vErr.Field)
	assert.Equal(t, "list should have at most 15 items", vErr.Message)
}
