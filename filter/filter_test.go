package filter

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/s0up4200/flightradar/flightradar"
)

func ptr[T any](v T) *T { return &v }

func testPosition() flightradar.FlightPosition {
	return flightradar.FlightPosition{
		FlightPositionLight: flightradar.FlightPositionLight{
			FR24ID:    "38e8a4e2",
			Hex:       ptr("400a4f"),
			Callsign:  ptr("BAW123"),
			Lat:       51.47,
			Lon:       -0.4543,
			Track:     270,
			Alt:       3500,
			GSpeed:    180,
			VSpeed:    1500,
			Squawk:    "7700",
			Timestamp: time.Now().Add(-2 * time.Minute),
			Source:    flightradar.SourceADSB,
		},
		Flight:   ptr("BA123"),
		OrigIATA: ptr("LHR"),
		OrigICAO: ptr("EGLL"),
		DestIATA: ptr("JFK"),
		DestICAO: ptr("KJFK"),
		Type:     ptr("A35K"),
		Reg:      ptr("G-XWBA"),
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Alt > 30000`,
			wantErr:    false,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `hasPrefix(Callsign, "BAW"`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `hasPrefix(Callsign, "BAW") and within(51.47, -0.45, 50.0) and not emergency()`,
			wantErr:    false,
		},
		{
			name:       "non boolean result",
			expression: `"BAW"`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error but got none")
				} else if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if filter == nil {
					t.Errorf("expected filter but got nil")
				}
			}
		})
	}
}

func TestFilterEvaluation(t *testing.T) {
	pos := testPosition()
	noRoute := testPosition()
	noRoute.OrigIATA, noRoute.OrigICAO, noRoute.Callsign = nil, nil, nil
	noRoute.Squawk = "1234"
	noRoute.VSpeed = -800

	tests := []struct {
		name       string
		expression string
		pos        flightradar.FlightPosition
		expected   bool
	}{
		{
			name:       "altitude comparison",
			expression: `Alt < 10000`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "callsign prefix",
			expression: `hasPrefix(Callsign, "baw")`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "registration suffix",
			expression: `hasSuffix(Reg, "xwba")`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "flight substring",
			expression: `hasSubstr(Flight, "a12")`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "startsWith operator is case sensitive",
			expression: `Callsign startsWith "baw"`,
			pos:        pos,
			expected:   false,
		},
		{
			name:       "contains operator",
			expression: `Callsign contains "W12" and Reg endsWith "WBA"`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "missing callsign is empty",
			expression: `Callsign == ""`,
			pos:        noRoute,
			expected:   true,
		},
		{
			name:       "route by iata",
			expression: `route("LHR", "JFK")`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "route by icao",
			expression: `route("egll", "kjfk")`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "route without origin",
			expression: `route("LHR", "JFK")`,
			pos:        noRoute,
			expected:   false,
		},
		{
			name:       "emergency squawk",
			expression: `emergency()`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "no emergency",
			expression: `emergency()`,
			pos:        noRoute,
			expected:   false,
		},
		{
			name:       "climbing",
			expression: `climbing() and not descending()`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "descending",
			expression: `descending()`,
			pos:        noRoute,
			expected:   true,
		},
		{
			name:       "within radius",
			expression: `within(51.5074, -0.1278, 30.0)`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "outside radius",
			expression: `within(40.6413, -73.7781, 100.0)`,
			pos:        pos,
			expected:   false,
		},
		{
			name:       "distance comparison",
			expression: `distanceKm(51.5074, -0.1278) > 20.0`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "recent timestamp",
			expression: `Timestamp > minutesAgo(10)`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "source and type",
			expression: `Source == "ADSB" and Type in ["A35K", "A359"]`,
			pos:        pos,
			expected:   true,
		},
		{
			name:       "eta missing",
			expression: `not HasETA`,
			pos:        pos,
			expected:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			if err != nil {
				t.Fatalf("failed to compile filter: %v", err)
			}

			result := filter.Evaluate(tt.pos)
			if result != tt.expected {
				t.Errorf("expected %v but got %v for expression %q", tt.expected, result, tt.expression)
			}
		})
	}
}

func TestConcurrentEvaluation(t *testing.T) {
	positions := generateTestPositions(1000)

	filter, err := CompileFilter(`Alt > 20000 and hasPrefix(Callsign, "BAW")`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	evaluator := NewConcurrentEvaluator(WithWorkers(4), WithBatchSize(50))

	matches, err := evaluator.Evaluate(context.Background(), filter, positions)
	if err != nil {
		t.Fatalf("evaluation failed: %v", err)
	}

	var expected []flightradar.FlightPosition
	for _, pos := range positions {
		if filter.Evaluate(pos) {
			expected = append(expected, pos)
		}
	}

	if len(matches) != len(expected) {
		t.Fatalf("expected %d matches but got %d", len(expected), len(matches))
	}
	for i := range matches {
		if matches[i].FR24ID != expected[i].FR24ID {
			t.Errorf("match %d: expected %s but got %s", i, expected[i].FR24ID, matches[i].FR24ID)
		}
	}
}

func TestConcurrentEvaluationCanceled(t *testing.T) {
	positions := generateTestPositions(1000)

	filter, err := CompileFilter(`Alt > 0`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = NewConcurrentEvaluator(WithWorkers(2), WithBatchSize(10)).Evaluate(ctx, filter, positions)
	if err == nil {
		t.Error("expected context error")
	}
}

func TestBatchEvaluation(t *testing.T) {
	positions := generateTestPositions(500)

	manager := NewManager()
	err := manager.RegisterFilters(map[string]string{
		"high":      `Alt >= 30000`,
		"speedbird": `hasPrefix(Callsign, "BAW")`,
		"mlat":      `Source == "MLAT"`,
	})
	if err != nil {
		t.Fatalf("failed to register filters: %v", err)
	}

	results, err := manager.EvaluateAll(context.Background(), positions)
	if err != nil {
		t.Fatalf("batch evaluation failed: %v", err)
	}

	if len(results) != 3 {
		t.Errorf("expected 3 filter results but got %d", len(results))
	}
	if len(results["mlat"]) != 0 {
		t.Errorf("expected no mlat matches but got %d", len(results["mlat"]))
	}
	if len(results["speedbird"]) != 250 {
		t.Errorf("expected 250 speedbird matches but got %d", len(results["speedbird"]))
	}
}

func TestFilterManager(t *testing.T) {
	manager := NewManager()
	ctx := context.Background()

	filters := map[string]string{
		"low":       `Alt < 10000`,
		"emergency": `emergency()`,
		"heathrow":  `route("LHR", "JFK")`,
	}

	if err := manager.RegisterFilters(filters); err != nil {
		t.Fatalf("failed to register filters: %v", err)
	}

	names := manager.ListFilters()
	want := []string{"emergency", "heathrow", "low"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("expected %v but got %v", want, names)
	}

	filter, exists := manager.GetFilter("emergency")
	if !exists || filter == nil {
		t.Fatal("expected filter 'emergency' to exist")
	}

	positions := []flightradar.FlightPosition{testPosition()}
	matches, err := manager.EvaluateFilter(ctx, "heathrow", positions)
	if err != nil {
		t.Fatalf("failed to evaluate filter: %v", err)
	}
	if len(matches) != 1 {
		t.Errorf("expected 1 match but got %d", len(matches))
	}

	_, err = manager.EvaluateFilter(ctx, "missing", positions)
	if _, ok := err.(*NotFoundError); !ok {
		t.Errorf("expected NotFoundError but got %v", err)
	}

	manager.UnregisterFilter("low")
	if _, exists := manager.GetFilter("low"); exists {
		t.Error("expected filter 'low' to be removed")
	}

	if err := manager.RegisterFilters(map[string]string{"bad": `Alt >`}); err == nil {
		t.Error("expected compile error")
	}
	if _, exists := manager.GetFilter("bad"); exists {
		t.Error("expected failed filter not to be registered")
	}
}

func TestManagerResolve(t *testing.T) {
	manager := NewManager()
	if err := manager.RegisterFilter("low", `Alt < 10000`); err != nil {
		t.Fatalf("failed to register filter: %v", err)
	}

	named, err := manager.Resolve("low")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if named.Expression() != `Alt < 10000` {
		t.Errorf("expected registered expression but got %q", named.Expression())
	}

	adhoc, err := manager.Resolve(`Alt > 30000`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if adhoc.Evaluate(testPosition()) {
		t.Error("expected ad hoc filter not to match")
	}

	if _, err := manager.Resolve("not a filter ("); err == nil {
		t.Error("expected compile error for unknown name")
	}
}

func TestCacheEffectiveness(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	for _, expression := range []string{`Alt > 1`, `Alt > 1`, `Alt > 2`} {
		if _, err := compiler.Compile(expression); err != nil {
			t.Fatalf("compilation failed: %v", err)
		}
	}
	if compiler.Size() != 2 {
		t.Errorf("expected cache size 2 but got %d", compiler.Size())
	}

	if _, err := compiler.Compile(`Alt > 3`); err != nil {
		t.Fatalf("compilation failed: %v", err)
	}
	if compiler.Size() != 2 {
		t.Errorf("expected cache size to stay at 2 but got %d", compiler.Size())
	}

	compiler.Clear()
	if compiler.Size() != 0 {
		t.Errorf("expected cache size 0 after clear but got %d", compiler.Size())
	}

	if NewExprCompiler().Size() != 0 {
		t.Error("expected uncached compiler to report size 0")
	}
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isHeavy": func(aircraft string) bool { return aircraft == "A35K" || aircraft == "B77W" },
	}))

	filter, err := compiler.Compile(`isHeavy(Type)`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if !filter.Evaluate(testPosition()) {
		t.Error("expected custom function to match")
	}

	light := testPosition()
	light.Type = ptr("C172")
	if filter.Evaluate(light) {
		t.Error("expected custom function not to match a light aircraft")
	}
}

func TestCustomFunctionsOverrideHelpers(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"emergency": func() bool { return false },
	}))

	filter, err := compiler.Compile(`emergency()`)
	if err != nil {
		t.Fatalf("failed to compile filter: %v", err)
	}
	if filter.Evaluate(testPosition()) {
		t.Error("expected custom emergency helper to replace the built-in one")
	}
}

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		want                   float64
	}{
		{"same point", 51.5, -0.12, 51.5, -0.12, 0},
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343.5},
		{"one degree of latitude", 0, 0, 1, 0, 111.19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.want) > 1 {
				t.Errorf("expected %.2f km but got %.2f km", tt.want, got)
			}
		})
	}
}

func TestBoxesAround(t *testing.T) {
	boxes := BoxesAround(0, 0, 111.32)
	if len(boxes) != 1 {
		t.Fatalf("expected one box but got %d", len(boxes))
	}
	b := boxes[0]
	if math.Abs(b.North-1) > 1e-9 || math.Abs(b.South+1) > 1e-9 {
		t.Errorf("unexpected latitude bounds %v/%v", b.North, b.South)
	}
	if math.Abs(b.East-1) > 1e-9 || math.Abs(b.West+1) > 1e-9 {
		t.Errorf("unexpected longitude bounds %v/%v", b.East, b.West)
	}

	polar := BoxesAround(89.9, 10, 500)
	if len(polar) != 1 || polar[0].North != 90 || polar[0].West != -180 || polar[0].East != 180 {
		t.Errorf("expected clamped bounds near the pole but got %+v", polar)
	}
}

func TestBoxesAroundAntimeridian(t *testing.T) {
	tests := []struct {
		name       string
		lon        float64
		first      [2]float64
		second     [2]float64
		farSideLon float64
	}{
		{name: "east of the antimeridian", lon: 179.9, first: [2]float64{178.9, 180}, second: [2]float64{-180, -179.1}, farSideLon: -179.5},
		{name: "west of the antimeridian", lon: -179.9, first: [2]float64{-180, -178.9}, second: [2]float64{179.1, 180}, farSideLon: 179.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			boxes := BoxesAround(0, tt.lon, 111.32)
			if len(boxes) != 2 {
				t.Fatalf("expected two boxes but got %+v", boxes)
			}
			got := [][2]float64{{boxes[0].West, boxes[0].East}, {boxes[1].West, boxes[1].East}}
			for i, want := range [][2]float64{tt.first, tt.second} {
				if math.Abs(got[i][0]-want[0]) > 1e-9 || math.Abs(got[i][1]-want[1]) > 1e-9 {
					t.Errorf("box %d: expected west/east %v but got %v", i, want, got[i])
				}
			}

			if DistanceKm(0, tt.lon, 0, tt.farSideLon) > 111.32 {
				t.Fatalf("far side point is outside the circle")
			}
			covered := false
			for _, b := range boxes {
				if tt.farSideLon >= b.West && tt.farSideLon <= b.East {
					covered = true
				}
			}
			if !covered {
				t.Errorf("expected far side longitude %v to be covered by %+v", tt.farSideLon, boxes)
			}
		})
	}
}

func generateTestPositions(count int) []flightradar.FlightPosition {
	positions := make([]flightradar.FlightPosition, count)
	for i := range positions {
		callsign := "DLH" + fmt.Sprint(i)
		if i%2 == 0 {
			callsign = "BAW" + fmt.Sprint(i)
		}
		positions[i] = flightradar.FlightPosition{
			FlightPositionLight: flightradar.FlightPositionLight{
				FR24ID:    fmt.Sprintf("%08x", i),
				Callsign:  ptr(callsign),
				Lat:       50 + float64(i%10)/10,
				Lon:       float64(i%20) / 10,
				Alt:       (i % 40) * 1000,
				Squawk:    "2000",
				Timestamp: time.Now(),
				Source:    flightradar.SourceADSB,
			},
		}
	}
	return positions
}
