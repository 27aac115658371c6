package filter

import (
	"maps"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/s0up4200/flightradar/flightradar"
)

// exprFilter implements CompiledFilter using the expr language
type exprFilter struct {
	expression string
	program    *vm.Program
	custom     map[string]any
}

// ExprCompilerOption configures an expr compiler
type ExprCompilerOption func(*exprCompiler)

// WithCache enables filter caching with the specified size
func WithCache(size int) ExprCompilerOption {
	return func(c *exprCompiler) {
		if size > 0 {
			c.cache = newLRUCache[CompiledFilter](size)
		}
	}
}

// WithCustomFunctions adds custom helper functions. They are available both
// when compiling and when evaluating, and override built-in helpers of the
// same name.
func WithCustomFunctions(funcs map[string]any) ExprCompilerOption {
	return func(c *exprCompiler) {
		if c.custom == nil {
			c.custom = make(map[string]any, len(funcs))
		}
		maps.Copy(c.custom, funcs)
		maps.Copy(c.helperFuncs, funcs)
	}
}

// NewExprCompiler creates a new expr-based filter compiler
func NewExprCompiler(opts ...ExprCompilerOption) CachingCompiler {
	c := &exprCompiler{
		helperFuncs: createHelperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// exprCompiler implements Compiler for expr-based filters
type exprCompiler struct {
	helperFuncs map[string]any
	custom      map[string]any
	cache       *lruCache[CompiledFilter]
}

// Compile compiles an expression into an executable filter
func (c *exprCompiler) Compile(expression string) (CompiledFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(expression); ok {
			return cached, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(c.helperFuncs),
		expr.AllowUndefinedVariables(), // position fields are bound at run time
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	filter := &exprFilter{
		expression: expression,
		program:    program,
		custom:     c.custom,
	}

	if c.cache != nil {
		c.cache.Put(expression, filter)
	}

	return filter, nil
}

// Clear removes all cached filters
func (c *exprCompiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// Size returns the number of cached filters
func (c *exprCompiler) Size() int {
	if c.cache != nil {
		return c.cache.Size()
	}
	return 0
}

// Evaluate evaluates the filter against a position. Positions that make the
// expression fail at run time do not match.
func (f *exprFilter) Evaluate(pos flightradar.FlightPosition) bool {
	result, err := expr.Run(f.program, createRuntimeEnvironment(pos, f.custom))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Expression returns the original expression
func (f *exprFilter) Expression() string {
	return f.expression
}

// createHelperFunctions creates the helper functions used during compilation.
// Position bound helpers are declared with placeholder bodies so calls type check.
func createHelperFunctions() map[string]any {
	funcs := make(map[string]any, 16)
	addHelperFunctions(funcs)
	addPositionHelpers(funcs, flightradar.FlightPosition{})
	return funcs
}

// addHelperFunctions adds the position independent helpers to env
func addHelperFunctions(env map[string]any) {
	// contains, startsWith and endsWith are expr operators and are case sensitive
	env["hasSubstr"] = func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	}
	env["hasPrefix"] = func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	}
	env["hasSuffix"] = func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["minutesAgo"] = func(minutes int) time.Time {
		return time.Now().Add(-time.Duration(minutes) * time.Minute)
	}
	env["now"] = time.Now
}

// addPositionHelpers adds helpers that close over pos
func addPositionHelpers(env map[string]any, pos flightradar.FlightPosition) {
	env["within"] = func(lat, lon, radiusKm float64) bool {
		return DistanceKm(pos.Lat, pos.Lon, lat, lon) <= radiusKm
	}
	env["distanceKm"] = func(lat, lon float64) float64 {
		return DistanceKm(pos.Lat, pos.Lon, lat, lon)
	}
	env["route"] = func(origin, destination string) bool {
		return matchesAirport(origin, pos.OrigICAO, pos.OrigIATA) &&
			matchesAirport(destination, pos.DestICAO, pos.DestIATA)
	}
	env["emergency"] = func() bool {
		switch pos.Squawk {
		case "7500", "7600", "7700":
			return true
		}
		return false
	}
	env["climbing"] = func() bool {
		return pos.VSpeed > 0
	}
	env["descending"] = func() bool {
		return pos.VSpeed < 0
	}
}

func matchesAirport(code string, icao, iata *string) bool {
	return strings.EqualFold(code, value(icao)) || strings.EqualFold(code, value(iata))
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// createRuntimeEnvironment creates the runtime environment for filter evaluation
func createRuntimeEnvironment(pos flightradar.FlightPosition, custom map[string]any) map[string]any {
	env := make(map[string]any, 48+len(custom))

	addHelperFunctions(env)
	addPositionHelpers(env, pos)
	maps.Copy(env, custom)

	env["Position"] = pos

	env["FR24ID"] = pos.FR24ID
	env["Hex"] = value(pos.Hex)
	env["Callsign"] = value(pos.Callsign)
	env["Lat"] = pos.Lat
	env["Lon"] = pos.Lon
	env["Track"] = pos.Track
	env["Alt"] = pos.Alt
	env["GSpeed"] = pos.GSpeed
	env["VSpeed"] = pos.VSpeed
	env["Squawk"] = pos.Squawk
	env["Timestamp"] = pos.Timestamp
	env["Source"] = string(pos.Source)

	env["Flight"] = value(pos.Flight)
	env["PaintedAs"] = value(pos.PaintedAs)
	env["OperatingAs"] = value(pos.OperatingAs)
	env["Orig"] = value(pos.OrigICAO)
	env["OrigIATA"] = value(pos.OrigIATA)
	env["Dest"] = value(pos.DestICAO)
	env["DestIATA"] = value(pos.DestIATA)
	env["Type"] = value(pos.Type)
	env["Reg"] = value(pos.Reg)
	env["HasETA"] = pos.ETA != nil
	if pos.ETA != nil {
		env["ETA"] = *pos.ETA
	} else {
		env["ETA"] = time.Time{}
	}

	return env
}

// CompileFilter compiles an expression with the default compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return NewExprCompiler().Compile(expression)
}
