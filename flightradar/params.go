package flightradar

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// MaxListLength is the largest number of values a list filter may carry
const MaxListLength = 15

// Params is the wire form of a request. A nil value marks a parameter the
// caller left unset.
type Params map[string]*string

// Compact returns a copy of p without the unset parameters
func (p Params) Compact() Params {
	out := make(Params, len(p))
	for k, v := range p {
		if v != nil {
			out[k] = v
		}
	}
	return out
}

// Get returns the value of key and whether it is set
func (p Params) Get(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	return *v, true
}

// Values converts p to a query. Unset parameters are never sent as empty strings.
func (p Params) Values() url.Values {
	q := url.Values{}
	for k, v := range p {
		if v != nil {
			q.Set(k, *v)
		}
	}
	return q
}

// Keys returns the parameter names in sorted order
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func strPtr(s string) *string {
	return &s
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optInt(v *int) *string {
	if v == nil {
		return nil
	}
	return strPtr(strconv.Itoa(*v))
}

// joinList renders list as a comma separated value, or nil when empty.
func joinList[T any](list []T, render func(T) string) *string {
	if len(list) == 0 {
		return nil
	}
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = render(v)
	}
	return strPtr(strings.Join(parts, ","))
}

func joinStrings(list []string) *string {
	return joinList(list, func(s string) string { return s })
}

func joinStringers[T fmt.Stringer](list []T) *string {
	return joinList(list, func(v T) string { return v.String() })
}

func checkListLength[T any](field string, list []T) error {
	if len(list) > MaxListLength {
		return validationErr(field, "list should have at most %d items", MaxListLength)
	}
	return nil
}

// Range is an inclusive pair of non-negative integers. A range with equal
// bounds renders as a single value.
type Range struct {
	Low  int
	High int
}

// Exactly returns a range matching a single value
func Exactly(v int) Range {
	return Range{Low: v, High: v}
}

// Between returns the range low-high
func Between(low, high int) Range {
	return Range{Low: low, High: high}
}

// NewRange builds a range from one or two values
func NewRange(values ...int) (Range, error) {
	switch len(values) {
	case 1:
		return Exactly(values[0]), nil
	case 2:
		return Between(values[0], values[1]), nil
	default:
		return Range{}, validationErr("range", "range takes one or two values, got %d", len(values))
	}
}

func (r Range) String() string {
	if r.Low == r.High {
		return strconv.Itoa(r.Low)
	}
	return strconv.Itoa(r.Low) + "-" + strconv.Itoa(r.High)
}

// validate checks r using label to build messages such as
// "altitude range must be greater than 0".
func (r Range) validate(field, label string) error {
	if r.Low < 0 || r.High < 0 {
		return validationErr(field, "%s must be greater than 0", label)
	}
	if r.Low > r.High {
		return validationErr(field, "%s must be in ascending order", label)
	}
	return nil
}

// Bounds is a geographic bounding box in decimal degrees
type Bounds struct {
	North float64
	South float64
	West  float64
	East  float64
}

func (b Bounds) String() string {
	return strings.Join([]string{
		formatCoordinate(b.North),
		formatCoordinate(b.South),
		formatCoordinate(b.West),
		formatCoordinate(b.East),
	}, ",")
}

// formatCoordinate rounds v half away from zero to 3 decimals.
func formatCoordinate(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}

// AirportWithDirection filters flights by airport, optionally restricted to
// one direction of travel
type AirportWithDirection struct {
	Airport   string
	Direction Direction
}

// AirportCode returns an airport filter without a direction
func AirportCode(code string) AirportWithDirection {
	return AirportWithDirection{Airport: code}
}

func (a AirportWithDirection) String() string {
	if a.Direction == DirectionNone {
		return a.Airport
	}
	return string(a.Direction) + ":" + a.Airport
}

// Route filters flights between two airports
type Route struct {
	Origin      string
	Destination string
}

func (r Route) String() string {
	return r.Origin + "-" + r.Destination
}
