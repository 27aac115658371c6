package flightradar

// TimePeriod selects the window reported by the usage endpoint
type TimePeriod string

const (
	PeriodDay   TimePeriod = "24h"
	PeriodWeek  TimePeriod = "7d"
	PeriodMonth TimePeriod = "30d"
	PeriodYear  TimePeriod = "1y"
)

// IsValid reports whether p is a period the API accepts
func (p TimePeriod) IsValid() bool {
	switch p {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// FlightCategory is the service type of a flight
type FlightCategory string

const (
	CategoryPassenger             FlightCategory = "P"
	CategoryCargo                 FlightCategory = "C"
	CategoryMilitaryAndGovernment FlightCategory = "M"
	CategoryBusinessJets          FlightCategory = "J"
	CategoryGeneralAviation       FlightCategory = "T"
	CategoryHelicopters           FlightCategory = "H"
	CategoryLighterThanAir        FlightCategory = "B"
	CategoryGliders               FlightCategory = "G"
	CategoryDrones                FlightCategory = "D"
	CategoryGroundVehicles        FlightCategory = "V"
	CategoryOther                 FlightCategory = "O"
	CategoryNonCategorized        FlightCategory = "N"
)

// DataSource is the origin of a position report
type DataSource string

const (
	SourceADSB      DataSource = "ADSB"
	SourceMLAT      DataSource = "MLAT"
	SourceEstimated DataSource = "ESTIMATED"
	// SourceAll requests every source. A list containing it is not sent.
	SourceAll DataSource = ""
)

// Direction qualifies an airport filter
type Direction string

const (
	DirectionNone     Direction = ""
	DirectionBoth     Direction = "both"
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// Sort is the ordering of flight summary results
type Sort string

const (
	SortAsc  Sort = "asc"
	SortDesc Sort = "desc"
)

// EventType is the kind of a historic flight event
type EventType string

const (
	EventAll                EventType = "all"
	EventGateDeparture      EventType = "gate_departure"
	EventTakeoff            EventType = "takeoff"
	EventCruising           EventType = "cruising"
	EventAirspaceTransition EventType = "airspace_transition"
	EventDescent            EventType = "descent"
	EventLanded             EventType = "landed"
	EventGateArrival        EventType = "gate_arrival"
)

// String implementations let enum lists go through joinList.

func (c FlightCategory) String() string { return string(c) }
func (s DataSource) String() string     { return string(s) }
func (t EventType) String() string      { return string(t) }
