package flightradar

// AirportLight identifies an airport
type AirportLight struct {
	ICAO string
	IATA *string
	Name *string
}

// Country of an airport. Code is ISO 3166-1 alpha-2.
type Country struct {
	Code string
	Name string
}

// Timezone of an airport. Offset is seconds from UTC.
type Timezone struct {
	Name   string
	Offset int
}

// Surface of a runway, e.g. ASPHH / Asphalt
type Surface struct {
	Type        string
	Description string
}

// Runway describes one runway. Length, width and elevation are in feet.
type Runway struct {
	Designator string
	Heading    float64
	Length     int
	Width      int
	Elevation  int
	// ThresholdCoordinates is latitude, longitude.
	ThresholdCoordinates [2]float64
	Surface              Surface
}

// Airport is the full airport record. State is only reported for a few countries.
type Airport struct {
	AirportLight
	Lon       float64
	Lat       float64
	Elevation int
	City      string
	Country   Country
	Timezone  Timezone
	State     *string
	Runways   []Runway
}

type airportLightDTO struct {
	ICAO *string `json:"icao" validate:"required"`
	IATA *string `json:"iata"`
	Name *string `json:"name"`
}

type countryDTO struct {
	Code *string `json:"code" validate:"required"`
	Name *string `json:"name" validate:"required"`
}

type timezoneDTO struct {
	Name   *string `json:"name" validate:"required"`
	Offset *int    `json:"offset" validate:"required"`
}

type surfaceDTO struct {
	Type        *string `json:"type" validate:"required"`
	Description *string `json:"description" validate:"required"`
}

type runwayDTO struct {
	Designator     *string     `json:"designator" validate:"required"`
	Heading        *float64    `json:"heading" validate:"required"`
	Length         *int        `json:"length" validate:"required"`
	Width          *int        `json:"width" validate:"required"`
	Elevation      *int        `json:"elevation" validate:"required"`
	ThrCoordinates []float64   `json:"thr_coordinates" validate:"required,len=2"`
	Surface        *surfaceDTO `json:"surface" validate:"required"`
}

type airportDTO struct {
	airportLightDTO
	Lon       *float64     `json:"lon" validate:"required"`
	Lat       *float64     `json:"lat" validate:"required"`
	Elevation *int         `json:"elevation" validate:"required"`
	City      *string      `json:"city" validate:"required"`
	Country   *countryDTO  `json:"country" validate:"required"`
	Timezone  *timezoneDTO `json:"timezone" validate:"required"`
	State     *string      `json:"state"`
	Runways   []runwayDTO  `json:"runways" validate:"required,dive"`
}

func toAirportLight(d airportLightDTO) AirportLight {
	return AirportLight{ICAO: deref(d.ICAO), IATA: d.IATA, Name: d.Name}
}

func toCountry(d *countryDTO) Country {
	return Country{Code: deref(d.Code), Name: deref(d.Name)}
}

func toTimezone(d *timezoneDTO) Timezone {
	return Timezone{Name: deref(d.Name), Offset: deref(d.Offset)}
}

func toSurface(d *surfaceDTO) Surface {
	return Surface{Type: deref(d.Type), Description: deref(d.Description)}
}

func toRunway(d runwayDTO) Runway {
	return Runway{
		Designator:           deref(d.Designator),
		Heading:              deref(d.Heading),
		Length:               deref(d.Length),
		Width:                deref(d.Width),
		Elevation:            deref(d.Elevation),
		ThresholdCoordinates: [2]float64{d.ThrCoordinates[0], d.ThrCoordinates[1]},
		Surface:              toSurface(d.Surface),
	}
}

func toAirport(d airportDTO) Airport {
	runways := make([]Runway, 0, len(d.Runways))
	for _, r := range d.Runways {
		runways = append(runways, toRunway(r))
	}
	return Airport{
		AirportLight: toAirportLight(d.airportLightDTO),
		Lon:          deref(d.Lon),
		Lat:          deref(d.Lat),
		Elevation:    deref(d.Elevation),
		City:         deref(d.City),
		Country:      toCountry(d.Country),
		Timezone:     toTimezone(d.Timezone),
		State:        d.State,
		Runways:      runways,
	}
}
