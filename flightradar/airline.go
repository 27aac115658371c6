package flightradar

// Airline identifies a carrier
type Airline struct {
	ICAO string
	IATA *string
	Name string
}

type airlineDTO struct {
	ICAO *string `json:"icao" validate:"required"`
	IATA *string `json:"iata"`
	Name *string `json:"name" validate:"required"`
}

func toAirline(d airlineDTO) Airline {
	return Airline{ICAO: deref(d.ICAO), IATA: d.IATA, Name: deref(d.Name)}
}
