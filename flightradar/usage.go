package flightradar

// APIUsageRequest asks for credit usage over a period. An empty Period
// means the last 24 hours.
type APIUsageRequest struct {
	Period TimePeriod
}

// NewAPIUsageRequest validates and returns a usage request
func NewAPIUsageRequest(period TimePeriod) (*APIUsageRequest, error) {
	req := &APIUsageRequest{Period: period}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// Validate checks that the period, if set, is known
func (r *APIUsageRequest) Validate() error {
	if r.Period != "" && !r.Period.IsValid() {
		return validationErr("period", "period must be one of 24h, 7d, 30d, 1y")
	}
	return nil
}

// Params renders the period to query parameters, defaulting to 24h
func (r *APIUsageRequest) Params() Params {
	period := r.Period
	if period == "" {
		period = PeriodDay
	}
	return Params{"period": strPtr(string(period))}
}

// APIUsage reports requests and credits spent on one endpoint
type APIUsage struct {
	Endpoint     string
	RequestCount int
	Credits      int
}

type apiUsageDTO struct {
	Endpoint     *string `json:"endpoint" validate:"required"`
	RequestCount *int    `json:"request_count" validate:"required"`
	Credits      *int    `json:"credits" validate:"required"`
}

func toAPIUsage(d apiUsageDTO) (APIUsage, error) {
	return APIUsage{
		Endpoint:     deref(d.Endpoint),
		RequestCount: deref(d.RequestCount),
		Credits:      deref(d.Credits),
	}, nil
}
