package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/flightradar/filter"
	"github.com/s0up4200/flightradar/flightradar"
)

var (
	watchFlags    positionFlags
	watchLat      float64
	watchLon      float64
	watchRadius   float64
	watchInterval time.Duration
	watchWhere    string
	watchOnce     bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Alert when flights enter a circular area",
	Long: `Poll live positions around a point and log an alert for every flight
that enters the circle. A flight that leaves and comes back is reported again.

  fr24 watch --lat 52.2297 --lon 21.0122 --radius 30
  fr24 watch --lat 51.47 --lon -0.4543 --radius 15 --where 'Alt < 5000'`,
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd.Flags())
	watchCmd.Flags().Float64Var(&watchLat, "lat", 0, "latitude of the center")
	watchCmd.Flags().Float64Var(&watchLon, "lon", 0, "longitude of the center")
	watchCmd.Flags().Float64Var(&watchRadius, "radius", 20, "radius in kilometers")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", time.Minute, "poll interval")
	watchCmd.Flags().StringVarP(&watchWhere, "where", "w", "", "filter expression or saved filter name")
	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "poll a single time and exit")
	_ = watchCmd.MarkFlagRequired("lat")
	_ = watchCmd.MarkFlagRequired("lon")

	rootCmd.AddCommand(watchCmd)
}

// areaWatcher tracks which flights are inside a circle between polls
type areaWatcher struct {
	api      flightradar.API
	logger   zerolog.Logger
	lat      float64
	lon      float64
	radiusKm float64
	base     flightradar.FlightPositionFilter
	boxes    []flightradar.Bounds
	where    filter.Filter
	inside   map[string]struct{}
}

func newAreaWatcher(api flightradar.API, logger zerolog.Logger, lat, lon, radiusKm float64, base flightradar.FlightPositionFilter, where filter.Filter) (*areaWatcher, error) {
	if radiusKm <= 0 {
		return nil, fmt.Errorf("radius must be greater than 0")
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("center %v,%v is not a valid coordinate", lat, lon)
	}

	return &areaWatcher{
		api:      api,
		logger:   logger,
		lat:      lat,
		lon:      lon,
		radiusKm: radiusKm,
		base:     base,
		boxes:    filter.BoxesAround(lat, lon, radiusKm),
		where:    where,
		inside:   make(map[string]struct{}),
	}, nil
}

// poll fetches positions once and returns the flights that entered the circle
// since the previous poll
func (w *areaWatcher) poll(ctx context.Context) ([]flightradar.FlightPosition, error) {
	positions, err := w.fetch(ctx)
	if err != nil {
		return nil, err
	}

	current := make(map[string]struct{}, len(positions))
	var entered []flightradar.FlightPosition
	for _, pos := range positions {
		if filter.DistanceKm(w.lat, w.lon, pos.Lat, pos.Lon) > w.radiusKm {
			continue
		}
		if w.where != nil && !w.where.Evaluate(pos) {
			continue
		}
		current[pos.FR24ID] = struct{}{}
		if _, seen := w.inside[pos.FR24ID]; !seen {
			entered = append(entered, pos)
		}
	}

	for id := range w.inside {
		if _, ok := current[id]; !ok {
			w.logger.Debug().Str("fr24_id", id).Msg("Flight left the area")
		}
	}
	w.inside = current

	return entered, nil
}

// fetch queries every bounding box of the circle. A flight seen in more than
// one box is returned once.
func (w *areaWatcher) fetch(ctx context.Context) ([]flightradar.FlightPosition, error) {
	var positions []flightradar.FlightPosition
	seen := make(map[string]struct{})
	for _, box := range w.boxes {
		pf := w.base
		pf.Bounds = &box
		req, err := flightradar.NewLiveFlightPositionRequest(pf, 0)
		if err != nil {
			return nil, err
		}
		batch, err := w.api.GetLiveFlightPositions(ctx, req)
		if err != nil {
			return nil, err
		}
		for _, pos := range batch {
			if _, dup := seen[pos.FR24ID]; dup {
				continue
			}
			seen[pos.FR24ID] = struct{}{}
			positions = append(positions, pos)
		}
	}
	return positions, nil
}

func (w *areaWatcher) alert(pos flightradar.FlightPosition) {
	w.logger.Info().
		Str("fr24_id", pos.FR24ID).
		Str("callsign", str(pos.Callsign)).
		Str("flight", str(pos.Flight)).
		Str("type", str(pos.Type)).
		Str("route", str(pos.OrigIATA)+"-"+str(pos.DestIATA)).
		Int("alt", pos.Alt).
		Float64("distance_km", filter.DistanceKm(w.lat, w.lon, pos.Lat, pos.Lon)).
		Msg("Flight entered the area")
}

// run polls until ctx is done. Failed polls are logged and retried on the next tick.
func (w *areaWatcher) run(ctx context.Context, interval time.Duration, once bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		entered, err := w.poll(ctx)
		switch {
		case err == nil:
			for _, pos := range entered {
				w.alert(pos)
			}
			w.logger.Debug().Int("inside", len(w.inside)).Int("entered", len(entered)).Msg("Polled area")
		case errors.Is(err, flightradar.ErrUnauthorized),
			errors.Is(err, flightradar.ErrInsufficientCredits),
			errors.Is(err, flightradar.ErrBadRequest),
			errors.Is(err, flightradar.ErrValidation):
			return err
		case ctx.Err() != nil:
			return nil
		default:
			w.logger.Warn().Err(err).Msg("Poll failed")
		}

		if once {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	base, err := watchFlags.build()
	if err != nil {
		return err
	}
	if base.Bounds != nil {
		return fmt.Errorf("--bounds is derived from --lat, --lon and --radius")
	}

	var where filter.Filter
	if watchWhere != "" {
		if where, err = filters.Resolve(watchWhere); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	w, err := newAreaWatcher(client, logger, watchLat, watchLon, watchRadius, base, where)
	if err != nil {
		return err
	}

	logger.Info().
		Float64("lat", watchLat).
		Float64("lon", watchLon).
		Float64("radius_km", watchRadius).
		Dur("interval", watchInterval).
		Msg("Watching area")

	return w.run(cmd.Context(), watchInterval, watchOnce)
}
