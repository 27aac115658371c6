package cmd

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/s0up4200/flightradar/filter"
	"github.com/s0up4200/flightradar/flightradar"
)

// positionFlags holds the position filter flags shared by live, historic and watch
type positionFlags struct {
	bounds        string
	flights       []string
	callsigns     []string
	registrations []string
	paintedAs     []string
	operatingAs   []string
	airports      []string
	routes        []string
	aircraft      []string
	altitudes     []string
	squawks       []string
	categories    []string
	sources       []string
	airspaces     []string
	gspeed        string
}

func (f *positionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.bounds, "bounds", "", "bounding box as north,south,west,east")
	fs.StringSliceVar(&f.flights, "flight", nil, "flight numbers")
	fs.StringSliceVar(&f.callsigns, "callsign", nil, "callsigns")
	fs.StringSliceVar(&f.registrations, "reg", nil, "aircraft registrations")
	fs.StringSliceVar(&f.paintedAs, "painted-as", nil, "ICAO codes of the livery airline")
	fs.StringSliceVar(&f.operatingAs, "operating-as", nil, "ICAO codes of the operating airline")
	fs.StringSliceVar(&f.airports, "airport", nil, "airports, optionally prefixed with both:, inbound: or outbound:")
	fs.StringSliceVar(&f.routes, "route", nil, "routes as ORIGIN-DESTINATION")
	fs.StringSliceVar(&f.aircraft, "aircraft", nil, "ICAO aircraft type codes")
	fs.StringSliceVar(&f.altitudes, "altitude", nil, "altitude ranges in feet as LOW-HIGH")
	fs.StringSliceVar(&f.squawks, "squawk", nil, "squawk codes")
	fs.StringSliceVar(&f.categories, "category", nil, "flight categories (P, C, M, J, T, H, B, G, D, V, O, N)")
	fs.StringSliceVar(&f.sources, "source", nil, "data sources (ADSB, MLAT, ESTIMATED or all)")
	fs.StringSliceVar(&f.airspaces, "airspace", nil, "airspace identifiers")
	fs.StringVar(&f.gspeed, "gspeed", "", "ground speed in knots as N or LOW-HIGH")
}

func (f *positionFlags) build() (flightradar.FlightPositionFilter, error) {
	pf := flightradar.FlightPositionFilter{
		Flights:       f.flights,
		Callsigns:     f.callsigns,
		Registrations: f.registrations,
		PaintedAs:     f.paintedAs,
		OperatingAs:   f.operatingAs,
		Aircraft:      f.aircraft,
		Squawks:       f.squawks,
		Airspaces:     f.airspaces,
	}

	var err error
	if f.bounds != "" {
		if pf.Bounds, err = parseBounds(f.bounds); err != nil {
			return pf, err
		}
	}
	if pf.Airports, err = parseAirports(f.airports); err != nil {
		return pf, err
	}
	if pf.Routes, err = parseRoutes(f.routes); err != nil {
		return pf, err
	}
	if pf.AltitudeRanges, err = parseRanges(f.altitudes); err != nil {
		return pf, err
	}
	if f.gspeed != "" {
		r, err := parseRange(f.gspeed)
		if err != nil {
			return pf, err
		}
		pf.GroundSpeed = &r
	}
	if len(f.categories) > 0 {
		pf.Categories = toCategories(f.categories)
	}
	if len(f.sources) > 0 {
		pf.DataSources = toDataSources(f.sources)
	}
	return pf, nil
}

var (
	liveFlags     positionFlags
	historicFlags positionFlags

	positionLight bool
	positionCount bool
	positionLimit int
	positionWhere string
	positionSaved []string
	historicAt    string
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "List live flight positions",
	Long: `List current flight positions matching the given filters.

Full positions can be narrowed further on the client with --where, which
takes a filter expression or the name of a filter saved in the config file:

  fr24 live --bounds 50.682,46.218,14.422,22.243 --where 'Alt > 30000'
  fr24 live --airport inbound:LHR --where emergency

With --saved the positions are matched against the saved filters instead,
either all of them or the ones named, and printed per filter:

  fr24 live --bounds 50.682,46.218,14.422,22.243 --saved
  fr24 live --airport LHR --saved emergency,low_and_slow`,
	RunE: runLive,
}

var historicCmd = &cobra.Command{
	Use:   "historic",
	Short: "List flight positions at a point in the past",
	RunE:  runHistoric,
}

func init() {
	for _, c := range []*cobra.Command{liveCmd, historicCmd} {
		c.Flags().BoolVar(&positionLight, "light", false, "fetch positions without flight details")
		c.Flags().BoolVar(&positionCount, "count", false, "only print the number of matching positions")
		c.Flags().IntVar(&positionLimit, "limit", 0, "maximum number of positions returned by the API")
		c.Flags().StringVarP(&positionWhere, "where", "w", "", "filter expression or saved filter name applied to the results")
		c.Flags().StringSliceVar(&positionSaved, "saved", nil, "match results against saved filters, all of them or the ones named")
		c.Flags().Lookup("saved").NoOptDefVal = savedAll
		c.MarkFlagsMutuallyExclusive("where", "saved")
		c.MarkFlagsMutuallyExclusive("light", "saved")
		c.MarkFlagsMutuallyExclusive("count", "saved")
	}
	liveFlags.register(liveCmd.Flags())
	historicFlags.register(historicCmd.Flags())
	historicCmd.Flags().StringVar(&historicAt, "at", "", "point in time as RFC 3339 or unix seconds")
	_ = historicCmd.MarkFlagRequired("at")

	rootCmd.AddCommand(liveCmd)
	rootCmd.AddCommand(historicCmd)
}

func runLive(cmd *cobra.Command, args []string) error {
	pf, err := liveFlags.build()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if positionCount {
		req, err := flightradar.NewLiveFlightPositionCountRequest(pf)
		if err != nil {
			return err
		}
		count, err := client.GetLiveFlightPositionCount(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to count live positions: %w", err)
		}
		return printer.printCount(count.RecordCount)
	}

	req, err := flightradar.NewLiveFlightPositionRequest(pf, positionLimit)
	if err != nil {
		return err
	}

	if positionLight {
		if positionWhere != "" {
			return fmt.Errorf("--where needs full positions and cannot be combined with --light")
		}
		positions, err := client.GetLiveFlightPositionsLight(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get live positions: %w", err)
		}
		return printLightPositions(positions)
	}

	positions, err := client.GetLiveFlightPositions(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get live positions: %w", err)
	}
	if len(positionSaved) > 0 {
		return printSavedMatches(ctx, filters, positionSaved, positions)
	}
	if positions, err = applyWhere(ctx, positions); err != nil {
		return err
	}
	return printPositions(positions)
}

func runHistoric(cmd *cobra.Command, args []string) error {
	pf, err := historicFlags.build()
	if err != nil {
		return err
	}
	at, err := parseTime(historicAt)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if positionCount {
		req, err := flightradar.NewHistoricFlightPositionCountRequest(pf, at)
		if err != nil {
			return err
		}
		count, err := client.GetHistoricFlightPositionCount(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to count historic positions: %w", err)
		}
		return printer.printCount(count.RecordCount)
	}

	req, err := flightradar.NewHistoricFlightPositionRequest(pf, at, positionLimit)
	if err != nil {
		return err
	}

	if positionLight {
		if positionWhere != "" {
			return fmt.Errorf("--where needs full positions and cannot be combined with --light")
		}
		positions, err := client.GetHistoricFlightPositionsLight(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get historic positions: %w", err)
		}
		return printLightPositions(positions)
	}

	positions, err := client.GetHistoricFlightPositions(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get historic positions: %w", err)
	}
	if len(positionSaved) > 0 {
		return printSavedMatches(ctx, filters, positionSaved, positions)
	}
	if positions, err = applyWhere(ctx, positions); err != nil {
		return err
	}
	return printPositions(positions)
}

// applyWhere narrows positions with the --where filter, if any
func applyWhere(ctx context.Context, positions []flightradar.FlightPosition) ([]flightradar.FlightPosition, error) {
	if positionWhere == "" {
		return positions, nil
	}
	f, err := filters.Resolve(positionWhere)
	if err != nil {
		return nil, fmt.Errorf("invalid filter: %w", err)
	}
	matched, err := filters.Apply(ctx, f, positions)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("filter", f.Expression()).
		Int("fetched", len(positions)).
		Int("matched", len(matched)).
		Msg("Applied position filter")
	return matched, nil
}

// savedAll selects every saved filter
const savedAll = "all"

// matchSaved evaluates the named saved filters against positions. A single
// name of "all" evaluates every saved filter.
func matchSaved(ctx context.Context, m *filter.Manager, names []string, positions []flightradar.FlightPosition) (map[string][]flightradar.FlightPosition, error) {
	if len(names) == 1 && names[0] == savedAll {
		if len(m.ListFilters()) == 0 {
			return nil, fmt.Errorf("no saved filters in config")
		}
		return m.EvaluateAll(ctx, positions)
	}

	matches := make(map[string][]flightradar.FlightPosition, len(names))
	for _, name := range names {
		matched, err := m.EvaluateFilter(ctx, name, positions)
		if err != nil {
			return nil, err
		}
		matches[name] = matched
	}
	return matches, nil
}

// printSavedMatches prints the positions matched by each saved filter, one
// row per match, ordered by filter name
func printSavedMatches(ctx context.Context, m *filter.Manager, names []string, positions []flightradar.FlightPosition) error {
	matches, err := matchSaved(ctx, m, names, positions)
	if err != nil {
		return err
	}

	var rows [][]string
	for _, name := range slices.Sorted(maps.Keys(matches)) {
		logger.Debug().Str("filter", name).Int("matched", len(matches[name])).Msg("Evaluated saved filter")
		for _, p := range matches[name] {
			rows = append(rows, append([]string{name}, lightRow(p.FlightPositionLight)...))
		}
	}
	header := append([]string{"FILTER"}, lightHeader...)
	return printer.print(matches, header, rows)
}

func lightRow(p flightradar.FlightPositionLight) []string {
	return []string{
		p.FR24ID,
		str(p.Callsign),
		coord(p.Lat),
		coord(p.Lon),
		strconv.Itoa(p.Alt),
		strconv.Itoa(p.GSpeed),
		strconv.Itoa(p.Track),
		orDash(p.Squawk),
		string(p.Source),
	}
}

var lightHeader = []string{"FR24 ID", "CALLSIGN", "LAT", "LON", "ALT", "GSPEED", "TRACK", "SQUAWK", "SOURCE"}

func printLightPositions(positions []flightradar.FlightPositionLight) error {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, lightRow(p))
	}
	return printer.print(positions, lightHeader, rows)
}

func printPositions(positions []flightradar.FlightPosition) error {
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, append(lightRow(p.FlightPositionLight),
			str(p.Flight),
			str(p.Type),
			str(p.Reg),
			str(p.OrigIATA),
			str(p.DestIATA),
			timeStr(p.ETA),
		))
	}
	header := append(append([]string{}, lightHeader...), "FLIGHT", "TYPE", "REG", "ORIG", "DEST", "ETA")
	return printer.print(positions, header, rows)
}
