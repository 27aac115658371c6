package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/flightradar/flightradar"
)

var (
	summaryIDs           []string
	summaryFrom          string
	summaryTo            string
	summaryFlights       []string
	summaryCallsigns     []string
	summaryRegistrations []string
	summaryPaintedAs     []string
	summaryOperatingAs   []string
	summaryAirports      []string
	summaryRoutes        []string
	summaryAircraft      []string
	summaryLimit         int
	summarySort          string
	summaryLight         bool
	summaryCount         bool

	eventIDs   []string
	eventAt    string
	eventTypes []string
	eventLight bool

	usagePeriod string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "List flight summaries",
	Long: `List takeoff and landing summaries of flights.

Flights are selected either by fr24 id with --id, or by a datetime window
(--from and --to, starting at most 14 days ago) combined with at least one
other filter:

  fr24 summary --id 391fdd79,3a3fdd02
  fr24 summary --from 2025-02-14T01:17:16Z --to 2025-02-15T01:17:16Z --route WAW-LHR`,
	RunE: runSummary,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks FR24_ID",
	Short: "Print the positional track of a flight",
	Args:  cobra.ExactArgs(1),
	RunE:  runTracks,
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List historic flight events",
	Long: `List milestones such as takeoff, airspace transitions and landing,
either for the flights given with --id or for all flights at --at.`,
	RunE: runEvents,
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Report API credit usage per endpoint",
	RunE:  runUsage,
}

func init() {
	f := summaryCmd.Flags()
	f.StringSliceVar(&summaryIDs, "id", nil, "fr24 flight ids")
	f.StringVar(&summaryFrom, "from", "", "start of the datetime window")
	f.StringVar(&summaryTo, "to", "", "end of the datetime window")
	f.StringSliceVar(&summaryFlights, "flight", nil, "flight numbers")
	f.StringSliceVar(&summaryCallsigns, "callsign", nil, "callsigns")
	f.StringSliceVar(&summaryRegistrations, "reg", nil, "aircraft registrations")
	f.StringSliceVar(&summaryPaintedAs, "painted-as", nil, "ICAO codes of the livery airline")
	f.StringSliceVar(&summaryOperatingAs, "operating-as", nil, "ICAO codes of the operating airline")
	f.StringSliceVar(&summaryAirports, "airport", nil, "airports, optionally prefixed with both:, inbound: or outbound:")
	f.StringSliceVar(&summaryRoutes, "route", nil, "routes as ORIGIN-DESTINATION")
	f.StringSliceVar(&summaryAircraft, "aircraft", nil, "ICAO aircraft type codes")
	f.IntVar(&summaryLimit, "limit", 0, "maximum number of summaries")
	f.StringVar(&summarySort, "sort", "", "sort by takeoff time: asc or desc")
	f.BoolVar(&summaryLight, "light", false, "fetch summaries without runway and distance details")
	f.BoolVar(&summaryCount, "count", false, "only print the number of matching flights")

	eventsCmd.Flags().StringSliceVar(&eventIDs, "id", nil, "fr24 flight ids")
	eventsCmd.Flags().StringVar(&eventAt, "at", "", "point in time as RFC 3339 or unix seconds")
	eventsCmd.Flags().StringSliceVar(&eventTypes, "types", nil, "event types (default all)")
	eventsCmd.Flags().BoolVar(&eventLight, "light", false, "fetch events without operator and route")
	eventsCmd.MarkFlagsMutuallyExclusive("id", "at")
	eventsCmd.MarkFlagsOneRequired("id", "at")

	usageCmd.Flags().StringVar(&usagePeriod, "period", string(flightradar.PeriodDay), "period: 24h, 7d, 30d or 1y")

	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(eventsCmd)
	rootCmd.AddCommand(usageCmd)
}

func buildSummaryFilter() (flightradar.FlightSummaryFilter, error) {
	sf := flightradar.FlightSummaryFilter{
		FlightIDs:     summaryIDs,
		Flights:       summaryFlights,
		Callsigns:     summaryCallsigns,
		Registrations: summaryRegistrations,
		PaintedAs:     summaryPaintedAs,
		OperatingAs:   summaryOperatingAs,
		Aircraft:      summaryAircraft,
	}

	var err error
	if sf.FlightDatetimeFrom, err = parseOptionalTime(summaryFrom); err != nil {
		return sf, err
	}
	if sf.FlightDatetimeTo, err = parseOptionalTime(summaryTo); err != nil {
		return sf, err
	}
	if sf.Airports, err = parseAirports(summaryAirports); err != nil {
		return sf, err
	}
	if sf.Routes, err = parseRoutes(summaryRoutes); err != nil {
		return sf, err
	}
	return sf, nil
}

func runSummary(cmd *cobra.Command, args []string) error {
	sf, err := buildSummaryFilter()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if summaryCount {
		req, err := flightradar.NewFlightSummaryCountRequest(sf)
		if err != nil {
			return err
		}
		count, err := client.GetFlightSummaryCount(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to count flight summaries: %w", err)
		}
		return printer.printCount(count.RecordCount)
	}

	req, err := flightradar.NewFlightSummaryRequest(sf, summaryLimit, flightradar.Sort(summarySort))
	if err != nil {
		return err
	}

	header := []string{"FR24 ID", "FLIGHT", "CALLSIGN", "TYPE", "REG", "ORIG", "TAKEOFF", "DEST", "LANDED", "ENDED"}
	summaryRow := func(s flightradar.FlightSummaryLight) []string {
		ended := "-"
		if s.FlightEnded != nil {
			ended = strconv.FormatBool(*s.FlightEnded)
		}
		return []string{
			s.FR24ID,
			str(s.Flight),
			str(s.Callsign),
			str(s.Type),
			str(s.Reg),
			str(s.OrigICAO),
			timeStr(s.DatetimeTakeoff),
			str(s.DestICAO),
			timeStr(s.DatetimeLanded),
			ended,
		}
	}

	if summaryLight {
		summaries, err := client.GetFlightSummaryLight(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get flight summaries: %w", err)
		}
		rows := make([][]string, 0, len(summaries))
		for _, s := range summaries {
			rows = append(rows, summaryRow(s))
		}
		return printer.print(summaries, header, rows)
	}

	summaries, err := client.GetFlightSummary(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get flight summaries: %w", err)
	}
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, append(summaryRow(s.FlightSummaryLight),
			str(s.RunwayTakeoff),
			str(s.RunwayLanded),
			floatStr(s.FlightTime, 0),
			floatStr(s.ActualDistance, 1),
		))
	}
	header = append(header, "RWY OUT", "RWY IN", "TIME (S)", "DIST (KM)")
	return printer.print(summaries, header, rows)
}

func runTracks(cmd *cobra.Command, args []string) error {
	req, err := flightradar.NewFlightTrackRequest(args[0])
	if err != nil {
		return err
	}
	tracks, err := client.GetFlightTracks(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to get flight tracks: %w", err)
	}

	rows := make([][]string, 0, len(tracks.Tracks))
	for _, t := range tracks.Tracks {
		rows = append(rows, []string{
			t.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
			coord(t.Lat),
			coord(t.Lon),
			strconv.Itoa(t.Alt),
			strconv.Itoa(t.GSpeed),
			strconv.Itoa(t.VSpeed),
			strconv.Itoa(t.Track),
			orDash(t.Squawk),
			orDash(t.Callsign),
			t.Source,
		})
	}
	return printer.print(tracks,
		[]string{"TIME", "LAT", "LON", "ALT", "GSPEED", "VSPEED", "TRACK", "SQUAWK", "CALLSIGN", "SOURCE"},
		rows,
	)
}

// newEventRequest builds an event request for either the given flights or
// every flight at a point in time
func newEventRequest(ids []string, at *time.Time, types []flightradar.EventType) (*flightradar.HistoricFlightEventRequest, error) {
	if at == nil {
		return flightradar.NewHistoricFlightEventRequest(ids, types...)
	}
	if len(ids) > 0 {
		return nil, fmt.Errorf("--id cannot be combined with --at")
	}
	return flightradar.NewHistoricFlightEventRequestAt(*at, types...)
}

func runEvents(cmd *cobra.Command, args []string) error {
	at, err := parseOptionalTime(eventAt)
	if err != nil {
		return err
	}
	req, err := newEventRequest(eventIDs, at, toEventTypes(eventTypes))
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	header := []string{"FR24 ID", "CALLSIGN", "EVENT", "TIME", "LAT", "LON", "ALT"}
	eventRows := func(flight flightradar.HistoricFlightEventsLight) [][]string {
		rows := make([][]string, 0, len(flight.Events))
		for _, e := range flight.Events {
			alt := "-"
			if e.Alt != nil {
				alt = strconv.Itoa(*e.Alt)
			}
			rows = append(rows, []string{
				flight.FR24ID,
				orDash(flight.Callsign),
				string(e.Type),
				e.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
				floatStr(e.Lat, 4),
				floatStr(e.Lon, 4),
				alt,
			})
		}
		return rows
	}

	var rows [][]string
	if eventLight {
		flights, err := client.GetHistoricFlightEventsLight(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to get flight events: %w", err)
		}
		for _, f := range flights {
			rows = append(rows, eventRows(f)...)
		}
		return printer.print(flights, header, rows)
	}

	flights, err := client.GetHistoricFlightEvents(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to get flight events: %w", err)
	}
	for _, f := range flights {
		route := orDash(f.OrigIATA) + "-" + orDash(f.DestIATA)
		for _, row := range eventRows(f.HistoricFlightEventsLight) {
			rows = append(rows, append(row, route))
		}
	}
	return printer.print(flights, append(header, "ROUTE"), rows)
}

func runUsage(cmd *cobra.Command, args []string) error {
	req, err := flightradar.NewAPIUsageRequest(flightradar.TimePeriod(usagePeriod))
	if err != nil {
		return err
	}
	usage, err := client.GetAPIUsage(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to get API usage: %w", err)
	}

	rows := make([][]string, 0, len(usage))
	total := 0
	for _, u := range usage {
		rows = append(rows, []string{u.Endpoint, strconv.Itoa(u.RequestCount), strconv.Itoa(u.Credits)})
		total += u.Credits
	}
	if len(rows) > 0 {
		rows = append(rows, []string{"TOTAL", "", strconv.Itoa(total)})
	}
	return printer.print(usage, []string{"ENDPOINT", "REQUESTS", "CREDITS"}, rows)
}
